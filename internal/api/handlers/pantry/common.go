// Package pantry 提供食材解析、縮放、庫存分析與指示連結的 HTTP 處理程序
// 引擎本身是純函數庫，這一層只負責請求驗證、日誌與序列化
package pantry

import (
	"net/http"

	"recipe-pantry/internal/core/ingredient"
	"recipe-pantry/internal/core/instruction"
	pantryCore "recipe-pantry/internal/core/pantry"
	"recipe-pantry/internal/core/scaling"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 食材與食譜處理程序
type Handler struct {
	cfg        *config.Config
	parseCache *ingredient.CacheService
	analysis   *pantryCore.Service
	linker     *instruction.Linker
}

// NewHandler 創建新的處理程序
func NewHandler(cfg *config.Config, parseCache *ingredient.CacheService, analysis *pantryCore.Service, linker *instruction.Linker) *Handler {
	return &Handler{
		cfg:        cfg,
		parseCache: parseCache,
		analysis:   analysis,
		linker:     linker,
	}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = common.GenerateUUID()
		c.Header("X-Request-ID", id)
	}
	return id
}

// validateRecipe 檢查食譜必要欄位；通過時回傳 true
func (h *Handler) validateRecipe(c *gin.Context, recipe common.Recipe) bool {
	if recipe.DefaultServings < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "default_servings must be at least 1",
			"code":  common.ErrInvalidRecipe.Code,
		})
		return false
	}
	return true
}

// validateServings 檢查目標份數是否在設定範圍內；通過時回傳 true
func (h *Handler) validateServings(c *gin.Context, servings int) bool {
	if !scaling.ValidateServings(servings, h.cfg.Scaling.MinServings, h.cfg.Scaling.MaxServings) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "servings out of range",
			"code":         common.ErrInvalidServings.Code,
			"min_servings": h.cfg.Scaling.MinServings,
			"max_servings": h.cfg.Scaling.MaxServings,
		})
		return false
	}
	return true
}
