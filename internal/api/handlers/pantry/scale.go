package pantry

import (
	"net/http"

	"recipe-pantry/internal/core/scaling"
	"recipe-pantry/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScaleRequest 依目標份數縮放食譜
type ScaleRequest struct {
	Recipe   common.Recipe `json:"recipe" binding:"required"`
	Servings int           `json:"servings" binding:"required"`
}

// ScaleResponse 縮放結果
type ScaleResponse struct {
	Servings        int                        `json:"servings"`
	DefaultServings int                        `json:"default_servings"`
	ScalingFactor   float64                    `json:"scaling_factor"`
	Ingredients     []scaling.ScaledIngredient `json:"ingredients"`
}

// HandleScale 縮放食譜食材數量
func (h *Handler) HandleScale(c *gin.Context) {
	reqID := requestID(c)

	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	if !h.validateRecipe(c, req.Recipe) || !h.validateServings(c, req.Servings) {
		return
	}

	scaled := scaling.Scale(req.Recipe.Ingredients, req.Servings, req.Recipe.DefaultServings)

	common.LogDebug("縮放前的食材列表",
		zap.String("ingredients", common.FormatIngredientList(req.Recipe.Ingredients)),
		zap.String("request_id", reqID),
	)
	common.LogInfo("完成食譜縮放",
		zap.Int("servings", req.Servings),
		zap.Int("default_servings", req.Recipe.DefaultServings),
		zap.Int("ingredients", len(scaled)),
		zap.String("request_id", reqID),
	)

	c.JSON(http.StatusOK, ScaleResponse{
		Servings:        req.Servings,
		DefaultServings: req.Recipe.DefaultServings,
		ScalingFactor:   float64(req.Servings) / float64(req.Recipe.DefaultServings),
		Ingredients:     scaled,
	})
}
