package pantry

import (
	"net/http"

	"recipe-pantry/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisRequest 食譜與庫存快照的比對請求
// Servings 省略（0）時採用食譜預設份數
type AnalysisRequest struct {
	Recipe    common.Recipe          `json:"recipe" binding:"required"`
	Inventory []common.InventoryItem `json:"inventory"`
	Servings  int                    `json:"servings,omitempty"`
}

// HandleAnalysis 比對食譜需求與庫存
// 引擎對庫存只讀不寫，結果每次重新推導，可隨庫存變動重複呼叫
func (h *Handler) HandleAnalysis(c *gin.Context) {
	reqID := requestID(c)

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	if !h.validateRecipe(c, req.Recipe) {
		return
	}
	if req.Servings != 0 && !h.validateServings(c, req.Servings) {
		return
	}

	analysis := h.analysis.Analyze(req.Recipe, req.Inventory, req.Servings)

	common.LogInfo("完成庫存分析",
		zap.Int("total_ingredients", analysis.TotalIngredients),
		zap.Int("available_ingredients", analysis.AvailableIngredients),
		zap.Int("completion_percentage", analysis.CompletionPercentage),
		zap.Bool("has_all_ingredients", analysis.HasAllIngredients),
		zap.String("request_id", reqID),
	)

	c.JSON(http.StatusOK, analysis)
}
