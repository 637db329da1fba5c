package pantry

import (
	"net/http"

	"recipe-pantry/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InstructionsRequest 連結指示文字與食材
type InstructionsRequest struct {
	Recipe   common.Recipe `json:"recipe" binding:"required"`
	Servings int           `json:"servings" binding:"required"`
}

// HandleInstructions 定位指示文字中的食材提及，回傳份數感知的片段
func (h *Handler) HandleInstructions(c *gin.Context) {
	reqID := requestID(c)

	var req InstructionsRequest
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

	parsed := h.linker.Link(req.Recipe.Instructions, req.Recipe.Ingredients, req.Servings, req.Recipe.DefaultServings)

	common.LogInfo("完成指示連結",
		zap.Int("segments", len(parsed.Segments)),
		zap.Int("mentions", len(parsed.IngredientMentions)),
		zap.String("request_id", reqID),
	)

	c.JSON(http.StatusOK, parsed)
}

// HandleClearInstructionCache 清空提及位置緩存
// 緩存條目不會自動淘汰，需要控制記憶體的呼叫端以此端點清理
func (h *Handler) HandleClearInstructionCache(c *gin.Context) {
	h.linker.ClearCache()
	common.LogInfo("指示緩存已清空")
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
