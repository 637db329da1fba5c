package pantry

import (
	"net/http"

	"recipe-pantry/internal/core/ingredient"
	"recipe-pantry/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest 批次解析原始食材文字
type ParseRequest struct {
	Lines []string `json:"lines" binding:"required"` // 每行一條食材文字
}

// ParsedLine 單行解析結果與偵測到的瑕疵
type ParsedLine struct {
	Ingredient common.ParsedIngredient `json:"ingredient"`
	Issues     []ingredient.Issue      `json:"issues,omitempty"`
}

// ParseResponse 批次解析結果
type ParseResponse struct {
	Ingredients []ParsedLine `json:"ingredients"`
}

// HandleParse 解析原始食材文字
// Parse 是確定性函數，相同輸入結果一致，可安全使用緩存
func (h *Handler) HandleParse(c *gin.Context) {
	reqID := requestID(c)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	if len(req.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lines must not be empty", "code": common.ErrEmptyIngredients.Code})
		return
	}

	results := make([]ParsedLine, len(req.Lines))
	for i, line := range req.Lines {
		parsed := h.parseLine(c, line)
		results[i] = ParsedLine{
			Ingredient: parsed,
			Issues:     ingredient.DetectIssues(parsed),
		}
	}

	common.LogInfo("完成食材解析",
		zap.Int("lines", len(req.Lines)),
		zap.String("request_id", reqID),
	)

	c.JSON(http.StatusOK, ParseResponse{Ingredients: results})
}

// parseLine 解析單行，優先使用緩存；緩存錯誤不影響結果
func (h *Handler) parseLine(c *gin.Context, line string) common.ParsedIngredient {
	if h.parseCache != nil {
		cached, err := h.parseCache.Get(c.Request.Context(), line)
		if err == nil {
			common.LogCacheHit("parse", line)
			return *cached
		}
		if err == common.ErrCacheMiss {
			common.LogCacheMiss("parse", line)
		}
	}

	parsed := ingredient.Parse(line)

	if h.parseCache != nil {
		if err := h.parseCache.Set(c.Request.Context(), line, parsed); err != nil {
			common.LogWarn("解析結果緩存寫入失敗", zap.Error(err))
		}
	}
	return parsed
}

// IssuesRequest 瑕疵偵測請求
type IssuesRequest struct {
	Ingredients []common.ParsedIngredient `json:"ingredients" binding:"required"`
}

// IngredientIssues 單一食材的瑕疵列表
type IngredientIssues struct {
	Ingredient common.ParsedIngredient `json:"ingredient"`
	Issues     []ingredient.Issue      `json:"issues"`
}

// HandleDetectIssues 偵測已解析食材的文字瑕疵
func (h *Handler) HandleDetectIssues(c *gin.Context) {
	var req IssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	results := make([]IngredientIssues, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		issues := ingredient.DetectIssues(ing)
		if issues == nil {
			issues = []ingredient.Issue{}
		}
		results[i] = IngredientIssues{Ingredient: ing, Issues: issues}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// FixRequest 套用單一修正
type FixRequest struct {
	Ingredient common.ParsedIngredient `json:"ingredient" binding:"required"`
	Issue      ingredient.Issue        `json:"issue" binding:"required"`
}

// HandleApplyFix 套用修正，回傳修正後的副本
func (h *Handler) HandleApplyFix(c *gin.Context) {
	var req FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient.ApplyFix(req.Ingredient, req.Issue)})
}

// FixAllRequest 批次修正：對每個食材套用第一個偵測到的瑕疵
type FixAllRequest struct {
	Ingredients []common.ParsedIngredient `json:"ingredients" binding:"required"`
}

// HandleFixAll 批次套用修正
func (h *Handler) HandleFixAll(c *gin.Context) {
	var req FixAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredient.FixAll(req.Ingredients)})
}
