package common

import (
	"fmt"
	"strings"
	"time"

	"recipe-pantry/internal/core/unit"
)

// ParsedIngredient 單行食材文字的解析結果
// 解析完成後即不再修改；修正建議會產生新的副本
type ParsedIngredient struct {
	OriginalText   string    `json:"original_text"`   // 原始輸入文字，保留供稽核
	Quantity       float64   `json:"quantity"`        // 非負數量
	Unit           unit.Unit `json:"unit"`            // 單位
	IngredientName string    `json:"ingredient_name"` // 食材名稱
	IsOptional     bool      `json:"is_optional"`     // 是否為可省略食材
	Notes          string    `json:"notes,omitempty"` // 處理方式備註（如：切丁、切碎）
}

// RecipeIngredient 食譜持久化的最小食材形式
type RecipeIngredient struct {
	IngredientName string    `json:"ingredient_name"`
	Quantity       float64   `json:"quantity"`
	Unit           unit.Unit `json:"unit"`
	IsOptional     bool      `json:"is_optional"`
}

// Recipe 食譜
// Ingredients 順序僅影響顯示，不具語義
type Recipe struct {
	ID              string             `json:"id,omitempty"`
	Name            string             `json:"name"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Instructions    string             `json:"instructions,omitempty"`
	DefaultServings int                `json:"default_servings"`
}

// InventoryItem 庫存品項（由呼叫端持有，本引擎只讀不寫）
type InventoryItem struct {
	IngredientName    string     `json:"ingredient_name"`
	Quantity          float64    `json:"quantity"`
	Unit              unit.Unit  `json:"unit"`
	LowStockThreshold *float64   `json:"low_stock_threshold,omitempty"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
}

// InventoryMatch 單一食材與庫存的比對結果，每次分析重新計算
type InventoryMatch struct {
	Ingredient           RecipeIngredient `json:"ingredient"`
	InventoryItem        *InventoryItem   `json:"inventory_item,omitempty"`
	AvailableQuantity    float64          `json:"available_quantity"` // 已換算成食譜單位
	IsFullyAvailable     bool             `json:"is_fully_available"`
	ConversionSuccessful bool             `json:"conversion_successful"`
	LowStock             bool             `json:"low_stock,omitempty"` // 做完這道菜後庫存將低於門檻
	Expired              bool             `json:"expired,omitempty"`   // 庫存品項已過期（仍計入可用量）
}

// MissingIngredient 缺少的食材
type MissingIngredient struct {
	IngredientName    string     `json:"ingredient_name"`
	NeededQuantity    float64    `json:"needed_quantity"`
	Unit              unit.Unit  `json:"unit"`
	AvailableQuantity *float64   `json:"available_quantity,omitempty"`
	AvailableUnit     *unit.Unit `json:"available_unit,omitempty"`
}

// RecipeInventoryAnalysis 食譜與庫存的整體比對結果
// MaxPossibleServings 為 nil 表示不受庫存限制（食譜沒有必要食材）
type RecipeInventoryAnalysis struct {
	RecipeID             string              `json:"recipe_id,omitempty"`
	TotalIngredients     int                 `json:"total_ingredients"`
	AvailableIngredients int                 `json:"available_ingredients"`
	Matches              []InventoryMatch    `json:"matches"`
	MissingIngredients   []MissingIngredient `json:"missing_ingredients"`
	CompletionPercentage int                 `json:"completion_percentage"`
	MaxPossibleServings  *int                `json:"max_possible_servings"`
	HasAllIngredients    bool                `json:"has_all_ingredients"`
}

// NormalizeName 正規化食材名稱：去除前後空白、轉小寫、內部空白折疊成單一空格
// 作為食譜食材與庫存品項的比對鍵
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// FormatIngredientList 格式化食材列表（日誌與除錯用）
func FormatIngredientList(ingredients []RecipeIngredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %g %s", ing.IngredientName, ing.Quantity, ing.Unit))
		if ing.IsOptional {
			sb.WriteString("（可省略）")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
