// Package pantry 將食譜的食材需求與呼叫端提供的庫存快照比對，
// 推導每項食材的可用性、完成度與可製作的最大份數。
// 本引擎對庫存只讀不寫，重複呼叫是安全的。
package pantry

import (
	"math"
	"time"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

// Service 庫存分析服務
type Service struct{}

// NewService 創建庫存分析服務
func NewService() *Service {
	return &Service{}
}

// Analyze 比對食譜與庫存快照
// targetServings <= 0 時採用食譜預設份數
// 可省略食材不納入完成度、缺料與份數計算
func (s *Service) Analyze(recipe common.Recipe, inventory []common.InventoryItem, targetServings int) common.RecipeInventoryAnalysis {
	if targetServings <= 0 {
		targetServings = recipe.DefaultServings
	}

	// 正規化名稱對應第一個相同名稱的庫存品項（不做模糊比對）
	byName := make(map[string]*common.InventoryItem)
	for i := range inventory {
		key := common.NormalizeName(inventory[i].IngredientName)
		if _, exists := byName[key]; !exists {
			byName[key] = &inventory[i]
		}
	}

	analysis := common.RecipeInventoryAnalysis{
		RecipeID:           recipe.ID,
		MissingIngredients: []common.MissingIngredient{},
	}

	scalingFactor := float64(targetServings) / float64(recipe.DefaultServings)
	now := time.Now()

	// maxServings 為所有必要食材可支撐份數的最小值
	// nil 表示尚無任何限制（食譜沒有必要食材）
	var maxServings *int

	for _, ing := range recipe.Ingredients {
		if ing.IsOptional {
			continue
		}
		analysis.TotalIngredients++

		neededQuantity := ing.Quantity * scalingFactor
		match := s.matchIngredient(ing, byName, neededQuantity, now)
		analysis.Matches = append(analysis.Matches, match)

		if match.IsFullyAvailable {
			analysis.AvailableIngredients++
		} else {
			missing := common.MissingIngredient{
				IngredientName: ing.IngredientName,
				NeededQuantity: neededQuantity,
				Unit:           ing.Unit,
			}
			if match.InventoryItem != nil {
				if match.ConversionSuccessful {
					available := match.AvailableQuantity
					availableUnit := ing.Unit
					missing.AvailableQuantity = &available
					missing.AvailableUnit = &availableUnit
				} else {
					// 無法換算時保留庫存原始單位，讓呼叫端呈現「無法確認」
					available := match.InventoryItem.Quantity
					availableUnit := match.InventoryItem.Unit
					missing.AvailableQuantity = &available
					missing.AvailableUnit = &availableUnit
				}
			}
			analysis.MissingIngredients = append(analysis.MissingIngredients, missing)
		}

		servings := servingsSupported(ing, match, recipe.DefaultServings)
		if maxServings == nil || servings < *maxServings {
			maxServings = &servings
		}
	}

	if analysis.TotalIngredients == 0 {
		// 沒有必要食材：永遠 100%，份數不受庫存限制
		analysis.CompletionPercentage = 100
		analysis.HasAllIngredients = true
		analysis.MaxPossibleServings = nil
		return analysis
	}

	analysis.CompletionPercentage = int(math.Round(100 * float64(analysis.AvailableIngredients) / float64(analysis.TotalIngredients)))
	analysis.HasAllIngredients = analysis.AvailableIngredients == analysis.TotalIngredients
	analysis.MaxPossibleServings = maxServings
	return analysis
}

// matchIngredient 比對單一食材與庫存
func (s *Service) matchIngredient(ing common.RecipeIngredient, byName map[string]*common.InventoryItem, neededQuantity float64, now time.Time) common.InventoryMatch {
	match := common.InventoryMatch{
		Ingredient:           ing,
		ConversionSuccessful: true,
	}

	item, found := byName[common.NormalizeName(ing.IngredientName)]
	if !found {
		return match
	}
	match.InventoryItem = item

	available, ok := unit.Convert(item.Quantity, item.Unit, ing.Unit)
	if !ok {
		// 換算失敗視為缺料，但以旗標區分「無法確認」與「確定缺少」
		match.ConversionSuccessful = false
		return match
	}

	match.AvailableQuantity = available
	match.IsFullyAvailable = available+1e-9 >= neededQuantity

	// 做完這道菜後剩餘量低於門檻時標記補貨提醒
	if item.LowStockThreshold != nil {
		if neededInItemUnit, ok := unit.Convert(neededQuantity, ing.Unit, item.Unit); ok {
			match.LowStock = item.Quantity-neededInItemUnit < *item.LowStockThreshold
		}
	}

	// 過期品項仍計入可用量，僅提示呼叫端
	if item.ExpirationDate != nil && now.After(*item.ExpirationDate) {
		match.Expired = true
	}

	return match
}

// servingsSupported 計算單一食材的庫存可支撐的份數
// 缺料或換算失敗時為 0
func servingsSupported(ing common.RecipeIngredient, match common.InventoryMatch, defaultServings int) int {
	if match.InventoryItem == nil || !match.ConversionSuccessful {
		return 0
	}
	if ing.Quantity <= 0 {
		return math.MaxInt32
	}
	servings := math.Floor(match.AvailableQuantity*float64(defaultServings)/ing.Quantity + 1e-9)
	if servings < 0 {
		return 0
	}
	return int(servings)
}
