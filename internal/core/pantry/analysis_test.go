package pantry

import (
	"testing"
	"time"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

func flourRecipe() common.Recipe {
	return common.Recipe{
		ID:   "r1",
		Name: "bread",
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "flour", Quantity: 2, Unit: unit.Cup},
		},
		DefaultServings: 4,
	}
}

func TestAnalyzeCrossDimensionConversion(t *testing.T) {
	// 食譜需要 2 cup 麵粉，庫存只有 1 lb：質量換體積不可行
	svc := NewService()
	inventory := []common.InventoryItem{
		{IngredientName: "flour", Quantity: 1, Unit: unit.Pound},
	}

	analysis := svc.Analyze(flourRecipe(), inventory, 0)

	if len(analysis.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(analysis.Matches))
	}
	match := analysis.Matches[0]
	if match.ConversionSuccessful {
		t.Error("ConversionSuccessful = true, want false")
	}
	if match.IsFullyAvailable {
		t.Error("IsFullyAvailable = true, want false")
	}
	if len(analysis.MissingIngredients) != 1 {
		t.Fatalf("missing = %d, want 1", len(analysis.MissingIngredients))
	}
	if analysis.MaxPossibleServings == nil || *analysis.MaxPossibleServings != 0 {
		t.Errorf("MaxPossibleServings = %v, want 0", analysis.MaxPossibleServings)
	}
	// 無法換算時以庫存原始單位呈現
	missing := analysis.MissingIngredients[0]
	if missing.AvailableUnit == nil || *missing.AvailableUnit != unit.Pound {
		t.Errorf("AvailableUnit = %v, want lb", missing.AvailableUnit)
	}
}

func TestAnalyzeMaxServings(t *testing.T) {
	// 每份 50 g，庫存 1000 g，最多 20 份
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "chicken", Quantity: 200, Unit: unit.Gram},
		},
		DefaultServings: 4,
	}
	inventory := []common.InventoryItem{
		{IngredientName: "chicken", Quantity: 1000, Unit: unit.Gram},
	}

	analysis := svc.Analyze(recipe, inventory, 0)

	if analysis.MaxPossibleServings == nil || *analysis.MaxPossibleServings != 20 {
		t.Errorf("MaxPossibleServings = %v, want 20", analysis.MaxPossibleServings)
	}
	if !analysis.HasAllIngredients {
		t.Error("HasAllIngredients = false, want true")
	}
	if analysis.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %d, want 100", analysis.CompletionPercentage)
	}
}

func TestAnalyzeUnitConversionInMatch(t *testing.T) {
	// 庫存 1 kg，食譜單位 g：換算後 1000 g 可用
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "sugar", Quantity: 250, Unit: unit.Gram},
		},
		DefaultServings: 2,
	}
	inventory := []common.InventoryItem{
		{IngredientName: "Sugar", Quantity: 1, Unit: unit.Kilogram},
	}

	analysis := svc.Analyze(recipe, inventory, 0)

	match := analysis.Matches[0]
	if !match.ConversionSuccessful || !match.IsFullyAvailable {
		t.Fatalf("match = %+v, want converted and available", match)
	}
	if match.AvailableQuantity != 1000 {
		t.Errorf("AvailableQuantity = %v, want 1000", match.AvailableQuantity)
	}
	if analysis.MaxPossibleServings == nil || *analysis.MaxPossibleServings != 8 {
		t.Errorf("MaxPossibleServings = %v, want 8", analysis.MaxPossibleServings)
	}
}

func TestAnalyzeOptionalExcluded(t *testing.T) {
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "flour", Quantity: 2, Unit: unit.Cup},
			{IngredientName: "saffron", Quantity: 1, Unit: unit.Pinch, IsOptional: true},
		},
		DefaultServings: 4,
	}
	inventory := []common.InventoryItem{
		{IngredientName: "flour", Quantity: 5, Unit: unit.Cup},
	}

	analysis := svc.Analyze(recipe, inventory, 0)

	// 可省略食材不計入任何統計
	if analysis.TotalIngredients != 1 {
		t.Errorf("TotalIngredients = %d, want 1", analysis.TotalIngredients)
	}
	if !analysis.HasAllIngredients {
		t.Error("HasAllIngredients = false, want true（缺 saffron 不應阻擋）")
	}
	if analysis.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %d, want 100", analysis.CompletionPercentage)
	}
}

func TestAnalyzeMissingEntirely(t *testing.T) {
	svc := NewService()
	analysis := svc.Analyze(flourRecipe(), nil, 0)

	if analysis.AvailableIngredients != 0 {
		t.Errorf("AvailableIngredients = %d, want 0", analysis.AvailableIngredients)
	}
	if analysis.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %d, want 0", analysis.CompletionPercentage)
	}
	if analysis.MaxPossibleServings == nil || *analysis.MaxPossibleServings != 0 {
		t.Errorf("MaxPossibleServings = %v, want 0", analysis.MaxPossibleServings)
	}
	if len(analysis.MissingIngredients) != 1 {
		t.Fatalf("missing = %d, want 1", len(analysis.MissingIngredients))
	}
	if analysis.MissingIngredients[0].AvailableQuantity != nil {
		t.Error("完全缺料時不應附上可用量")
	}
}

func TestAnalyzeNoRequiredIngredients(t *testing.T) {
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "parsley", Quantity: 1, Unit: unit.Piece, IsOptional: true},
		},
		DefaultServings: 2,
	}

	analysis := svc.Analyze(recipe, nil, 0)

	if analysis.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %d, want 100", analysis.CompletionPercentage)
	}
	if analysis.MaxPossibleServings != nil {
		t.Errorf("MaxPossibleServings = %v, want unbounded (nil)", *analysis.MaxPossibleServings)
	}
	if !analysis.HasAllIngredients {
		t.Error("HasAllIngredients = false, want true")
	}
}

func TestAnalyzeTargetServingsScaling(t *testing.T) {
	// 8 人份需要 4 cup，庫存 3 cup 不足；4 人份則足夠
	svc := NewService()
	inventory := []common.InventoryItem{
		{IngredientName: "flour", Quantity: 3, Unit: unit.Cup},
	}

	atDefault := svc.Analyze(flourRecipe(), inventory, 4)
	if !atDefault.HasAllIngredients {
		t.Error("4 servings: HasAllIngredients = false, want true")
	}

	doubled := svc.Analyze(flourRecipe(), inventory, 8)
	if doubled.HasAllIngredients {
		t.Error("8 servings: HasAllIngredients = true, want false")
	}
	if doubled.MaxPossibleServings == nil || *doubled.MaxPossibleServings != 6 {
		t.Errorf("MaxPossibleServings = %v, want 6", doubled.MaxPossibleServings)
	}
}

func TestAnalyzeCompletionMonotonic(t *testing.T) {
	// 為缺料的食材補充庫存，完成度與可做份數不應下降
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "flour", Quantity: 2, Unit: unit.Cup},
			{IngredientName: "butter", Quantity: 100, Unit: unit.Gram},
		},
		DefaultServings: 4,
	}
	inventory := []common.InventoryItem{
		{IngredientName: "flour", Quantity: 4, Unit: unit.Cup},
	}

	before := svc.Analyze(recipe, inventory, 0)

	inventory = append(inventory, common.InventoryItem{
		IngredientName: "butter", Quantity: 300, Unit: unit.Gram,
	})
	after := svc.Analyze(recipe, inventory, 0)

	if after.CompletionPercentage < before.CompletionPercentage {
		t.Errorf("completion dropped: %d -> %d", before.CompletionPercentage, after.CompletionPercentage)
	}
	if *after.MaxPossibleServings < *before.MaxPossibleServings {
		t.Errorf("max servings dropped: %d -> %d", *before.MaxPossibleServings, *after.MaxPossibleServings)
	}
}

func TestAnalyzeNormalizedNameMatch(t *testing.T) {
	svc := NewService()
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "  Olive  Oil ", Quantity: 2, Unit: unit.Tablespoon},
		},
		DefaultServings: 1,
	}
	inventory := []common.InventoryItem{
		{IngredientName: "olive oil", Quantity: 100, Unit: unit.Milliliter},
	}

	analysis := svc.Analyze(recipe, inventory, 0)
	if !analysis.HasAllIngredients {
		t.Error("normalized name match failed")
	}
}

func TestAnalyzeLowStockAndExpired(t *testing.T) {
	svc := NewService()
	threshold := 100.0
	past := time.Now().Add(-24 * time.Hour)
	recipe := common.Recipe{
		Ingredients: []common.RecipeIngredient{
			{IngredientName: "milk", Quantity: 500, Unit: unit.Milliliter},
		},
		DefaultServings: 1,
	}
	inventory := []common.InventoryItem{
		{
			IngredientName:    "milk",
			Quantity:          550,
			Unit:              unit.Milliliter,
			LowStockThreshold: &threshold,
			ExpirationDate:    &past,
		},
	}

	analysis := svc.Analyze(recipe, inventory, 0)

	match := analysis.Matches[0]
	if !match.IsFullyAvailable {
		t.Error("IsFullyAvailable = false, want true")
	}
	if !match.LowStock {
		t.Error("LowStock = false, want true（剩 50 ml 低於門檻 100 ml）")
	}
	if !match.Expired {
		t.Error("Expired = false, want true")
	}
}
