package instruction

import (
	"strings"
	"testing"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

func newTestLinker() *Linker {
	return NewLinker(DefaultVariantRules(), NewCache())
}

func TestLinkAlternatingSegments(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "onions", Quantity: 2, Unit: unit.Piece},
		{IngredientName: "garlic", Quantity: 3, Unit: unit.Piece},
	}

	result := linker.Link("Add the diced onions and chopped garlic", ingredients, 4, 4)

	if len(result.IngredientMentions) != 2 {
		t.Fatalf("mentions = %d, want 2", len(result.IngredientMentions))
	}
	// 嚴格交替：純文字片段永遠比食材片段多一個，結尾為空純文字
	wantTexts := []string{"Add the diced ", "onions", " and chopped ", "garlic", ""}
	wantIngredient := []bool{false, true, false, true, false}
	if len(result.Segments) != len(wantTexts) {
		t.Fatalf("segments = %d, want %d", len(result.Segments), len(wantTexts))
	}
	for i, seg := range result.Segments {
		if seg.Text != wantTexts[i] {
			t.Errorf("segment[%d].Text = %q, want %q", i, seg.Text, wantTexts[i])
		}
		if seg.IsIngredient != wantIngredient[i] {
			t.Errorf("segment[%d].IsIngredient = %v, want %v", i, seg.IsIngredient, wantIngredient[i])
		}
	}
	if result.Segments[1].Ingredient == nil || result.Segments[1].Ingredient.IngredientName != "onions" {
		t.Error("segment[1] 未連結到 onions")
	}
}

func TestLinkSegmentsReassembleText(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "chicken", Quantity: 500, Unit: unit.Gram},
		{IngredientName: "olive oil", Quantity: 2, Unit: unit.Tablespoon},
		{IngredientName: "salt", Quantity: 1, Unit: unit.Teaspoon},
	}
	texts := []string{
		"Heat the olive oil, add the chicken and season with salt.",
		"Chicken goes in first.",
		"No ingredient appears here at all.",
		"",
		"salt salt salt",
	}

	for _, text := range texts {
		result := linker.Link(text, ingredients, 2, 2)
		var sb strings.Builder
		for _, seg := range result.Segments {
			sb.WriteString(seg.Text)
		}
		if sb.String() != text {
			t.Errorf("串接結果 %q != 原文 %q", sb.String(), text)
		}
	}
}

func TestLinkNoMentions(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "flour", Quantity: 2, Unit: unit.Cup},
	}

	result := linker.Link("Preheat the oven to 180C.", ingredients, 4, 4)

	if len(result.IngredientMentions) != 0 {
		t.Errorf("mentions = %d, want 0", len(result.IngredientMentions))
	}
	if len(result.Segments) != 1 || result.Segments[0].Text != "Preheat the oven to 180C." {
		t.Errorf("segments = %+v, want 單一純文字片段", result.Segments)
	}
}

func TestLinkVariants(t *testing.T) {
	tests := []struct {
		name           string
		ingredientName string
		text           string
		wantMention    string
	}{
		{"複數形", "carrot", "Slice the carrots thinly", "carrots"},
		{"單數形", "onions", "Add one onion", "onion"},
		{"去修飾詞", "fresh basil", "Tear the basil leaves", "basil"},
		{"多字名稱的單字", "olive oil", "Drizzle with oil", "oil"},
		{"大小寫不敏感", "garlic", "Garlic is added last", "Garlic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linker := newTestLinker()
			ingredients := []common.RecipeIngredient{
				{IngredientName: tt.ingredientName, Quantity: 1, Unit: unit.Piece},
			}
			result := linker.Link(tt.text, ingredients, 1, 1)
			if len(result.IngredientMentions) != 1 {
				t.Fatalf("mentions = %d, want 1", len(result.IngredientMentions))
			}
			m := result.IngredientMentions[0]
			if m.Text != tt.wantMention {
				t.Errorf("mention.Text = %q, want %q", m.Text, tt.wantMention)
			}
			if m.IngredientIndex != 0 {
				t.Errorf("IngredientIndex = %d, want 0", m.IngredientIndex)
			}
		})
	}
}

func TestLinkWordBoundary(t *testing.T) {
	// "oil" 不應命中 "boiling" 的子字串
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "oil", Quantity: 1, Unit: unit.Tablespoon},
	}

	result := linker.Link("Add to the boiling water", ingredients, 1, 1)
	if len(result.IngredientMentions) != 0 {
		t.Errorf("mentions = %d, want 0（不應命中 boiling）", len(result.IngredientMentions))
	}
}

func TestLinkLongestVariantWins(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "chicken stock", Quantity: 500, Unit: unit.Milliliter},
		{IngredientName: "chicken", Quantity: 300, Unit: unit.Gram},
	}

	result := linker.Link("Pour in the chicken stock slowly", ingredients, 2, 2)

	if len(result.IngredientMentions) != 1 {
		t.Fatalf("mentions = %d, want 1", len(result.IngredientMentions))
	}
	m := result.IngredientMentions[0]
	if m.Text != "chicken stock" || m.IngredientIndex != 0 {
		t.Errorf("mention = %+v, want 完整的 chicken stock", m)
	}
}

func TestLinkScaledDisplayFollowsServings(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "chicken", Quantity: 500, Unit: unit.Gram},
	}
	text := "Brown the chicken on all sides"

	atDefault := linker.Link(text, ingredients, 4, 4)
	doubled := linker.Link(text, ingredients, 8, 4)

	if atDefault.IngredientMentions[0].ScaledQuantity != 500 {
		t.Errorf("ScaledQuantity = %v, want 500", atDefault.IngredientMentions[0].ScaledQuantity)
	}
	if doubled.IngredientMentions[0].ScaledQuantity != 1000 {
		t.Errorf("ScaledQuantity = %v, want 1000", doubled.IngredientMentions[0].ScaledQuantity)
	}
	if doubled.IngredientMentions[0].DisplayQuantity != "1000" {
		t.Errorf("DisplayQuantity = %q, want \"1000\"", doubled.IngredientMentions[0].DisplayQuantity)
	}

	// 位置與份數無關，第二次呼叫應命中緩存
	stats := linker.cache.Stats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Errorf("cache stats = %v, want 1 hit 1 miss", stats)
	}
}

func TestLinkCacheClear(t *testing.T) {
	linker := newTestLinker()
	ingredients := []common.RecipeIngredient{
		{IngredientName: "salt", Quantity: 1, Unit: unit.Teaspoon},
	}
	text := "Season with salt"

	linker.Link(text, ingredients, 1, 1)
	linker.ClearCache()
	linker.Link(text, ingredients, 1, 1)

	stats := linker.cache.Stats()
	if stats["misses"].(int64) != 2 {
		t.Errorf("misses = %v, want 2（清空後需重算）", stats["misses"])
	}
	if stats["size"].(int) != 1 {
		t.Errorf("size = %v, want 1", stats["size"])
	}
}

func TestKeyIndependentOfServings(t *testing.T) {
	ingredients := []common.RecipeIngredient{
		{IngredientName: "Flour", Quantity: 2, Unit: unit.Cup},
	}
	// 鍵只看文字與正規化名稱，數量與單位不影響
	other := []common.RecipeIngredient{
		{IngredientName: "  flour ", Quantity: 99, Unit: unit.Gram},
	}
	if Key("mix", ingredients) != Key("mix", other) {
		t.Error("相同正規化名稱應產生相同緩存鍵")
	}
	if Key("mix", ingredients) == Key("stir", ingredients) {
		t.Error("不同文字應產生不同緩存鍵")
	}
}
