package scaling

import (
	"testing"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

func sampleIngredients() []common.RecipeIngredient {
	return []common.RecipeIngredient{
		{IngredientName: "flour", Quantity: 2, Unit: unit.Cup},
		{IngredientName: "eggs", Quantity: 3, Unit: unit.Piece},
		{IngredientName: "salt", Quantity: 0.5, Unit: unit.Teaspoon, IsOptional: true},
	}
}

func TestScaleDouble(t *testing.T) {
	scaled := Scale(sampleIngredients(), 8, 4)

	if scaled[0].ScaledQuantity != 4 {
		t.Errorf("flour scaled = %v, want 4", scaled[0].ScaledQuantity)
	}
	if scaled[1].ScaledQuantity != 6 {
		t.Errorf("eggs scaled = %v, want 6", scaled[1].ScaledQuantity)
	}
	if scaled[2].ScaledQuantity != 1 {
		t.Errorf("salt scaled = %v, want 1", scaled[2].ScaledQuantity)
	}
}

func TestScaleIdentity(t *testing.T) {
	// 縮放比例為 1 時數量不變
	for _, servings := range []int{1, 4, 7, 50} {
		scaled := Scale(sampleIngredients(), servings, servings)
		for i, ing := range sampleIngredients() {
			if scaled[i].ScaledQuantity != ing.Quantity {
				t.Errorf("servings=%d: %s scaled = %v, want %v",
					servings, ing.IngredientName, scaled[i].ScaledQuantity, ing.Quantity)
			}
		}
	}
}

func TestScaleDown(t *testing.T) {
	scaled := Scale(sampleIngredients(), 2, 4)
	if scaled[0].ScaledQuantity != 1 {
		t.Errorf("flour scaled = %v, want 1", scaled[0].ScaledQuantity)
	}
	// 離散單位顯示取整
	if scaled[1].DisplayQuantity != "2" {
		t.Errorf("eggs display = %q, want \"2\"", scaled[1].DisplayQuantity)
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		q    float64
		u    unit.Unit
		want string
	}{
		{0.0005, unit.Cup, "0"},
		{0, unit.Gram, "0"},
		{2.5, unit.Piece, "3"},   // 離散單位取最接近整數
		{1.4, unit.Piece, "1"},   //
		{0.034, unit.Cup, "0.034"},
		{0.25, unit.Cup, "0.25"},
		{2.5, unit.Cup, "2.5"},
		{2.0, unit.Cup, "2"},
		{12.346, unit.Gram, "12.35"},
		{100, unit.Gram, "100"},
	}

	for _, tt := range tests {
		if got := FormatQuantity(tt.q, tt.u); got != tt.want {
			t.Errorf("FormatQuantity(%v, %s) = %q, want %q", tt.q, tt.u, got, tt.want)
		}
	}
}

func TestToMixedNumber(t *testing.T) {
	tests := []struct {
		q    float64
		want string
	}{
		{0.5, "1/2"},
		{1.5, "1 1/2"},
		{0.25, "1/4"},
		{0.75, "3/4"},
		{2.33, "2 1/3"},
		{0.66, "2/3"},
		{0.125, "1/8"},
		{1.625, "1 5/8"},
		{3.0, "3"},
		{2.98, "3"},  // 貼近整數時取整
		{2.02, "2"},  //
		{0.0001, "0"},
	}

	for _, tt := range tests {
		if got := ToMixedNumber(tt.q); got != tt.want {
			t.Errorf("ToMixedNumber(%v) = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestValidateServings(t *testing.T) {
	tests := []struct {
		servings int
		min, max int
		want     bool
	}{
		{1, 1, 50, true},
		{50, 1, 50, true},
		{0, 1, 50, false},
		{51, 1, 50, false},
		{-3, 1, 50, false},
		{10, 0, 0, true}, // 未指定範圍時採用預設 1..50
		{51, 0, 0, false},
	}

	for _, tt := range tests {
		if got := ValidateServings(tt.servings, tt.min, tt.max); got != tt.want {
			t.Errorf("ValidateServings(%d, %d, %d) = %v, want %v",
				tt.servings, tt.min, tt.max, got, tt.want)
		}
	}
}
