package common

import (
	"encoding/json"
	"testing"

	"recipe-pantry/internal/core/unit"
)

func TestJSONRoundTrip(t *testing.T) {
	original := ParsedIngredient{
		OriginalText:   "2 cups flour, sifted",
		Quantity:       2,
		Unit:           unit.Cup,
		IngredientName: "flour",
		Notes:          "sifted",
	}

	data, err := ToJSON(original)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var restored ParsedIngredient
	if err := ParseJSONBytes([]byte(data), &restored); err != nil {
		t.Fatalf("ParseJSONBytes: %v", err)
	}
	if restored != original {
		t.Errorf("restored = %+v, want %+v", restored, original)
	}
}

func TestParseJSONBytesRejectsTrailingData(t *testing.T) {
	var v ParsedIngredient
	err := ParseJSONBytes([]byte(`{"quantity": 1}{"quantity": 2}`), &v)
	if err == nil {
		t.Error("多餘的 JSON 資料應視為錯誤")
	}
}

func TestParseJSONBytesInvalid(t *testing.T) {
	var v ParsedIngredient
	if err := ParseJSONBytes([]byte(`not json`), &v); err == nil {
		t.Error("無效 JSON 應回傳錯誤")
	}
}

func TestParseJSONBytesUseNumber(t *testing.T) {
	// 解進 interface{} 時數值保持 json.Number，不失真成 float64
	var v map[string]interface{}
	if err := ParseJSONBytes([]byte(`{"quantity": 9007199254740993}`), &v); err != nil {
		t.Fatalf("ParseJSONBytes: %v", err)
	}
	n, ok := v["quantity"].(json.Number)
	if !ok {
		t.Fatalf("quantity = %T, want json.Number", v["quantity"])
	}
	if n.String() != "9007199254740993" {
		t.Errorf("quantity = %s, want 9007199254740993", n)
	}
}
