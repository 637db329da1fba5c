// Package unit 定義度量單位詞彙表與同維度單位換算
package unit

import (
	"strings"
)

// Unit 度量單位
type Unit string

const (
	// 質量單位（基準：克）
	Gram     Unit = "g"
	Kilogram Unit = "kg"
	Ounce    Unit = "oz"
	Pound    Unit = "lb"

	// 體積單位（基準：毫升）
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	Cup        Unit = "cup"

	// 離散單位（不可換算）
	Piece Unit = "piece"
	Pinch Unit = "pinch"
	Dash  Unit = "dash"
	None  Unit = "none"
)

// Dimension 單位維度
type Dimension int

const (
	DimensionNone Dimension = iota // 離散單位沒有維度
	DimensionMass
	DimensionVolume
)

// unitDef 單位定義：維度與換算至基準單位的倍率
type unitDef struct {
	dimension Dimension
	toBase    float64
}

// 每個單位只屬於一個維度；離散單位只能換算成自己
var unitDefs = map[Unit]unitDef{
	Gram:     {DimensionMass, 1},
	Kilogram: {DimensionMass, 1000},
	Ounce:    {DimensionMass, 28.3495},
	Pound:    {DimensionMass, 453.592},

	Milliliter: {DimensionVolume, 1},
	Liter:      {DimensionVolume, 1000},
	Teaspoon:   {DimensionVolume, 4.92892},
	Tablespoon: {DimensionVolume, 14.7868},
	Cup:        {DimensionVolume, 236.588},

	Piece: {DimensionNone, 0},
	Pinch: {DimensionNone, 0},
	Dash:  {DimensionNone, 0},
	None:  {DimensionNone, 0},
}

// tokenTable 文字 token 對應單位，涵蓋常見單複數與縮寫
var tokenTable = map[string]Unit{
	"g": Gram, "gram": Gram, "grams": Gram,
	"kg": Kilogram, "kilogram": Kilogram, "kilograms": Kilogram,
	"oz": Ounce, "ounce": Ounce, "ounces": Ounce,
	"lb": Pound, "lbs": Pound, "pound": Pound, "pounds": Pound,

	"ml": Milliliter, "milliliter": Milliliter, "milliliters": Milliliter,
	"l": Liter, "liter": Liter, "liters": Liter, "litre": Liter, "litres": Liter,
	"tsp": Teaspoon, "teaspoon": Teaspoon, "teaspoons": Teaspoon,
	"tbsp": Tablespoon, "tablespoon": Tablespoon, "tablespoons": Tablespoon, "tbs": Tablespoon,
	"c": Cup, "cup": Cup, "cups": Cup,

	"piece": Piece, "pieces": Piece, "pc": Piece, "pcs": Piece,
	"pinch": Pinch, "pinches": Pinch,
	"dash": Dash, "dashes": Dash,
}

// AbbreviationTable 帶句點的縮寫對應單位，供修正器辨識黏在名稱前的殘留縮寫
var AbbreviationTable = map[string]Unit{
	"c":    Cup,
	"tsp":  Teaspoon,
	"tbsp": Tablespoon,
	"oz":   Ounce,
	"lb":   Pound,
	"g":    Gram,
	"kg":   Kilogram,
	"ml":   Milliliter,
}

// FromToken 以 token 查詢單位（不分大小寫）
func FromToken(token string) (Unit, bool) {
	u, ok := tokenTable[strings.ToLower(strings.TrimSpace(token))]
	return u, ok
}

// Tokens 回傳所有可辨識的單位 token，供解析器建立比對表
func Tokens() map[string]Unit {
	out := make(map[string]Unit, len(tokenTable))
	for k, v := range tokenTable {
		out[k] = v
	}
	return out
}

// DimensionOf 回傳單位所屬維度
func DimensionOf(u Unit) Dimension {
	return unitDefs[u].dimension
}

// IsDiscrete 是否為離散單位（無維度，顯示時取整數）
func IsDiscrete(u Unit) bool {
	return unitDefs[u].dimension == DimensionNone
}

// Convert 同維度單位換算
// from == to 時回傳原值；維度不同（含離散單位）回傳 (0, false)
// 不可換算是正常分支而非錯誤，呼叫端必須檢查第二個回傳值
func Convert(quantity float64, from, to Unit) (float64, bool) {
	if from == to {
		return quantity, true
	}

	fromDef, fromOK := unitDefs[from]
	toDef, toOK := unitDefs[to]
	if !fromOK || !toOK {
		return 0, false
	}

	// 離散單位只能換算成自己
	if fromDef.dimension == DimensionNone || toDef.dimension == DimensionNone {
		return 0, false
	}
	if fromDef.dimension != toDef.dimension {
		return 0, false
	}

	return quantity * fromDef.toBase / toDef.toBase, true
}
