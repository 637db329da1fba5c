// Package scaling 依目標份數縮放食譜食材數量並產生顯示字串
package scaling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

const (
	// DefaultMinServings 份數下限預設值
	DefaultMinServings = 1
	// DefaultMaxServings 份數上限預設值
	DefaultMaxServings = 50

	// fractionTolerance 十進位值與常用分數的容許誤差
	fractionTolerance = 0.05
)

// ScaledIngredient 縮放後的食材，附帶顯示字串
type ScaledIngredient struct {
	common.RecipeIngredient
	ScaledQuantity  float64 `json:"scaled_quantity"`
	DisplayQuantity string  `json:"display_quantity"`
}

// cookingFraction 常用烹飪分數
type cookingFraction struct {
	value float64
	label string
}

// 九個常用烹飪分數：二分之一到八分之幾，加上三分位
var cookingFractions = []cookingFraction{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{1.0 / 3.0, "1/3"},
	{0.375, "3/8"},
	{0.5, "1/2"},
	{0.625, "5/8"},
	{2.0 / 3.0, "2/3"},
	{0.75, "3/4"},
	{0.875, "7/8"},
}

// Scale 依 currentServings/defaultServings 的比例縮放每個食材數量
// defaultServings 由呼叫端保證為正整數（食譜建立時強制 >= 1）
func Scale(ingredients []common.RecipeIngredient, currentServings, defaultServings int) []ScaledIngredient {
	factor := float64(currentServings) / float64(defaultServings)

	scaled := make([]ScaledIngredient, len(ingredients))
	for i, ing := range ingredients {
		quantity := ing.Quantity * factor
		scaled[i] = ScaledIngredient{
			RecipeIngredient: ing,
			ScaledQuantity:   quantity,
			DisplayQuantity:  FormatQuantity(quantity, ing.Unit),
		}
	}
	return scaled
}

// FormatQuantity 將數量格式化為顯示字串
// 低於 0.001 顯示「0」；離散單位取最接近的整數；
// 連續單位依數量級選擇小數位數，並去除尾端的 0
func FormatQuantity(quantity float64, u unit.Unit) string {
	if quantity < 0.001 {
		return "0"
	}

	if unit.IsDiscrete(u) {
		return strconv.Itoa(int(math.Round(quantity)))
	}

	return formatContinuous(quantity)
}

// formatContinuous 依數量級選擇小數位數並去除尾端的 0
func formatContinuous(quantity float64) string {
	var decimals int
	switch {
	case quantity < 0.1:
		decimals = 3
	case quantity < 1:
		decimals = 2
	case quantity < 10:
		decimals = 1
	default:
		decimals = 2
	}

	s := strconv.FormatFloat(quantity, 'f', decimals, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// ToMixedNumber 將十進位數量轉成帶分數字串
// 小數部分在容許誤差內貼近常用烹飪分數時採用分數表示，
// 否則退回十進位格式
func ToMixedNumber(quantity float64) string {
	if quantity < 0.001 {
		return "0"
	}

	whole := math.Floor(quantity)
	frac := quantity - whole

	// 貼近整數時直接取整
	if frac < fractionTolerance {
		return strconv.Itoa(int(whole))
	}
	if frac > 1-fractionTolerance {
		return strconv.Itoa(int(whole) + 1)
	}

	// 取最接近的分數；相鄰分數的容許區間可能重疊，距離優先
	best := -1
	bestDiff := fractionTolerance
	for i, cf := range cookingFractions {
		if diff := math.Abs(frac - cf.value); diff <= bestDiff {
			best = i
			bestDiff = diff
		}
	}
	if best >= 0 {
		label := cookingFractions[best].label
		if whole == 0 {
			return label
		}
		return fmt.Sprintf("%d %s", int(whole), label)
	}

	return formatContinuous(quantity)
}

// ValidateServings 份數驗證：範圍內的正整數
func ValidateServings(servings, min, max int) bool {
	if min <= 0 {
		min = DefaultMinServings
	}
	if max <= 0 {
		max = DefaultMaxServings
	}
	return servings >= min && servings <= max
}
