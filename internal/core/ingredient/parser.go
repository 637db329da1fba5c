// Package ingredient 將自由格式的食材文字解析為結構化資料，
// 並對解析結果提供已知文字瑕疵的偵測與修正
package ingredient

import (
	"regexp"
	"strconv"
	"strings"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

// 常見的 unicode 分數字符
var vulgarFractions = map[rune]float64{
	'½': 0.5,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'¼': 0.25,
	'¾': 0.75,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// 可省略食材的提示詞，於剩餘文字中做不分大小寫的子字串比對
var optionalPhrases = []string{
	"optional",
	"to taste",
	"if desired",
	"as needed",
	"for serving",
	"for garnish",
	"garnish",
}

// 處理方式詞彙，出現在名稱開頭或逗號後時移入 Notes
var preparationWords = []string{
	"chopped", "diced", "sliced", "minced", "grated", "shredded",
	"crushed", "ground", "fresh", "dried", "cooked", "raw",
}

var (
	// 數量樣式，依優先序嘗試：帶分數、純分數、範圍、小數/整數
	mixedNumberRe   = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)\b`)
	mixedGlyphRe    = regexp.MustCompile(`^(\d+)\s*([½⅓⅔¼¾⅛⅜⅝⅞])`)
	fractionRe      = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\b`)
	fractionGlyphRe = regexp.MustCompile(`^([½⅓⅔¼¾⅛⅜⅝⅞])`)
	rangeRe         = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\b`)
	decimalRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\b`)

	prepCommaRe   = regexp.MustCompile(`(?i),\s*(` + strings.Join(preparationWords, "|") + `)\b([^,()]*)`)
	parentheticRe = regexp.MustCompile(`\(([^)]*)\)`)
)

// Parse 解析單行食材文字
// 全函數：任何輸入都會得到結果，無法解析的片段退回安全預設值
// （數量 1、單位 piece），原始文字完整保留
func Parse(text string) common.ParsedIngredient {
	parsed := common.ParsedIngredient{
		OriginalText: text,
		Quantity:     1,
		Unit:         unit.Piece,
	}

	remaining := strings.TrimSpace(text)

	// 1. 數量
	quantity, consumed := extractQuantity(remaining)
	if consumed > 0 {
		parsed.Quantity = quantity
		remaining = strings.TrimSpace(remaining[consumed:])
	}

	// 2. 單位：取下一個以空白分隔的 token 比對單位表
	// 保留句點不去除，讓「c.」這類殘留縮寫交給修正器處理
	if token, rest, ok := splitFirstField(remaining); ok {
		if u, found := unit.FromToken(strings.TrimRight(token, ",")); found && !strings.HasSuffix(token, ".") {
			parsed.Unit = u
			remaining = strings.TrimSpace(rest)
		}
	}

	// 3. 可省略判定：在剩餘文字做子字串比對，比對到的提示詞自名稱移除
	lower := strings.ToLower(remaining)
	for _, phrase := range optionalPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			parsed.IsOptional = true
			remaining = remaining[:idx] + remaining[idx+len(phrase):]
			lower = strings.ToLower(remaining)
		}
	}

	// 4. 名稱與備註拆分
	name, notes := splitNameNotes(remaining)
	parsed.IngredientName = name
	parsed.Notes = notes

	return parsed
}

// extractQuantity 自字串開頭抽取數量，回傳數值與消耗的位元組數
// 沒有比對到任何樣式時回傳 (0, 0)，呼叫端保持預設數量 1
func extractQuantity(s string) (float64, int) {
	// 帶分數「1 1/2」
	if m := mixedNumberRe.FindStringSubmatch(s); m != nil {
		whole := parseFloat(m[1])
		num := parseFloat(m[2])
		den := parseFloat(m[3])
		if den > 0 {
			return whole + num/den, len(m[0])
		}
	}

	// 帶分數「1½」
	if m := mixedGlyphRe.FindStringSubmatch(s); m != nil {
		whole := parseFloat(m[1])
		frac := vulgarFractions[[]rune(m[2])[0]]
		return whole + frac, len(m[0])
	}

	// 純分數「3/4」
	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num := parseFloat(m[1])
		den := parseFloat(m[2])
		if den > 0 {
			return num / den, len(m[0])
		}
	}

	// 純分數「½」
	if m := fractionGlyphRe.FindStringSubmatch(s); m != nil {
		return vulgarFractions[[]rune(m[1])[0]], len(m[0])
	}

	// 範圍「2-3」「2 to 3」取算術平均
	// 需先於小數比對，否則範圍起點會被當成單一數值
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		low := parseFloat(m[1])
		high := parseFloat(m[2])
		return (low + high) / 2, len(m[0])
	}

	// 小數或整數
	if m := decimalRe.FindStringSubmatch(s); m != nil {
		return parseFloat(m[1]), len(m[0])
	}

	return 0, 0
}

// splitFirstField 取出第一個以空白分隔的欄位與其餘文字
func splitFirstField(s string) (field, rest string, ok bool) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(fields) == 0 || fields[0] == "" {
		return "", "", false
	}
	if len(fields) == 1 {
		return fields[0], "", true
	}
	return fields[0], fields[1], true
}

// splitNameNotes 將剩餘文字拆成名稱與備註：
// 逗號帶入的處理方式片段與括號內容移入備註，其餘為名稱
func splitNameNotes(s string) (name, notes string) {
	var fragments []string

	// 括號內容
	s = parentheticRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSpace(strings.Trim(m, "()"))
		if inner != "" {
			fragments = append(fragments, inner)
		}
		return ""
	})

	// 逗號帶入的處理方式
	s = prepCommaRe.ReplaceAllStringFunc(s, func(m string) string {
		frag := strings.TrimSpace(strings.TrimLeft(m, ", "))
		if frag != "" {
			fragments = append(fragments, frag)
		}
		return ""
	})

	// 名稱開頭的處理方式詞
	words := strings.Fields(s)
	for len(words) > 1 && isPreparationWord(words[0]) {
		fragments = append([]string{strings.ToLower(words[0])}, fragments...)
		words = words[1:]
	}

	name = strings.Join(words, " ")
	name = strings.TrimSpace(strings.Trim(name, ","))
	notes = strings.Join(fragments, ", ")
	return name, notes
}

func isPreparationWord(w string) bool {
	w = strings.ToLower(strings.Trim(w, ","))
	for _, p := range preparationWords {
		if w == p {
			return true
		}
	}
	return false
}

// parseFloat 樣式已保證為合法數字，忽略錯誤
func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
