// Package instruction 在食譜指示文字中定位每個食材的提及位置，
// 將全文切成交替的純文字／食材片段，並讓片段上的縮放數量
// 跟隨當前份數更新
package instruction

import (
	"regexp"
	"sort"
	"strings"

	"recipe-pantry/internal/core/scaling"
	"recipe-pantry/internal/pkg/common"
)

// VariantRules 名稱變體產生規則
// 規則是資料而非程式分支，方便調整與測試
type VariantRules struct {
	// Modifiers 產生「去修飾詞」變體時移除的常見修飾詞
	Modifiers []string
	// MinWordLength 多字名稱拆出單字變體時的最小字元數
	MinWordLength int
}

// DefaultVariantRules 預設變體規則
func DefaultVariantRules() VariantRules {
	return VariantRules{
		Modifiers: []string{
			"fresh", "dried", "ground", "large", "small", "medium",
			"whole", "raw", "cooked", "ripe",
		},
		MinWordLength: 3,
	}
}

// Mention 指示文字中一次已定位的食材提及
type Mention struct {
	Start           int     `json:"start"`
	End             int     `json:"end"`
	Text            string  `json:"text"`
	IngredientIndex int     `json:"ingredient_index"`
	ScaledQuantity  float64 `json:"scaled_quantity"`
	DisplayQuantity string  `json:"display_quantity"`
}

// Segment 指示文字的一個片段；所有片段依序串接即還原全文
type Segment struct {
	Text            string                   `json:"text"`
	IsIngredient    bool                     `json:"is_ingredient"`
	Ingredient      *common.RecipeIngredient `json:"ingredient,omitempty"`
	ScaledQuantity  float64                  `json:"scaled_quantity,omitempty"`
	DisplayQuantity string                   `json:"display_quantity,omitempty"`
}

// ParsedInstructions 連結結果
type ParsedInstructions struct {
	Segments           []Segment `json:"segments"`
	IngredientMentions []Mention `json:"ingredient_mentions"`
}

// Linker 指示文字與食材的連結器
// 緩存由外部注入以控制生命週期，不使用模組層級單例
type Linker struct {
	rules VariantRules
	cache *Cache
}

// NewLinker 創建連結器
func NewLinker(rules VariantRules, cache *Cache) *Linker {
	if cache == nil {
		cache = NewCache()
	}
	return &Linker{rules: rules, cache: cache}
}

// variant 一個名稱變體與其來源食材
type variant struct {
	text            string
	ingredientIndex int
}

// Link 定位所有食材提及並切分指示文字
// 提及位置只依賴文字與食材集合，會被緩存；
// 份數改變時只重算每個提及的縮放數量顯示
func (l *Linker) Link(text string, ingredients []common.RecipeIngredient, currentServings, defaultServings int) ParsedInstructions {
	key := Key(text, ingredients)

	spans, ok := l.cache.Get(key)
	if !ok {
		spans = l.locateMentions(text, ingredients)
		l.cache.Set(key, spans)
	}

	factor := float64(currentServings) / float64(defaultServings)

	mentions := make([]Mention, len(spans))
	for i, sp := range spans {
		ing := ingredients[sp.IngredientIndex]
		quantity := ing.Quantity * factor
		mentions[i] = Mention{
			Start:           sp.Start,
			End:             sp.End,
			Text:            text[sp.Start:sp.End],
			IngredientIndex: sp.IngredientIndex,
			ScaledQuantity:  quantity,
			DisplayQuantity: scaling.FormatQuantity(quantity, ing.Unit),
		}
	}

	return ParsedInstructions{
		Segments:           buildSegments(text, ingredients, mentions),
		IngredientMentions: mentions,
	}
}

// ClearCache 清空提及位置緩存
func (l *Linker) ClearCache() {
	l.cache.Clear()
}

// locateMentions 掃描指示文字，回傳不重疊的提及範圍（依位置排序）
// 變體由長到短嘗試，先佔先贏，較長的變體優先
func (l *Linker) locateMentions(text string, ingredients []common.RecipeIngredient) []mentionSpan {
	variants := l.generateVariants(ingredients)

	// 長度遞減排序；同長度維持產生順序（先出現的食材優先）
	sort.SliceStable(variants, func(i, j int) bool {
		return len(variants[i].text) > len(variants[j].text)
	})

	var accepted []mentionSpan
	for _, v := range variants {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(v.text) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if overlaps(accepted, loc[0], loc[1]) {
				continue
			}
			accepted = append(accepted, mentionSpan{
				Start:           loc[0],
				End:             loc[1],
				IngredientIndex: v.ingredientIndex,
			})
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

// generateVariants 為每個食材產生名稱變體：
// 正規化名稱、原始名稱、單複數切換、去修飾詞形式，
// 以及多字名稱中每個達到長度門檻的單字
func (l *Linker) generateVariants(ingredients []common.RecipeIngredient) []variant {
	var variants []variant
	for i, ing := range ingredients {
		seen := make(map[string]bool)
		add := func(form string) {
			form = strings.TrimSpace(form)
			key := strings.ToLower(form)
			if form == "" || seen[key] {
				return
			}
			seen[key] = true
			variants = append(variants, variant{text: form, ingredientIndex: i})
		}

		normalized := common.NormalizeName(ing.IngredientName)
		add(normalized)
		add(ing.IngredientName)

		// 單複數切換
		if strings.HasSuffix(normalized, "s") {
			add(strings.TrimSuffix(normalized, "s"))
		} else {
			add(normalized + "s")
		}

		// 去修飾詞形式
		if stripped := l.stripModifiers(normalized); stripped != normalized {
			add(stripped)
			if strings.HasSuffix(stripped, "s") {
				add(strings.TrimSuffix(stripped, "s"))
			} else {
				add(stripped + "s")
			}
		}

		// 多字名稱的單字變體
		words := strings.Fields(normalized)
		if len(words) > 1 {
			for _, w := range words {
				if len(w) >= l.rules.MinWordLength {
					add(w)
				}
			}
		}
	}
	return variants
}

// stripModifiers 移除名稱中的常見修飾詞
func (l *Linker) stripModifiers(name string) string {
	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		isModifier := false
		for _, m := range l.rules.Modifiers {
			if w == m {
				isModifier = true
				break
			}
		}
		if !isModifier {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return name
	}
	return strings.Join(kept, " ")
}

// overlaps 檢查範圍是否與既有提及重疊
func overlaps(spans []mentionSpan, start, end int) bool {
	for _, sp := range spans {
		if start < sp.End && end > sp.Start {
			return true
		}
	}
	return false
}

// buildSegments 以提及位置切分全文，維持嚴格的
// 純文字／食材交替結構：純文字片段永遠比提及多一個，
// 依序串接所有片段可完整還原原始文字
func buildSegments(text string, ingredients []common.RecipeIngredient, mentions []Mention) []Segment {
	segments := make([]Segment, 0, 2*len(mentions)+1)
	pos := 0
	for _, m := range mentions {
		segments = append(segments, Segment{Text: text[pos:m.Start]})
		ing := ingredients[m.IngredientIndex]
		segments = append(segments, Segment{
			Text:            m.Text,
			IsIngredient:    true,
			Ingredient:      &ing,
			ScaledQuantity:  m.ScaledQuantity,
			DisplayQuantity: m.DisplayQuantity,
		})
		pos = m.End
	}
	segments = append(segments, Segment{Text: text[pos:]})
	return segments
}
