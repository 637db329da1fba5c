package ingredient

import (
	"fmt"
	"regexp"
	"strings"

	"recipe-pantry/internal/core/unit"
	"recipe-pantry/internal/pkg/common"
)

// IssueKind 瑕疵類別
type IssueKind string

const (
	// IssueLeadingDot 名稱以「. 」開頭，縮寫拆分失敗的殘留
	IssueLeadingDot IssueKind = "leading_dot"
	// IssueGluedUnit 名稱以解析器漏掉的單位縮寫加「. 」開頭
	IssueGluedUnit IssueKind = "glued_unit"
	// IssueExtraWhitespace 名稱內有連續空白
	IssueExtraWhitespace IssueKind = "extra_whitespace"
)

// Issue 偵測到的瑕疵與建議修正值
// 偵測不會改動原資料；套用修正會產生新副本
type Issue struct {
	Kind          IssueKind  `json:"kind"`
	Description   string     `json:"description"`
	SuggestedName string     `json:"suggested_name"`
	SuggestedUnit *unit.Unit `json:"suggested_unit,omitempty"` // nil 表示單位不變
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// DetectIssues 檢查已解析的食材是否帶有已知文字瑕疵
// 可能同時回傳多個瑕疵，由呼叫端決定套用哪一個
func DetectIssues(p common.ParsedIngredient) []Issue {
	var issues []Issue
	name := p.IngredientName

	// 「. 」開頭的殘留
	if strings.HasPrefix(name, ". ") {
		issues = append(issues, Issue{
			Kind:          IssueLeadingDot,
			Description:   "名稱以「. 」開頭",
			SuggestedName: strings.TrimSpace(strings.TrimPrefix(name, ". ")),
		})
	}

	// 解析器漏掉的單位縮寫黏在名稱前，如「c. 」「tbsp. 」
	for abbr, u := range unit.AbbreviationTable {
		prefix := abbr + ". "
		if len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			suggested := u
			issues = append(issues, Issue{
				Kind:          IssueGluedUnit,
				Description:   fmt.Sprintf("名稱開頭帶有未辨識的單位縮寫「%s.」", abbr),
				SuggestedName: strings.TrimSpace(name[len(prefix):]),
				SuggestedUnit: &suggested,
			})
		}
	}

	// 連續空白
	if multiSpaceRe.MatchString(name) {
		issues = append(issues, Issue{
			Kind:          IssueExtraWhitespace,
			Description:   "名稱內有連續空白",
			SuggestedName: multiSpaceRe.ReplaceAllString(name, " "),
		})
	}

	return issues
}

// ApplyFix 套用單一修正，回傳修正後的新副本
func ApplyFix(p common.ParsedIngredient, issue Issue) common.ParsedIngredient {
	fixed := p
	fixed.IngredientName = issue.SuggestedName
	if issue.SuggestedUnit != nil {
		fixed.Unit = *issue.SuggestedUnit
	}
	return fixed
}

// FixAll 對每個食材套用第一個偵測到的瑕疵修正
func FixAll(ingredients []common.ParsedIngredient) []common.ParsedIngredient {
	fixed := make([]common.ParsedIngredient, len(ingredients))
	for i, p := range ingredients {
		if issues := DetectIssues(p); len(issues) > 0 {
			fixed[i] = ApplyFix(p, issues[0])
		} else {
			fixed[i] = p
		}
	}
	return fixed
}
