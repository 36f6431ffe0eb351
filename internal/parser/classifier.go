package parser

import "strings"

// classifyScanRows 分类时扫描的行数上限
const classifyScanRows = 10

// ClassifyRule 分类规则：AllOf 全部命中且 AnyOf 至少命中一个
type ClassifyRule struct {
	Type  SheetType
	AllOf []string
	AnyOf []string
}

// Matches 判断规则是否命中文本
func (r *ClassifyRule) Matches(text string) bool {
	for _, kw := range r.AllOf {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return true
	}
	return ContainsAny(text, r.AnyOf)
}

// DefaultRules 默认分类规则表，按优先级排列，先命中先赢
// 只看内容不看 Sheet 名：Sheet 名由用户随意命名，不可靠
func DefaultRules() []ClassifyRule {
	return []ClassifyRule{
		{Type: SheetTypeBalance, AnyOf: []string{"资产负债表", "资产负债"}},
		{Type: SheetTypeIncome, AnyOf: []string{"利润表", "损益表", "利润及利润分配"}},
		{Type: SheetTypeCashflow, AnyOf: []string{"现金流量表", "现金流量"}},
		{Type: SheetTypeSubject, AllOf: []string{"科目", "余额"}},
		{Type: SheetTypeLedger, AllOf: []string{"明细"}, AnyOf: []string{"借方", "贷方"}},
		{Type: SheetTypeSummary, AllOf: []string{"概要", "本年累计"}},
		{Type: SheetTypeAging, AnyOf: []string{"账龄", "1年以内", "1-2年", "2-3年", "3年以上"}},
	}
}

// SheetClassifier Sheet 类型分类器
type SheetClassifier struct {
	rules []ClassifyRule
}

// NewSheetClassifier 创建默认规则分类器
func NewSheetClassifier() *SheetClassifier {
	return &SheetClassifier{rules: DefaultRules()}
}

// NewSheetClassifierWithRules 创建自定义规则分类器
func NewSheetClassifierWithRules(rules []ClassifyRule) *SheetClassifier {
	return &SheetClassifier{rules: rules}
}

// Classify 识别 Sheet 类型
// 拼接前若干行的全部单元格文本后按规则表匹配，纯函数、无状态
func (c *SheetClassifier) Classify(sheet *RawSheet) SheetType {
	text := c.headText(sheet)
	for _, rule := range c.rules {
		if rule.Matches(text) {
			return rule.Type
		}
	}
	return SheetTypeUnknown
}

// headText 拼接前 N 行单元格文本
func (c *SheetClassifier) headText(sheet *RawSheet) string {
	var sb strings.Builder
	limit := classifyScanRows
	if len(sheet.Rows) < limit {
		limit = len(sheet.Rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range sheet.Rows[i] {
			sb.WriteString(NormalizeText(cell))
		}
	}
	return sb.String()
}
