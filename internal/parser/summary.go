package parser

import (
	"regexp"
	"strings"

	"finsight/internal/model"
)

// SummaryExtractor 财务概要表提取器
type SummaryExtractor struct{}

// NewSummaryExtractor 创建概要表提取器
func NewSummaryExtractor() *SummaryExtractor {
	return &SummaryExtractor{}
}

// summaryFields 概要指标名 → 赋值函数
// 行内紧随名称之后的第一个数值单元格为取值
var summaryFields = []struct {
	keywords []string
	assign   func(*model.FinancialSummaryData, float64)
}{
	{[]string{"营业收入", "主营业务收入"}, func(d *model.FinancialSummaryData, v float64) { d.Revenue = v }},
	{[]string{"营业成本", "主营业务成本"}, func(d *model.FinancialSummaryData, v float64) { d.Cost = v }},
	{[]string{"毛利"}, func(d *model.FinancialSummaryData, v float64) { d.GrossProfit = v }},
	{[]string{"期间费用", "三项费用"}, func(d *model.FinancialSummaryData, v float64) { d.Expense = v }},
	{[]string{"净利润"}, func(d *model.FinancialSummaryData, v float64) { d.NetProfit = v }},
	{[]string{"货币资金"}, func(d *model.FinancialSummaryData, v float64) { d.MonetaryFunds = v }},
	{[]string{"应收账款"}, func(d *model.FinancialSummaryData, v float64) { d.Receivables = v }},
	{[]string{"存货"}, func(d *model.FinancialSummaryData, v float64) { d.Inventory = v }},
	{[]string{"资产总计", "总资产"}, func(d *model.FinancialSummaryData, v float64) { d.TotalAssets = v }},
	{[]string{"负债总计", "总负债", "负债合计"}, func(d *model.FinancialSummaryData, v float64) { d.TotalLiabilities = v }},
}

// Extract 按"名称格后跟数值格"的键值布局提取概要指标
// 非数值单元格一律按 0 处理，不抛错
func (e *SummaryExtractor) Extract(sheet *RawSheet) *model.FinancialSummaryData {
	data := &model.FinancialSummaryData{}

	for _, row := range sheet.Rows {
		for c, cell := range row {
			label := NormalizeText(cell)
			if label == "" {
				continue
			}
			for _, field := range summaryFields {
				if !ContainsAny(label, field.keywords) {
					continue
				}
				// 取名称格之后第一个数值格
				for v := c + 1; v < len(row); v++ {
					if IsNumeric(row[v]) {
						field.assign(data, ParseFloat(row[v]))
						break
					}
				}
				break
			}
		}
	}

	return data
}

// AgingExtractor 账龄分析表提取器
type AgingExtractor struct{}

// NewAgingExtractor 创建账龄表提取器
func NewAgingExtractor() *AgingExtractor {
	return &AgingExtractor{}
}

var reAgingBucket = regexp.MustCompile(`^(\d+年以内|\d+-\d+年|\d+年以上|一年以内|一年以上|\d+天以内|\d+-\d+天|\d+天以上)$`)

// Extract 提取账龄分布
// 表头行中命中区间模式的列为账龄档位，首个含数值的数据行为金额行
func (e *AgingExtractor) Extract(sheet *RawSheet) *model.AgingAnalysis {
	aging := &model.AgingAnalysis{SubjectName: "应收账款"}

	// 定位档位表头行
	headerIdx := -1
	var bucketCols []int
	totalCol := -1
	for i, row := range sheet.Rows {
		var cols []int
		for c, cell := range row {
			if reAgingBucket.MatchString(NormalizeText(cell)) {
				cols = append(cols, c)
			}
		}
		if len(cols) >= 2 {
			headerIdx = i
			bucketCols = cols
			for c, cell := range row {
				if IsTotalRowText(NormalizeText(cell)) {
					totalCol = c
					break
				}
			}
			break
		}
	}
	if headerIdx < 0 {
		return aging
	}

	header := sheet.Rows[headerIdx]

	// 科目名：表头以上区域出现 应收/应付 即采纳
	for i := 0; i <= headerIdx; i++ {
		text := rowText(sheet.Rows[i])
		if strings.Contains(text, "应付") {
			aging.SubjectName = "应付账款"
			break
		}
		if strings.Contains(text, "应收") {
			break
		}
	}

	// 首个含数值的数据行
	for i := headerIdx + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		hasValue := false
		for _, c := range bucketCols {
			if IsNumeric(cellAt(row, c)) {
				hasValue = true
				break
			}
		}
		if !hasValue {
			continue
		}

		for _, c := range bucketCols {
			amount := ParseFloat(cellAt(row, c))
			aging.Buckets = append(aging.Buckets, model.AgingBucket{
				Label:  NormalizeText(cellAt(header, c)),
				Amount: amount,
			})
			aging.Total += amount
		}
		// 有合计列时以其为准
		if totalCol >= 0 && IsNumeric(cellAt(row, totalCol)) {
			aging.Total = ParseFloat(cellAt(row, totalCol))
		}
		break
	}

	return aging
}
