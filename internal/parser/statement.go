package parser

import (
	"strings"
)

// NamedAmount 报表行项目
type NamedAmount struct {
	Name   string
	Amount float64
}

// BalanceSheetData 资产负债表提取结果
type BalanceSheetData struct {
	Assets           []NamedAmount
	Liabilities      []NamedAmount
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
}

// IncomeStatementData 利润表提取结果
type IncomeStatementData struct {
	TotalIncome   float64
	TotalExpenses float64
	NetProfit     float64
}

// StatementExtractor 对外报表（资产负债表/利润表）提取器
type StatementExtractor struct{}

// NewStatementExtractor 创建报表提取器
func NewStatementExtractor() *StatementExtractor {
	return &StatementExtractor{}
}

// ExtractBalanceSheet 提取资产负债表
// 兼容左右对照式（资产 | 金额 | 负债及所有者权益 | 金额）与单列式布局
func (e *StatementExtractor) ExtractBalanceSheet(sheet *RawSheet) *BalanceSheetData {
	data := &BalanceSheetData{}

	splitCol := e.findLiabilityColumn(sheet)
	section := ""

	for _, row := range sheet.Rows {
		if splitCol > 0 {
			e.takeSideBySide(row, splitCol, data)
			continue
		}

		// 单列式：按段落标题切换归属
		text := NormalizeText(rowText(row))
		switch {
		case strings.Contains(text, "所有者权益") || strings.Contains(text, "股东权益"):
			section = "equity"
		case strings.Contains(text, "负债"):
			section = "liability"
		case strings.Contains(text, "资产"):
			section = "asset"
		}
		name, amount, ok := firstNameLastAmount(row)
		if !ok {
			continue
		}
		e.takeItem(name, amount, section, data)
	}

	return data
}

// findLiabilityColumn 左右对照式表头中负债侧起始列（找不到返回 0）
func (e *StatementExtractor) findLiabilityColumn(sheet *RawSheet) int {
	limit := classifyScanRows
	if len(sheet.Rows) < limit {
		limit = len(sheet.Rows)
	}
	for i := 0; i < limit; i++ {
		row := sheet.Rows[i]
		assetCol, liabCol := -1, -1
		for c, cell := range row {
			name := NormalizeText(cell)
			if assetCol < 0 && strings.Contains(name, "资产") && !strings.Contains(name, "负债") {
				assetCol = c
			}
			if strings.Contains(name, "负债") {
				liabCol = c
			}
		}
		if assetCol >= 0 && liabCol > assetCol {
			return liabCol
		}
	}
	return 0
}

// takeSideBySide 处理左右对照行
func (e *StatementExtractor) takeSideBySide(row []string, splitCol int, data *BalanceSheetData) {
	if name, amount, ok := firstNameLastAmount(row[:splitCol]); ok {
		e.takeItem(name, amount, "asset", data)
	}
	if splitCol < len(row) {
		if name, amount, ok := firstNameLastAmount(row[splitCol:]); ok {
			section := "liability"
			if ContainsAny(name, []string{"权益", "实收资本", "资本公积", "盈余公积", "未分配利润"}) {
				section = "equity"
			}
			e.takeItem(name, amount, section, data)
		}
	}
}

// takeItem 归集单个行项目
func (e *StatementExtractor) takeItem(name string, amount float64, section string, data *BalanceSheetData) {
	switch {
	case ContainsAny(name, []string{"资产总计", "资产合计"}):
		data.TotalAssets = amount
	case ContainsAny(name, []string{"负债合计", "负债总计"}):
		data.TotalLiabilities = amount
	case ContainsAny(name, []string{"所有者权益合计", "股东权益合计", "权益合计"}):
		data.TotalEquity = amount
	case IsTotalRowText(name):
		// 其余合计行（负债及所有者权益总计等）不归集
	case section == "asset":
		data.Assets = append(data.Assets, NamedAmount{Name: name, Amount: amount})
	case section == "liability":
		data.Liabilities = append(data.Liabilities, NamedAmount{Name: name, Amount: amount})
	}
}

// incomeLineKeywords 利润表行项目归类
var (
	incomeLines = []string{"营业收入", "主营业务收入", "其他业务收入", "营业外收入", "投资收益"}
	expenseLines = []string{
		"营业成本", "主营业务成本", "其他业务成本", "税金及附加",
		"销售费用", "管理费用", "研发费用", "财务费用", "营业外支出", "所得税费用",
	}
)

// ExtractIncomeStatement 提取利润表（收入/费用合计与净利润）
func (e *StatementExtractor) ExtractIncomeStatement(sheet *RawSheet) *IncomeStatementData {
	data := &IncomeStatementData{}

	for _, row := range sheet.Rows {
		name, amount, ok := firstNameLastAmount(row)
		if !ok {
			continue
		}
		switch {
		case strings.Contains(name, "净利润"):
			data.NetProfit = amount
		case ContainsAny(name, incomeLines):
			data.TotalIncome += amount
		case ContainsAny(name, expenseLines):
			data.TotalExpenses += amount
		}
	}

	return data
}

// firstNameLastAmount 行内首个文本格为名称，末个数值格为金额
func firstNameLastAmount(row []string) (string, float64, bool) {
	name := ""
	amountIdx := -1
	for c, cell := range row {
		norm := NormalizeText(cell)
		if norm == "" {
			continue
		}
		if IsNumeric(cell) {
			amountIdx = c
			continue
		}
		if name == "" {
			name = norm
		}
	}
	if name == "" || amountIdx < 0 {
		return "", 0, false
	}
	return name, ParseFloat(row[amountIdx]), true
}
