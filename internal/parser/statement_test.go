package parser

import "testing"

func TestExtractBalanceSheetSideBySide(t *testing.T) {
	sheet := &RawSheet{Name: "Sheet1", Rows: [][]string{
		{"资产负债表"},
		{"资产", "期末余额", "负债及所有者权益", "期末余额"},
		{"货币资金", "120,000.00", "应付账款", "80,000.00"},
		{"应收账款", "50,000.00", "短期借款", "30,000.00"},
		{"存货", "30,000.00", "实收资本", "90,000.00"},
		{"资产总计", "200,000.00", "负债合计", "110,000.00"},
		{"", "", "所有者权益合计", "90,000.00"},
	}}
	data := NewStatementExtractor().ExtractBalanceSheet(sheet)

	if data.TotalAssets != 200_000 {
		t.Errorf("TotalAssets = %v, want 200000", data.TotalAssets)
	}
	if data.TotalLiabilities != 110_000 {
		t.Errorf("TotalLiabilities = %v, want 110000", data.TotalLiabilities)
	}
	if data.TotalEquity != 90_000 {
		t.Errorf("TotalEquity = %v, want 90000", data.TotalEquity)
	}

	if len(data.Assets) != 3 || data.Assets[0].Name != "货币资金" || data.Assets[0].Amount != 120_000 {
		t.Errorf("Assets = %+v", data.Assets)
	}
	// 权益行项目（实收资本）不计入负债明细
	if len(data.Liabilities) != 2 {
		t.Fatalf("Liabilities = %+v", data.Liabilities)
	}
	if data.Liabilities[1].Name != "短期借款" || data.Liabilities[1].Amount != 30_000 {
		t.Errorf("Liabilities = %+v", data.Liabilities)
	}
}

func TestExtractBalanceSheetSingleColumn(t *testing.T) {
	sheet := &RawSheet{Name: "Sheet1", Rows: [][]string{
		{"资产负债表"},
		{"流动资产"},
		{"货币资金", "100,000.00"},
		{"应收账款", "50,000.00"},
		{"资产总计", "150,000.00"},
		{"流动负债"},
		{"应付账款", "60,000.00"},
		{"负债合计", "60,000.00"},
		{"所有者权益"},
		{"实收资本", "90,000.00"},
		{"所有者权益合计", "90,000.00"},
	}}
	data := NewStatementExtractor().ExtractBalanceSheet(sheet)

	if data.TotalAssets != 150_000 || data.TotalLiabilities != 60_000 || data.TotalEquity != 90_000 {
		t.Errorf("totals = %v/%v/%v", data.TotalAssets, data.TotalLiabilities, data.TotalEquity)
	}
	if len(data.Assets) != 2 || data.Assets[1].Name != "应收账款" {
		t.Errorf("Assets = %+v", data.Assets)
	}
	if len(data.Liabilities) != 1 || data.Liabilities[0].Amount != 60_000 {
		t.Errorf("Liabilities = %+v", data.Liabilities)
	}
}

func TestExtractIncomeStatement(t *testing.T) {
	sheet := &RawSheet{Name: "Sheet1", Rows: [][]string{
		{"利润表"},
		{"项目", "本期金额"},
		{"营业收入", "500,000.00"},
		{"营业成本", "300,000.00"},
		{"管理费用", "50,000.00"},
		{"财务费用", "10,000.00"},
		{"净利润", "140,000.00"},
	}}
	data := NewStatementExtractor().ExtractIncomeStatement(sheet)

	if data.TotalIncome != 500_000 {
		t.Errorf("TotalIncome = %v, want 500000", data.TotalIncome)
	}
	// 成本 + 两项期间费用逐行累加
	if data.TotalExpenses != 360_000 {
		t.Errorf("TotalExpenses = %v, want 360000", data.TotalExpenses)
	}
	if data.NetProfit != 140_000 {
		t.Errorf("NetProfit = %v, want 140000", data.NetProfit)
	}
}

func TestExtractIncomeStatementIgnoresUnknownLines(t *testing.T) {
	sheet := &RawSheet{Name: "Sheet1", Rows: [][]string{
		{"损益表"},
		{"营业收入", "100,000.00"},
		{"其中：出口收入", "20,000.00"},
		{"营业成本", "60,000.00"},
	}}
	data := NewStatementExtractor().ExtractIncomeStatement(sheet)

	if data.TotalIncome != 100_000 {
		t.Errorf("TotalIncome = %v, want 100000（未归类行不累加）", data.TotalIncome)
	}
	if data.TotalExpenses != 60_000 {
		t.Errorf("TotalExpenses = %v, want 60000", data.TotalExpenses)
	}
}
