package importer

import (
	"fmt"
	"time"

	"finsight/internal/model"
	"finsight/internal/parser"
)

// Aggregator 财务数据聚合器
// 将一个工作簿的全部已识别 Sheet 合并为单期 FinancialData 快照
type Aggregator struct {
	classifier *parser.SheetClassifier
	subject    *parser.SubjectExtractor
	ledger     *parser.LedgerExtractor
	summary    *parser.SummaryExtractor
	aging      *parser.AgingExtractor
	statement  *parser.StatementExtractor
}

// NewAggregator 创建聚合器
func NewAggregator() *Aggregator {
	return &Aggregator{
		classifier: parser.NewSheetClassifier(),
		subject:    parser.NewSubjectExtractor(),
		ledger:     parser.NewLedgerExtractor(),
		summary:    parser.NewSummaryExtractor(),
		aging:      parser.NewAgingExtractor(),
		statement:  parser.NewStatementExtractor(),
	}
}

// Aggregate 聚合整个工作簿
// 同一工作簿重复聚合结果恒等：无随机、无外部状态
func (a *Aggregator) Aggregate(sheets []parser.RawSheet) (*model.FinancialData, []parser.ParseResult) {
	data := model.NewFinancialData()
	results := make([]parser.ParseResult, 0, len(sheets))

	for i := range sheets {
		results = append(results, a.AggregateSheet(data, &sheets[i]))
	}

	a.Finalize(data)
	return data, results
}

// AggregateSheet 识别并归集单个 Sheet
func (a *Aggregator) AggregateSheet(data *model.FinancialData, sheet *parser.RawSheet) parser.ParseResult {
	start := time.Now()
	sheetType := a.classifier.Classify(sheet)
	result := parser.ParseResult{
		SheetName: sheet.Name,
		SheetType: sheetType,
		Status:    "imported",
	}

	switch sheetType {
	case parser.SheetTypeSubject:
		balances := a.subject.Extract(sheet)
		a.mergeBalances(data, balances)
		result.ImportedRows = len(balances)
		if len(balances) == 0 {
			result.Status = "skipped"
			result.Errors = append(result.Errors, "未找到科目余额数据行")
		}

	case parser.SheetTypeLedger:
		ledger := a.ledger.Extract(sheet)
		data.Ledgers = append(data.Ledgers, *ledger)
		result.ImportedRows = len(ledger.Entries)
		if len(ledger.Entries) == 0 {
			result.Errors = append(result.Errors, "明细账无有效分录")
		}

	case parser.SheetTypeSummary:
		data.Summary = a.summary.Extract(sheet)
		result.ImportedRows = 1

	case parser.SheetTypeAging:
		data.Aging = a.aging.Extract(sheet)
		result.ImportedRows = 1

	case parser.SheetTypeBalance:
		bs := a.statement.ExtractBalanceSheet(sheet)
		a.mergeBalanceSheet(data, bs)
		result.ImportedRows = len(bs.Assets) + len(bs.Liabilities)

	case parser.SheetTypeIncome:
		is := a.statement.ExtractIncomeStatement(sheet)
		a.mergeIncomeStatement(data, is)
		result.ImportedRows = 1

	case parser.SheetTypeCashflow:
		// 现金流量表暂不进入聚合口径
		result.Status = "skipped"

	default:
		result.Status = "skipped"
		result.Errors = append(result.Errors, fmt.Sprintf("无法识别 Sheet 类型: %s", sheet.Name))
	}

	result.Duration = time.Since(start)
	return result
}

// mergeBalances 科目余额行按类别归集
// 资产/费用按借方余额口径，负债/权益/收入按贷方余额口径
func (a *Aggregator) mergeBalances(data *model.FinancialData, balances []model.AccountBalance) {
	for _, b := range balances {
		switch ClassifyAccount(b.SubjectCode, b.SubjectName) {
		case CategoryAsset:
			value := b.ClosingDebit - b.ClosingCredit
			data.AddAsset(b.SubjectName, value)
			data.TotalAssets += value
			if IsCurrentAsset(b.SubjectCode, b.SubjectName) {
				data.CurrentAssets += value
			}
			if IsMonetaryFund(b.SubjectCode, b.SubjectName) {
				data.MonetaryFunds += value
			}
			if IsReceivable(b.SubjectCode, b.SubjectName) {
				data.Receivables += value
			}
			if IsInventory(b.SubjectCode, b.SubjectName) {
				data.Inventory += value
			}

		case CategoryLiability:
			value := b.ClosingCredit - b.ClosingDebit
			data.AddLiability(b.SubjectName, value)
			data.TotalLiabilities += value
			if IsCurrentLiability(b.SubjectCode, b.SubjectName) {
				data.CurrentLiabilities += value
			}

		case CategoryEquity:
			data.TotalEquity += b.ClosingCredit - b.ClosingDebit

		case CategoryIncome:
			// 损益类科目期末通常已结转，取本期发生额
			data.TotalIncome += b.CurrentCredit - b.CurrentDebit

		case CategoryExpense:
			data.TotalExpenses += b.CurrentDebit - b.CurrentCredit
		}
	}
}

// mergeBalanceSheet 报表数据仅在科目余额未提供对应口径时补位
func (a *Aggregator) mergeBalanceSheet(data *model.FinancialData, bs *parser.BalanceSheetData) {
	if len(data.AssetNames) == 0 {
		for _, item := range bs.Assets {
			data.AddAsset(item.Name, item.Amount)
		}
	}
	if len(data.LiabilityNames) == 0 {
		for _, item := range bs.Liabilities {
			data.AddLiability(item.Name, item.Amount)
		}
	}
	if data.TotalAssets == 0 {
		data.TotalAssets = bs.TotalAssets
	}
	if data.TotalLiabilities == 0 {
		data.TotalLiabilities = bs.TotalLiabilities
	}
	if data.TotalEquity == 0 {
		data.TotalEquity = bs.TotalEquity
	}
}

// mergeIncomeStatement 利润表补位收入/费用口径
func (a *Aggregator) mergeIncomeStatement(data *model.FinancialData, is *parser.IncomeStatementData) {
	if data.TotalIncome == 0 {
		data.TotalIncome = is.TotalIncome
	}
	if data.TotalExpenses == 0 {
		data.TotalExpenses = is.TotalExpenses
	}
}

// Finalize 收尾：概要表补位、净利润推导、恒等式校验
func (a *Aggregator) Finalize(data *model.FinancialData) {
	if s := data.Summary; s != nil {
		if data.TotalIncome == 0 {
			data.TotalIncome = s.Revenue
		}
		if data.TotalExpenses == 0 {
			data.TotalExpenses = s.Cost + s.Expense
		}
		if data.TotalAssets == 0 {
			data.TotalAssets = s.TotalAssets
		}
		if data.TotalLiabilities == 0 {
			data.TotalLiabilities = s.TotalLiabilities
		}
		if data.MonetaryFunds == 0 {
			data.MonetaryFunds = s.MonetaryFunds
		}
		if data.Receivables == 0 {
			data.Receivables = s.Receivables
		}
		if data.Inventory == 0 {
			data.Inventory = s.Inventory
		}
	}

	// 净利润恒为 收入 - 成本费用，不接受独立口径
	data.NetProfit = data.TotalIncome - data.TotalExpenses

	// 权益缺失时按恒等式推导
	if data.TotalEquity == 0 && data.TotalAssets > 0 {
		data.TotalEquity = data.TotalAssets - data.TotalLiabilities
	}

	data.CheckIdentities()
}
