package parser

import (
	"regexp"
	"strings"

	"finsight/internal/model"
)

// LedgerExtractor 明细账提取器
type LedgerExtractor struct{}

// NewLedgerExtractor 创建明细账提取器
func NewLedgerExtractor() *LedgerExtractor {
	return &LedgerExtractor{}
}

var (
	reSubjectCode = regexp.MustCompile(`科目编码[:：]?\s*(\d+)`)
	reSubjectName = regexp.MustCompile(`科目名称[:：]?\s*([\p{Han}A-Za-z（）()]+)`)
	reLedgerTitle = regexp.MustCompile(`([\p{Han}]{2,10})明细账`)
)

// ledgerColumns 明细账列映射
type ledgerColumns struct {
	date      int
	voucher   int
	summary   int
	auxiliary int
	debit     int
	credit    int
	balance   int
}

// openingRowKeywords 期初/结转类行关键词（不计入分录）
var openingRowKeywords = []string{"期初", "上年结转", "年初"}

// Extract 提取单科目明细账
// 期初行、合计行按摘要关键词剔除；借贷合计由分录累加得出
func (e *LedgerExtractor) Extract(sheet *RawSheet) *model.LedgerData {
	ledger := &model.LedgerData{}

	headerIdx := e.findHeaderRow(sheet)
	if headerIdx < 0 {
		return ledger
	}

	e.fillSubjectInfo(sheet, headerIdx, ledger)
	cols := e.mapColumns(sheet.Rows[headerIdx])

	for i := headerIdx + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		summary := NormalizeText(cellAt(row, cols.summary))

		// 期初行：取期初余额后跳过
		if ContainsAny(summary, openingRowKeywords) {
			if bal := cellAt(row, cols.balance); IsNumeric(bal) {
				ledger.BeginningBalance = ParseFloat(bal)
			}
			continue
		}
		// 合计/累计行跳过
		if IsTotalRowText(summary) {
			continue
		}

		debit := ParseFloat(cellAt(row, cols.debit))
		credit := ParseFloat(cellAt(row, cols.credit))
		if debit == 0 && credit == 0 {
			continue
		}

		ledger.Entries = append(ledger.Entries, model.LedgerEntry{
			Date:      strings.TrimSpace(cellAt(row, cols.date)),
			VoucherNo: NormalizeText(cellAt(row, cols.voucher)),
			Summary:   strings.TrimSpace(cellAt(row, cols.summary)),
			Auxiliary: strings.TrimSpace(cellAt(row, cols.auxiliary)),
			Debit:     debit,
			Credit:    credit,
			Balance:   ParseFloat(cellAt(row, cols.balance)),
		})
		ledger.TotalDebit += debit
		ledger.TotalCredit += credit
	}

	return ledger
}

// fillSubjectInfo 从表头以上区域提取科目编码/名称与期间
func (e *LedgerExtractor) fillSubjectInfo(sheet *RawSheet, headerIdx int, ledger *model.LedgerData) {
	for i := 0; i <= headerIdx; i++ {
		text := rowText(sheet.Rows[i])
		if m := reSubjectCode.FindStringSubmatch(text); len(m) >= 2 && ledger.SubjectCode == "" {
			ledger.SubjectCode = m[1]
		}
		if m := reSubjectName.FindStringSubmatch(text); len(m) >= 2 && ledger.SubjectName == "" {
			ledger.SubjectName = strings.TrimSuffix(m[1], "明细账")
		}
		if ledger.Period == "" {
			if label, _, ok := ExtractPeriod(text); ok {
				ledger.Period = label
			}
		}
	}
	// 兜底：从标题 "应收账款明细账" 提取科目名
	if ledger.SubjectName == "" {
		for i := 0; i <= headerIdx; i++ {
			if m := reLedgerTitle.FindStringSubmatch(rowText(sheet.Rows[i])); len(m) >= 2 {
				ledger.SubjectName = m[1]
				break
			}
		}
	}
	// Sheet 名兜底
	if ledger.SubjectName == "" {
		ledger.SubjectName = strings.TrimSuffix(NormalizeText(sheet.Name), "明细账")
	}
}

// findHeaderRow 定位表头行：包含 摘要 且带借方/贷方
func (e *LedgerExtractor) findHeaderRow(sheet *RawSheet) int {
	limit := classifyScanRows
	if len(sheet.Rows) < limit {
		limit = len(sheet.Rows)
	}
	for i := 0; i < limit; i++ {
		text := rowText(sheet.Rows[i])
		if strings.Contains(text, "摘要") && ContainsAny(text, []string{"借方", "贷方"}) {
			return i
		}
	}
	return -1
}

// mapColumns 建立列映射
func (e *LedgerExtractor) mapColumns(header []string) ledgerColumns {
	cols := ledgerColumns{
		date: -1, voucher: -1, summary: -1, auxiliary: -1,
		debit: -1, credit: -1, balance: -1,
	}
	for c, cell := range header {
		name := NormalizeText(cell)
		switch {
		case cols.date < 0 && strings.Contains(name, "日期"):
			cols.date = c
		case cols.voucher < 0 && strings.Contains(name, "凭证"):
			cols.voucher = c
		case cols.summary < 0 && strings.Contains(name, "摘要"):
			cols.summary = c
		case cols.auxiliary < 0 && ContainsAny(name, []string{"辅助", "往来", "客户", "供应商", "单位"}):
			cols.auxiliary = c
		case cols.debit < 0 && strings.Contains(name, "借方"):
			cols.debit = c
		case cols.credit < 0 && strings.Contains(name, "贷方"):
			cols.credit = c
		case cols.balance < 0 && strings.Contains(name, "余额"):
			cols.balance = c
		}
	}
	return cols
}
