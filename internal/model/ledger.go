package model

import "math"

// LedgerEntry 明细账单笔分录
type LedgerEntry struct {
	Date      string  `json:"date"`      // 记账日期
	VoucherNo string  `json:"voucherNo"` // 凭证号
	Summary   string  `json:"summary"`   // 摘要
	Auxiliary string  `json:"auxiliary"` // 辅助核算（常含往来单位）
	Debit     float64 `json:"debit"`     // 借方金额
	Credit    float64 `json:"credit"`    // 贷方金额
	Balance   float64 `json:"balance"`   // 行末余额
}

// Amount 分录金额（借贷取大者）
func (e *LedgerEntry) Amount() float64 {
	return math.Max(e.Debit, e.Credit)
}

// LedgerData 单科目明细账
type LedgerData struct {
	SubjectCode      string        `json:"subjectCode"`      // 科目编码
	SubjectName      string        `json:"subjectName"`      // 科目名称
	Period           string        `json:"period"`           // 期间标签
	BeginningBalance float64       `json:"beginningBalance"` // 期初余额
	TotalDebit       float64       `json:"totalDebit"`       // 借方合计
	TotalCredit      float64       `json:"totalCredit"`      // 贷方合计
	Entries          []LedgerEntry `json:"entries"`          // 分录（按时间顺序）
}

// ClosingBalance 按借方余额方向推算的期末余额
// 期初 + Σ借方 - Σ贷方
func (l *LedgerData) ClosingBalance() float64 {
	return l.BeginningBalance + l.TotalDebit - l.TotalCredit
}
