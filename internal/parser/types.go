package parser

import "time"

// SheetType Sheet 语义类型
type SheetType string

const (
	SheetTypeBalance  SheetType = "balance"  // 资产负债表
	SheetTypeIncome   SheetType = "income"   // 利润表
	SheetTypeCashflow SheetType = "cashflow" // 现金流量表
	SheetTypeSubject  SheetType = "subject"  // 科目余额表
	SheetTypeLedger   SheetType = "ledger"   // 明细账
	SheetTypeSummary  SheetType = "summary"  // 财务概要表
	SheetTypeAging    SheetType = "aging"    // 账龄分析表
	SheetTypeUnknown  SheetType = "unknown"  // 无法识别
)

// RawSheet 原始工作表：名称 + 单元格网格（行优先）
type RawSheet struct {
	Name string
	Rows [][]string
}

// CellText 安全读取单元格文本（越界返回空串）
func (s *RawSheet) CellText(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ParseResult 单 Sheet 处理结果
type ParseResult struct {
	SheetName    string        `json:"sheetName"`
	SheetType    SheetType     `json:"sheetType"`
	Status       string        `json:"status"` // imported/skipped/error
	ImportedRows int           `json:"importedRows"`
	Errors       []string      `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ImportReport 单文件导入报告
type ImportReport struct {
	Filename       string        `json:"filename"`
	Period         string        `json:"period"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	UnknownSheets  int           `json:"unknownSheets"`
	ImportedRows   int           `json:"importedRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}
