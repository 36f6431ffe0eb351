package parser

import (
	"strings"

	"finsight/internal/model"
)

// SubjectExtractor 科目余额表提取器
type SubjectExtractor struct{}

// NewSubjectExtractor 创建科目余额表提取器
func NewSubjectExtractor() *SubjectExtractor {
	return &SubjectExtractor{}
}

// subjectColumns 科目余额表列映射
type subjectColumns struct {
	code          int
	name          int
	openingDebit  int
	openingCredit int
	currentDebit  int
	currentCredit int
	closingDebit  int
	closingCredit int
}

// Extract 提取科目余额行
// 表头行与合计行按关键词跳过；缺列时对应字段取 0，不中断整表
func (e *SubjectExtractor) Extract(sheet *RawSheet) []model.AccountBalance {
	headerIdx := e.findHeaderRow(sheet)
	if headerIdx < 0 {
		return nil
	}

	cols, dataStart := e.mapColumns(sheet, headerIdx)

	var balances []model.AccountBalance
	for i := dataStart; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]

		code := NormalizeText(cellAt(row, cols.code))
		name := NormalizeText(cellAt(row, cols.name))
		if code == "" && name == "" {
			continue
		}
		// 跳过合计/总计行
		if IsTotalRowText(code) || IsTotalRowText(name) {
			continue
		}
		// 无任何数值的行视为装饰行
		if !e.hasNumericCell(row) {
			continue
		}

		balances = append(balances, model.AccountBalance{
			SubjectCode:   code,
			SubjectName:   name,
			OpeningDebit:  ParseFloat(cellAt(row, cols.openingDebit)),
			OpeningCredit: ParseFloat(cellAt(row, cols.openingCredit)),
			CurrentDebit:  ParseFloat(cellAt(row, cols.currentDebit)),
			CurrentCredit: ParseFloat(cellAt(row, cols.currentCredit)),
			ClosingDebit:  ParseFloat(cellAt(row, cols.closingDebit)),
			ClosingCredit: ParseFloat(cellAt(row, cols.closingCredit)),
		})
	}

	return balances
}

// findHeaderRow 定位表头行：包含 "科目" 且带编码/名称字样
func (e *SubjectExtractor) findHeaderRow(sheet *RawSheet) int {
	limit := classifyScanRows
	if len(sheet.Rows) < limit {
		limit = len(sheet.Rows)
	}
	for i := 0; i < limit; i++ {
		text := rowText(sheet.Rows[i])
		if strings.Contains(text, "科目") && ContainsAny(text, []string{"编码", "代码", "名称"}) {
			return i
		}
	}
	return -1
}

// mapColumns 建立列映射
// 支持两层表头（期初余额/本期发生额/期末余额 + 借方/贷方），将上下两行拼接后匹配
func (e *SubjectExtractor) mapColumns(sheet *RawSheet, headerIdx int) (subjectColumns, int) {
	cols := subjectColumns{
		code: -1, name: -1,
		openingDebit: -1, openingCredit: -1,
		currentDebit: -1, currentCredit: -1,
		closingDebit: -1, closingCredit: -1,
	}

	header := sheet.Rows[headerIdx]
	var sub []string
	dataStart := headerIdx + 1
	if headerIdx+1 < len(sheet.Rows) {
		next := rowText(sheet.Rows[headerIdx+1])
		// 第二层表头只含 借方/贷方 之类字样
		if next != "" && !e.hasNumericCell(sheet.Rows[headerIdx+1]) &&
			ContainsAny(next, []string{"借方", "贷方"}) {
			sub = sheet.Rows[headerIdx+1]
			dataStart = headerIdx + 2
		}
	}

	// 组标签跨列传递：合并单元格展开后中间列为空
	group := ""
	width := len(header)
	if len(sub) > width {
		width = len(sub)
	}
	for c := 0; c < width; c++ {
		top := NormalizeText(cellAt(header, c))
		if top != "" {
			group = top
		}
		combined := group + NormalizeText(cellAt(sub, c))

		switch {
		case cols.code < 0 && ContainsAny(combined, []string{"编码", "代码"}):
			cols.code = c
		case cols.name < 0 && strings.Contains(combined, "名称"):
			cols.name = c
		case strings.Contains(combined, "期初") && strings.Contains(combined, "借"):
			setIfUnset(&cols.openingDebit, c)
		case strings.Contains(combined, "期初") && strings.Contains(combined, "贷"):
			setIfUnset(&cols.openingCredit, c)
		case ContainsAny(combined, []string{"本期", "发生"}) && strings.Contains(combined, "借"):
			setIfUnset(&cols.currentDebit, c)
		case ContainsAny(combined, []string{"本期", "发生"}) && strings.Contains(combined, "贷"):
			setIfUnset(&cols.currentCredit, c)
		case strings.Contains(combined, "期末") && strings.Contains(combined, "借"):
			setIfUnset(&cols.closingDebit, c)
		case strings.Contains(combined, "期末") && strings.Contains(combined, "贷"):
			setIfUnset(&cols.closingCredit, c)
		}
	}

	// 没有独立名称列时，科目列兼作名称列
	if cols.name < 0 && cols.code >= 0 {
		cols.name = cols.code
	}

	return cols, dataStart
}

func (e *SubjectExtractor) hasNumericCell(row []string) bool {
	for _, cell := range row {
		if IsNumeric(cell) {
			return true
		}
	}
	return false
}

// cellAt 安全取列（idx 为 -1 或越界时返回空串）
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func setIfUnset(target *int, value int) {
	if *target < 0 {
		*target = value
	}
}
