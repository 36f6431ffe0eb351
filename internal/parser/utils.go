package parser

import (
	"regexp"
	"strconv"
	"strings"

	"finsight/internal/model"
)

// NormalizeText 规范化单元格文本，去除空白和换行
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "　", "")
	return s
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseFloat 安全转换为浮点数，非数值取 0
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // 移除千分位
	s = strings.ReplaceAll(s, "，", "")
	s = strings.ReplaceAll(s, "￥", "")
	s = strings.ReplaceAll(s, "¥", "")
	s = strings.ReplaceAll(s, "％", "%")
	s = strings.TrimSuffix(s, "%")
	// 会计负数记法 (1,234.56)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// IsNumeric 判断单元格是否为可解析数值
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, ",", "")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var (
	reYearMonth   = regexp.MustCompile(`(\d{4})年0?(\d{1,2})月`)
	reYearMonthNo = regexp.MustCompile(`(\d{4})[-_.](\d{1,2})(?:[-_.]\d{1,2})?`)
	reQuarter     = regexp.MustCompile(`(\d{4})年?第?([一二三四1-4])季度`)
	reYear        = regexp.MustCompile(`(\d{4})年度`)
)

var quarterNames = map[string]string{
	"一": "1", "二": "2", "三": "3", "四": "4",
	"1": "1", "2": "2", "3": "3", "4": "4",
}

// ExtractPeriod 从文件名推断期间标签与类型
// 支持 "2024年3月" / "2024-03" / "2024年一季度" / "2024年度"
func ExtractPeriod(filename string) (label string, ptype model.PeriodType, ok bool) {
	if m := reYearMonth.FindStringSubmatch(filename); len(m) >= 3 {
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return m[1] + "年" + strconv.Itoa(month) + "月", model.PeriodMonth, true
		}
	}
	if m := reQuarter.FindStringSubmatch(filename); len(m) >= 3 {
		return m[1] + "年" + quarterNames[m[2]] + "季度", model.PeriodQuarter, true
	}
	if m := reYear.FindStringSubmatch(filename); len(m) >= 2 {
		return m[1] + "年度", model.PeriodYear, true
	}
	if m := reYearMonthNo.FindStringSubmatch(filename); len(m) >= 3 {
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return m[1] + "年" + strconv.Itoa(month) + "月", model.PeriodMonth, true
		}
	}
	return "", "", false
}

// totalRowKeywords 合计/总计类行关键词（提取时跳过）
var totalRowKeywords = []string{"合计", "总计", "累计", "小计"}

// IsTotalRowText 判断是否为合计类文本
func IsTotalRowText(s string) bool {
	return ContainsAny(s, totalRowKeywords)
}

// rowText 拼接整行文本
func rowText(row []string) string {
	var sb strings.Builder
	for _, cell := range row {
		sb.WriteString(NormalizeText(cell))
	}
	return sb.String()
}
