package ledger

import (
	"regexp"
	"strings"

	"finsight/internal/model"
)

// CounterpartyExtractor 往来单位提取策略
// 解析启发式可插拔：辅助核算标签优先，摘要正则兜底
type CounterpartyExtractor interface {
	Extract(entry *model.LedgerEntry) string
}

// AuxiliaryExtractor 从辅助核算标签提取往来单位
type AuxiliaryExtractor struct{}

// auxPrefixes 辅助核算常见前缀
var auxPrefixes = []string{"客户:", "客户：", "供应商:", "供应商：", "往来单位:", "往来单位：", "单位:", "单位："}

// Extract 去除类别前缀后返回标签内容
func (e *AuxiliaryExtractor) Extract(entry *model.LedgerEntry) string {
	tag := strings.TrimSpace(entry.Auxiliary)
	for _, prefix := range auxPrefixes {
		tag = strings.TrimPrefix(tag, prefix)
	}
	return strings.TrimSpace(tag)
}

// SummaryRegexExtractor 从摘要文本正则提取往来单位
type SummaryRegexExtractor struct {
	pattern *regexp.Regexp
}

// 公司/机构后缀式名称，如 "XX贸易有限公司"、"XX加工厂"
var defaultCounterpartyPattern = regexp.MustCompile(
	`([\p{Han}A-Za-z0-9（）()]{2,30}?(?:有限责任公司|有限公司|股份公司|公司|商行|商店|工厂|厂|门店|银行|事务所|中心))`)

// NewSummaryRegexExtractor 创建摘要正则提取器
func NewSummaryRegexExtractor() *SummaryRegexExtractor {
	return &SummaryRegexExtractor{pattern: defaultCounterpartyPattern}
}

// Extract 返回摘要中首个命中的机构名称
func (e *SummaryRegexExtractor) Extract(entry *model.LedgerEntry) string {
	m := e.pattern.FindStringSubmatch(entry.Summary)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// ChainExtractor 按序尝试多个策略，取首个非空结果
type ChainExtractor struct {
	extractors []CounterpartyExtractor
}

// NewChainExtractor 创建串联提取器
func NewChainExtractor(extractors ...CounterpartyExtractor) *ChainExtractor {
	return &ChainExtractor{extractors: extractors}
}

// Extract 依次尝试各策略
func (e *ChainExtractor) Extract(entry *model.LedgerEntry) string {
	for _, ex := range e.extractors {
		if name := ex.Extract(entry); name != "" {
			return name
		}
	}
	return ""
}

// DefaultExtractor 默认策略：辅助核算优先，摘要正则兜底
func DefaultExtractor() CounterpartyExtractor {
	return NewChainExtractor(&AuxiliaryExtractor{}, NewSummaryRegexExtractor())
}
