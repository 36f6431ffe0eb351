package benchmark

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"finsight/internal/model"
)

//go:embed industries.yaml
var industriesYAML []byte

// DefaultIndustry 默认行业键
const DefaultIndustry = "generic"

// IndustryProfile 单行业基准
type IndustryProfile struct {
	Name    string             `yaml:"name"`
	Metrics map[string]float64 `yaml:"metrics"`
}

// Table 行业基准表
type Table struct {
	Industries map[string]IndustryProfile `yaml:"industries"`
}

// LoadTable 解析内置行业基准表
func LoadTable() (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(industriesYAML, &table); err != nil {
		return nil, fmt.Errorf("解析行业基准表失败: %w", err)
	}
	if _, ok := table.Industries[DefaultIndustry]; !ok {
		return nil, fmt.Errorf("行业基准表缺少默认行业 %q", DefaultIndustry)
	}
	return &table, nil
}

// Profile 取行业基准，未知行业回落到通用
func (t *Table) Profile(industry string) IndustryProfile {
	if p, ok := t.Industries[industry]; ok {
		return p
	}
	return t.Industries[DefaultIndustry]
}

// TrackedMetric 参与对标的指标定义
type TrackedMetric struct {
	Key          string
	Label        string
	HigherBetter bool
	Weight       float64
	Value        func(*model.FinancialMetrics) float64
}

// TrackedMetrics 对标指标集，权重合计 1.0
var TrackedMetrics = []TrackedMetric{
	{"currentRatio", "流动比率", true, 0.10, func(m *model.FinancialMetrics) float64 { return m.CurrentRatio }},
	{"quickRatio", "速动比率", true, 0.08, func(m *model.FinancialMetrics) float64 { return m.QuickRatio }},
	{"debtToAssetRatio", "资产负债率", false, 0.12, func(m *model.FinancialMetrics) float64 { return m.DebtToAssetRatio }},
	{"grossProfitMargin", "毛利率", true, 0.10, func(m *model.FinancialMetrics) float64 { return m.GrossProfitMargin }},
	{"netProfitMargin", "净利率", true, 0.12, func(m *model.FinancialMetrics) float64 { return m.NetProfitMargin }},
	{"roe", "净资产收益率", true, 0.15, func(m *model.FinancialMetrics) float64 { return m.ROE }},
	{"roa", "总资产收益率", true, 0.08, func(m *model.FinancialMetrics) float64 { return m.ROA }},
	{"totalAssetTurnover", "总资产周转率", true, 0.10, func(m *model.FinancialMetrics) float64 { return m.TotalAssetTurnover }},
	{"receivablesTurnover", "应收账款周转率", true, 0.08, func(m *model.FinancialMetrics) float64 { return m.ReceivablesTurnover }},
	{"inventoryTurnover", "存货周转率", true, 0.07, func(m *model.FinancialMetrics) float64 { return m.InventoryTurnover }},
}
