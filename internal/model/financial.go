package model

import (
	"math"
	"strings"
)

// AccountBalance 科目余额表单行数据
type AccountBalance struct {
	SubjectCode   string  `json:"subjectCode"`   // 科目编码
	SubjectName   string  `json:"subjectName"`   // 科目名称
	OpeningDebit  float64 `json:"openingDebit"`  // 期初借方
	OpeningCredit float64 `json:"openingCredit"` // 期初贷方
	CurrentDebit  float64 `json:"currentDebit"`  // 本期借方发生额
	CurrentCredit float64 `json:"currentCredit"` // 本期贷方发生额
	ClosingDebit  float64 `json:"closingDebit"`  // 期末借方
	ClosingCredit float64 `json:"closingCredit"` // 期末贷方
}

// FinancialSummaryData 财务概要表数据
type FinancialSummaryData struct {
	Revenue          float64 `json:"revenue"`          // 营业收入（本年累计）
	Cost             float64 `json:"cost"`             // 营业成本（本年累计）
	GrossProfit      float64 `json:"grossProfit"`      // 毛利
	Expense          float64 `json:"expense"`          // 期间费用
	NetProfit        float64 `json:"netProfit"`        // 净利润
	MonetaryFunds    float64 `json:"monetaryFunds"`    // 货币资金
	Receivables      float64 `json:"receivables"`      // 应收账款
	Inventory        float64 `json:"inventory"`        // 存货
	TotalAssets      float64 `json:"totalAssets"`      // 资产总计
	TotalLiabilities float64 `json:"totalLiabilities"` // 负债总计
}

// AgingBucket 账龄区间
type AgingBucket struct {
	Label  string  `json:"label"`  // 区间名称，如 "1年以内"
	Amount float64 `json:"amount"` // 区间金额
}

// AgingAnalysis 账龄分析表数据
type AgingAnalysis struct {
	SubjectName string        `json:"subjectName"` // 科目名称（应收账款/应付账款）
	Total       float64       `json:"total"`       // 余额合计
	Buckets     []AgingBucket `json:"buckets"`     // 各账龄区间
}

// OverdueRatio 一年以上账龄占比（0-100）
func (a *AgingAnalysis) OverdueRatio() float64 {
	if a.Total <= 0 {
		return 0
	}
	var overdue float64
	for _, b := range a.Buckets {
		if containsOverdueLabel(b.Label) {
			overdue += b.Amount
		}
	}
	return overdue / a.Total * 100
}

func containsOverdueLabel(label string) bool {
	for _, kw := range []string{"1年以上", "一年以上", "1-2年", "2-3年", "3年以上"} {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// IdentityCheck 会计恒等式校验结果
type IdentityCheck struct {
	Name   string  `json:"name"`   // 恒等式名称
	Passed bool    `json:"passed"` // 是否通过
	Delta  float64 `json:"delta"`  // 差额（左边 - 右边）
}

// IdentityTolerance 恒等式校验容差
const IdentityTolerance = 0.01

// FinancialData 单期财务数据快照
// 由一个工作簿的全部已识别 Sheet 聚合而成
type FinancialData struct {
	// 资产/负债明细（保持插入顺序，供 Top-N 展示）
	AssetNames       []string           `json:"assetNames"`
	Assets           map[string]float64 `json:"assets"`
	LiabilityNames   []string           `json:"liabilityNames"`
	Liabilities      map[string]float64 `json:"liabilities"`

	// 汇总指标
	TotalAssets      float64 `json:"totalAssets"`      // 资产总计
	TotalLiabilities float64 `json:"totalLiabilities"` // 负债总计
	TotalEquity      float64 `json:"totalEquity"`      // 所有者权益
	TotalIncome      float64 `json:"totalIncome"`      // 收入合计
	TotalExpenses    float64 `json:"totalExpenses"`    // 成本费用合计
	NetProfit        float64 `json:"netProfit"`        // 净利润 = 收入 - 成本费用

	// 细分口径（用于比率计算）
	CurrentAssets      float64 `json:"currentAssets"`      // 流动资产
	CurrentLiabilities float64 `json:"currentLiabilities"` // 流动负债
	MonetaryFunds      float64 `json:"monetaryFunds"`      // 货币资金
	Receivables        float64 `json:"receivables"`        // 应收账款
	Inventory          float64 `json:"inventory"`          // 存货

	// 明细账与补充表
	Ledgers []LedgerData          `json:"ledgers"`
	Summary *FinancialSummaryData `json:"summary,omitempty"`
	Aging   *AgingAnalysis        `json:"aging,omitempty"`

	// 恒等式校验
	IdentityChecks []IdentityCheck `json:"identityChecks"`
}

// NewFinancialData 创建空快照
func NewFinancialData() *FinancialData {
	return &FinancialData{
		Assets:      make(map[string]float64),
		Liabilities: make(map[string]float64),
	}
}

// AddAsset 追加资产科目（保持插入顺序）
func (f *FinancialData) AddAsset(name string, value float64) {
	if _, ok := f.Assets[name]; !ok {
		f.AssetNames = append(f.AssetNames, name)
	}
	f.Assets[name] += value
}

// AddLiability 追加负债科目（保持插入顺序）
func (f *FinancialData) AddLiability(name string, value float64) {
	if _, ok := f.Liabilities[name]; !ok {
		f.LiabilityNames = append(f.LiabilityNames, name)
	}
	f.Liabilities[name] += value
}

// CheckIdentities 计算并记录会计恒等式校验结果
func (f *FinancialData) CheckIdentities() {
	f.IdentityChecks = f.IdentityChecks[:0]

	// 资产 = 负债 + 所有者权益
	delta := f.TotalAssets - (f.TotalLiabilities + f.TotalEquity)
	f.IdentityChecks = append(f.IdentityChecks, IdentityCheck{
		Name:   "资产 = 负债 + 所有者权益",
		Passed: math.Abs(delta) <= IdentityTolerance,
		Delta:  delta,
	})

	// 净利润 = 收入 - 成本费用
	delta = f.NetProfit - (f.TotalIncome - f.TotalExpenses)
	f.IdentityChecks = append(f.IdentityChecks, IdentityCheck{
		Name:   "净利润 = 收入 - 成本费用",
		Passed: math.Abs(delta) <= IdentityTolerance,
		Delta:  delta,
	})
}
