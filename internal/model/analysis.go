package model

// Severity 异常严重程度
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank 严重程度排序权重（high 最大）
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// AnomalyCategory 异常类别
type AnomalyCategory string

const (
	AnomalyOutlier       AnomalyCategory = "outlier"        // 金额离群
	AnomalyRoundNumber   AnomalyCategory = "round_number"   // 整数金额集中
	AnomalyConcentration AnomalyCategory = "concentration"  // 往来对手集中
	AnomalyBalanceBreak  AnomalyCategory = "balance_break"  // 余额勾稽断裂
)

// Anomaly 明细账异常发现
type Anomaly struct {
	Severity    Severity        `json:"severity"`    // 严重程度
	Category    AnomalyCategory `json:"category"`    // 类别
	Description string          `json:"description"` // 描述
	Entries     []LedgerEntry   `json:"entries"`     // 展示用分录（最多 3 笔）
	EntryCount  int             `json:"entryCount"`  // 涉及分录总数
}

// FundFlow 资金流向
type FundFlow struct {
	Inflow  float64 `json:"inflow"`  // 流入合计
	Outflow float64 `json:"outflow"` // 流出合计
	NetFlow float64 `json:"netFlow"` // 净流量 = 流入 - 流出
}

// CounterpartyStat 往来单位统计
type CounterpartyStat struct {
	Name     string  `json:"name"`     // 往来单位名称
	Debit    float64 `json:"debit"`    // 借方合计
	Credit   float64 `json:"credit"`   // 贷方合计
	Net      float64 `json:"net"`      // 净额 = 借方 - 贷方
	TxnCount int     `json:"txnCount"` // 交易笔数
}

// LargeTransaction 大额交易
type LargeTransaction struct {
	Entry      LedgerEntry `json:"entry"`      // 分录
	Amount     float64     `json:"amount"`     // 金额（借贷取大者）
	Percentage float64     `json:"percentage"` // 占全部分录金额比 (%)
}

// LedgerAnalysis 单科目明细账分析结果
type LedgerAnalysis struct {
	SubjectCode    string             `json:"subjectCode"`
	SubjectName    string             `json:"subjectName"`
	FundFlow       FundFlow           `json:"fundFlow"`
	Counterparties []CounterpartyStat `json:"counterparties"` // 按净额绝对值降序
	TopTxns        []LargeTransaction `json:"topTxns"`        // 前 5 笔大额交易
	AllTxns        []LargeTransaction `json:"-"`              // 全量排名（内部保留）
	Anomalies      []Anomaly          `json:"anomalies"`      // 按严重程度降序
}
