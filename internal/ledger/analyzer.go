package ledger

import (
	"math"
	"sort"

	"finsight/internal/importer"
	"finsight/internal/model"
)

// topTxnCount 大额交易展示条数
const topTxnCount = 5

// unnamedCounterparty 未能提取往来单位时的分组名
const unnamedCounterparty = "未标注往来户"

// Config 分析阈值配置
type Config struct {
	ConcentrationShare     float64 // 往来集中度预警阈值（0-1）
	HighConcentrationShare float64 // 往来集中度高危阈值（0-1）
	RoundBase              float64 // 整数金额基数
	RoundRatio             float64 // 整数金额占比阈值（0-1）
	BalanceTolerance       float64 // 余额勾稽容差
}

// DefaultConfig 默认阈值
func DefaultConfig() Config {
	return Config{
		ConcentrationShare:     0.5,
		HighConcentrationShare: 0.8,
		RoundBase:              10000,
		RoundRatio:             0.3,
		BalanceTolerance:       0.01,
	}
}

// Analyzer 明细账分析器
type Analyzer struct {
	extractor CounterpartyExtractor
	cfg       Config
}

// NewAnalyzer 创建默认分析器
func NewAnalyzer() *Analyzer {
	return &Analyzer{extractor: DefaultExtractor(), cfg: DefaultConfig()}
}

// NewAnalyzerWith 创建自定义分析器
func NewAnalyzerWith(extractor CounterpartyExtractor, cfg Config) *Analyzer {
	if extractor == nil {
		extractor = DefaultExtractor()
	}
	return &Analyzer{extractor: extractor, cfg: cfg}
}

// Analyze 分析单科目明细账
func (a *Analyzer) Analyze(l *model.LedgerData) *model.LedgerAnalysis {
	analysis := &model.LedgerAnalysis{
		SubjectCode: l.SubjectCode,
		SubjectName: l.SubjectName,
	}

	analysis.FundFlow = a.fundFlow(l)
	analysis.Counterparties = a.counterparties(l)
	analysis.AllTxns = a.rankTransactions(l)
	if len(analysis.AllTxns) > topTxnCount {
		analysis.TopTxns = analysis.AllTxns[:topTxnCount]
	} else {
		analysis.TopTxns = analysis.AllTxns
	}
	analysis.Anomalies = a.detectAnomalies(l, analysis.Counterparties)

	return analysis
}

// debitNormal 科目余额方向：资产/费用为借方余额，负债/权益/收入为贷方余额
func (a *Analyzer) debitNormal(l *model.LedgerData) bool {
	switch importer.ClassifyAccount(l.SubjectCode, l.SubjectName) {
	case importer.CategoryLiability, importer.CategoryEquity, importer.CategoryIncome:
		return false
	}
	return true
}

// fundFlow 资金流向
// 借方余额科目（资产/费用）借方为流入；贷方余额科目反之
func (a *Analyzer) fundFlow(l *model.LedgerData) model.FundFlow {
	var flow model.FundFlow
	if a.debitNormal(l) {
		flow.Inflow = l.TotalDebit
		flow.Outflow = l.TotalCredit
	} else {
		flow.Inflow = l.TotalCredit
		flow.Outflow = l.TotalDebit
	}
	flow.NetFlow = flow.Inflow - flow.Outflow
	return flow
}

// counterparties 往来单位净额统计
// 按净额绝对值降序，并列时按交易笔数降序
func (a *Analyzer) counterparties(l *model.LedgerData) []model.CounterpartyStat {
	groups := make(map[string]*model.CounterpartyStat)
	var order []string

	for i := range l.Entries {
		entry := &l.Entries[i]
		name := a.extractor.Extract(entry)
		if name == "" {
			name = unnamedCounterparty
		}
		stat, ok := groups[name]
		if !ok {
			stat = &model.CounterpartyStat{Name: name}
			groups[name] = stat
			order = append(order, name)
		}
		stat.Debit += entry.Debit
		stat.Credit += entry.Credit
		stat.TxnCount++
	}

	stats := make([]model.CounterpartyStat, 0, len(order))
	for _, name := range order {
		stat := groups[name]
		stat.Net = stat.Debit - stat.Credit
		stats = append(stats, *stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		ni, nj := math.Abs(stats[i].Net), math.Abs(stats[j].Net)
		if ni != nj {
			return ni > nj
		}
		return stats[i].TxnCount > stats[j].TxnCount
	})
	return stats
}

// rankTransactions 大额交易排名（借贷取大者降序）
func (a *Analyzer) rankTransactions(l *model.LedgerData) []model.LargeTransaction {
	var total float64
	for i := range l.Entries {
		total += l.Entries[i].Amount()
	}

	txns := make([]model.LargeTransaction, 0, len(l.Entries))
	for i := range l.Entries {
		amount := l.Entries[i].Amount()
		var pct float64
		if total > 0 {
			pct = amount / total * 100
		}
		txns = append(txns, model.LargeTransaction{
			Entry:      l.Entries[i],
			Amount:     amount,
			Percentage: pct,
		})
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Amount > txns[j].Amount
	})
	return txns
}
