package ledger

import (
	"fmt"
	"math"
	"sort"

	"finsight/internal/model"
)

// anomalyEntryCap 异常记录展示分录上限
const anomalyEntryCap = 3

// detectAnomalies 逐规则检测异常并按严重程度降序返回
func (a *Analyzer) detectAnomalies(l *model.LedgerData, stats []model.CounterpartyStat) []model.Anomaly {
	var anomalies []model.Anomaly

	if an := a.detectOutliers(l); an != nil {
		anomalies = append(anomalies, *an)
	}
	if an := a.detectRoundNumbers(l); an != nil {
		anomalies = append(anomalies, *an)
	}
	if an := a.detectConcentration(l, stats); an != nil {
		anomalies = append(anomalies, *an)
	}
	if an := a.detectBalanceBreaks(l); an != nil {
		anomalies = append(anomalies, *an)
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Severity.Rank() > anomalies[j].Severity.Rank()
	})
	return anomalies
}

// detectOutliers 金额离群：超过 均值 + 3σ 的分录
func (a *Analyzer) detectOutliers(l *model.LedgerData) *model.Anomaly {
	n := len(l.Entries)
	if n < 3 {
		return nil
	}

	var sum float64
	for i := range l.Entries {
		sum += l.Entries[i].Amount()
	}
	mean := sum / float64(n)

	var variance float64
	for i := range l.Entries {
		d := l.Entries[i].Amount() - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(n))
	if stddev == 0 {
		return nil
	}

	threshold := mean + 3*stddev
	var hits []model.LedgerEntry
	for i := range l.Entries {
		if l.Entries[i].Amount() > threshold {
			hits = append(hits, l.Entries[i])
		}
	}
	if len(hits) == 0 {
		return nil
	}

	return newAnomaly(model.SeverityHigh, model.AnomalyOutlier,
		fmt.Sprintf("发现 %d 笔金额显著离群的分录（超过均值+3倍标准差，阈值 %.2f）", len(hits), threshold),
		hits)
}

// detectRoundNumbers 整数金额集中：大额整数倍分录占比异常
func (a *Analyzer) detectRoundNumbers(l *model.LedgerData) *model.Anomaly {
	if len(l.Entries) == 0 || a.cfg.RoundBase <= 0 {
		return nil
	}

	var hits []model.LedgerEntry
	for i := range l.Entries {
		amount := l.Entries[i].Amount()
		if amount > 0 && math.Mod(amount, a.cfg.RoundBase) == 0 {
			hits = append(hits, l.Entries[i])
		}
	}

	ratio := float64(len(hits)) / float64(len(l.Entries))
	if len(hits) < 3 || ratio < a.cfg.RoundRatio {
		return nil
	}

	return newAnomaly(model.SeverityMedium, model.AnomalyRoundNumber,
		fmt.Sprintf("整数金额分录占比 %.0f%%（%d 笔为 %.0f 的整数倍），高于正常频率", ratio*100, len(hits), a.cfg.RoundBase),
		hits)
}

// detectConcentration 往来集中：单一对手占资金流量过半
// 按流量（借方+贷方）取最大对手，净额抵销不影响集中度判定
func (a *Analyzer) detectConcentration(l *model.LedgerData, stats []model.CounterpartyStat) *model.Anomaly {
	total := l.TotalDebit + l.TotalCredit
	if total <= 0 || len(stats) == 0 {
		return nil
	}

	top := stats[0]
	for _, stat := range stats[1:] {
		if stat.Debit+stat.Credit > top.Debit+top.Credit {
			top = stat
		}
	}
	share := (top.Debit + top.Credit) / total
	if share < a.cfg.ConcentrationShare {
		return nil
	}

	severity := model.SeverityMedium
	if share >= a.cfg.HighConcentrationShare {
		severity = model.SeverityHigh
	}

	var hits []model.LedgerEntry
	for i := range l.Entries {
		name := a.extractor.Extract(&l.Entries[i])
		if name == "" {
			name = unnamedCounterparty
		}
		if name == top.Name {
			hits = append(hits, l.Entries[i])
		}
	}

	return newAnomaly(severity, model.AnomalyConcentration,
		fmt.Sprintf("往来单位 \"%s\" 占本科目资金流量 %.0f%%，集中度过高", top.Name, share*100),
		hits)
}

// detectBalanceBreaks 余额勾稽断裂
// 借方余额科目行末余额应等于 期初 + 累计借方 - 累计贷方，贷方余额科目方向相反；
// 断点后以行末余额重新校准
func (a *Analyzer) detectBalanceBreaks(l *model.LedgerData) *model.Anomaly {
	sign := 1.0
	if !a.debitNormal(l) {
		sign = -1.0
	}

	running := l.BeginningBalance
	var hits []model.LedgerEntry

	for i := range l.Entries {
		entry := &l.Entries[i]
		running += sign * (entry.Debit - entry.Credit)
		if entry.Balance == 0 {
			continue
		}
		if math.Abs(entry.Balance-running) > a.cfg.BalanceTolerance {
			hits = append(hits, *entry)
			running = entry.Balance
		}
	}
	if len(hits) == 0 {
		return nil
	}

	return newAnomaly(model.SeverityHigh, model.AnomalyBalanceBreak,
		fmt.Sprintf("发现 %d 处行末余额与累计发生额勾稽不符", len(hits)),
		hits)
}

// newAnomaly 构造异常记录，展示分录截断到上限
func newAnomaly(severity model.Severity, category model.AnomalyCategory, desc string, entries []model.LedgerEntry) *model.Anomaly {
	display := entries
	if len(display) > anomalyEntryCap {
		display = display[:anomalyEntryCap]
	}
	return &model.Anomaly{
		Severity:    severity,
		Category:    category,
		Description: desc,
		Entries:     display,
		EntryCount:  len(entries),
	}
}
