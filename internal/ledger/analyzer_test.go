package ledger

import (
	"math"
	"testing"

	"finsight/internal/model"
)

func entry(summary, aux string, debit, credit, balance float64) model.LedgerEntry {
	return model.LedgerEntry{
		Summary:   summary,
		Auxiliary: aux,
		Debit:     debit,
		Credit:    credit,
		Balance:   balance,
	}
}

func TestAnalyzeFundFlowDebitNormal(t *testing.T) {
	// 银行存款（资产类）：借方为流入
	l := &model.LedgerData{
		SubjectCode:      "1002",
		SubjectName:      "银行存款",
		BeginningBalance: 10_000,
		TotalDebit:       50_000,
		TotalCredit:      20_000,
	}
	analysis := NewAnalyzer().Analyze(l)

	if analysis.FundFlow.Inflow != 50_000 || analysis.FundFlow.Outflow != 20_000 {
		t.Errorf("FundFlow = %+v", analysis.FundFlow)
	}
	if analysis.FundFlow.NetFlow != 30_000 {
		t.Errorf("NetFlow = %v, want 30000", analysis.FundFlow.NetFlow)
	}
	if got := l.ClosingBalance(); got != 40_000 {
		t.Errorf("ClosingBalance = %v, want 40000", got)
	}
}

func TestAnalyzeFundFlowCreditNormal(t *testing.T) {
	// 应付账款（负债类）：贷方为流入
	l := &model.LedgerData{
		SubjectCode: "2202",
		SubjectName: "应付账款",
		TotalDebit:  15_000,
		TotalCredit: 45_000,
	}
	analysis := NewAnalyzer().Analyze(l)
	if analysis.FundFlow.Inflow != 45_000 || analysis.FundFlow.Outflow != 15_000 {
		t.Errorf("FundFlow = %+v", analysis.FundFlow)
	}
}

func TestCounterpartyGroupingAndOrder(t *testing.T) {
	l := &model.LedgerData{
		SubjectCode: "1122",
		SubjectName: "应收账款",
		Entries: []model.LedgerEntry{
			entry("销售商品", "客户:甲公司", 90_000, 0, 0),
			entry("收回货款", "客户:甲公司", 0, 45_000, 0),
			entry("销售商品", "客户:乙公司", 8_000, 0, 0),
			entry("杂项", "", 2_000, 0, 0),
		},
		TotalDebit:  100_000,
		TotalCredit: 45_000,
	}
	analysis := NewAnalyzer().Analyze(l)

	stats := analysis.Counterparties
	if len(stats) != 3 {
		t.Fatalf("len(stats) = %d, want 3", len(stats))
	}
	if stats[0].Name != "甲公司" {
		t.Errorf("top counterparty = %q, want 甲公司", stats[0].Name)
	}
	if stats[0].Net != 45_000 || stats[0].TxnCount != 2 {
		t.Errorf("top stat = %+v", stats[0])
	}
	// 未能提取往来单位的分录归入兜底组
	found := false
	for _, s := range stats {
		if s.Name == "未标注往来户" {
			found = true
		}
	}
	if !found {
		t.Error("missing fallback counterparty group")
	}
}

func TestCounterpartyFromSummary(t *testing.T) {
	// 辅助核算为空时从摘要提取公司名
	l := &model.LedgerData{
		SubjectCode: "1122",
		Entries: []model.LedgerEntry{
			entry("收到杭州建安建筑有限公司货款", "", 0, 10_000, 0),
		},
	}
	analysis := NewAnalyzer().Analyze(l)
	if len(analysis.Counterparties) != 1 {
		t.Fatalf("len = %d, want 1", len(analysis.Counterparties))
	}
	name := analysis.Counterparties[0].Name
	if name == "未标注往来户" {
		t.Fatalf("summary counterparty not extracted, got %q", name)
	}
}

func TestConcentrationAnomaly(t *testing.T) {
	// 单一往来户占流量 90%，应产生高危集中度异常
	l := &model.LedgerData{
		SubjectCode: "1122",
		SubjectName: "应收账款",
		Entries: []model.LedgerEntry{
			entry("销售", "客户:甲公司", 90_000, 0, 0),
			entry("销售", "客户:乙公司", 10_000, 0, 0),
		},
		TotalDebit: 100_000,
	}
	analysis := NewAnalyzer().Analyze(l)

	var hit *model.Anomaly
	for i := range analysis.Anomalies {
		if analysis.Anomalies[i].Category == model.AnomalyConcentration {
			hit = &analysis.Anomalies[i]
		}
	}
	if hit == nil {
		t.Fatal("expected concentration anomaly")
	}
	if hit.Severity != model.SeverityHigh {
		t.Errorf("Severity = %v, want high (share 90%%)", hit.Severity)
	}
}

func TestConcentrationByFlowNotByNet(t *testing.T) {
	// 甲公司借贷相抵净额为 0，但流量 120000/130000 ≈ 92%，仍应判定集中
	l := &model.LedgerData{
		SubjectCode: "1122",
		SubjectName: "应收账款",
		Entries: []model.LedgerEntry{
			entry("销售商品", "客户:甲公司", 60_000, 0, 0),
			entry("收回货款", "客户:甲公司", 0, 60_000, 0),
			entry("销售商品", "客户:乙公司", 10_000, 0, 0),
		},
		TotalDebit:  70_000,
		TotalCredit: 60_000,
	}
	analysis := NewAnalyzer().Analyze(l)

	// 净额排序首位是乙公司，不能据此判定集中度
	if analysis.Counterparties[0].Name != "乙公司" {
		t.Fatalf("top by net = %q, want 乙公司", analysis.Counterparties[0].Name)
	}

	var hit *model.Anomaly
	for i := range analysis.Anomalies {
		if analysis.Anomalies[i].Category == model.AnomalyConcentration {
			hit = &analysis.Anomalies[i]
		}
	}
	if hit == nil {
		t.Fatal("expected concentration anomaly for the max-flow counterparty")
	}
	if hit.Severity != model.SeverityHigh {
		t.Errorf("Severity = %v, want high (flow share 92%%)", hit.Severity)
	}
	if hit.EntryCount != 2 {
		t.Errorf("EntryCount = %d, want 2 (甲公司 entries)", hit.EntryCount)
	}
}

func TestOutlierAnomaly(t *testing.T) {
	entries := make([]model.LedgerEntry, 0, 21)
	for i := 0; i < 20; i++ {
		entries = append(entries, entry("日常采购", "", 1_000, 0, 0))
	}
	entries = append(entries, entry("异常大额", "", 500_000, 0, 0))
	l := &model.LedgerData{SubjectCode: "1002", Entries: entries}

	analysis := NewAnalyzer().Analyze(l)
	var hit *model.Anomaly
	for i := range analysis.Anomalies {
		if analysis.Anomalies[i].Category == model.AnomalyOutlier {
			hit = &analysis.Anomalies[i]
		}
	}
	if hit == nil {
		t.Fatal("expected outlier anomaly")
	}
	if hit.Severity != model.SeverityHigh {
		t.Errorf("Severity = %v, want high", hit.Severity)
	}
	if hit.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", hit.EntryCount)
	}
}

func TestRoundNumberAnomaly(t *testing.T) {
	l := &model.LedgerData{
		SubjectCode: "1002",
		Entries: []model.LedgerEntry{
			entry("a", "", 10_000, 0, 0),
			entry("b", "", 20_000, 0, 0),
			entry("c", "", 50_000, 0, 0),
			entry("d", "", 12_345, 0, 0),
		},
	}
	analysis := NewAnalyzer().Analyze(l)
	found := false
	for _, an := range analysis.Anomalies {
		if an.Category == model.AnomalyRoundNumber {
			found = true
			if an.Severity != model.SeverityMedium {
				t.Errorf("Severity = %v, want medium", an.Severity)
			}
		}
	}
	if !found {
		t.Fatal("expected round-number anomaly (3/4 entries are 万 multiples)")
	}
}

func TestBalanceBreakAnomaly(t *testing.T) {
	l := &model.LedgerData{
		SubjectCode:      "1002",
		BeginningBalance: 100_000,
		Entries: []model.LedgerEntry{
			entry("正常", "", 10_000, 0, 110_000),
			entry("断裂", "", 5_000, 0, 200_000), // 应为 115000
			entry("断点后校准", "", 1_000, 0, 201_000),
		},
	}
	analysis := NewAnalyzer().Analyze(l)

	var hit *model.Anomaly
	for i := range analysis.Anomalies {
		if analysis.Anomalies[i].Category == model.AnomalyBalanceBreak {
			hit = &analysis.Anomalies[i]
		}
	}
	if hit == nil {
		t.Fatal("expected balance-break anomaly")
	}
	// 断点后以行末余额重新校准，只报一处
	if hit.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", hit.EntryCount)
	}
}

func TestBalanceBreakCreditNormalLedger(t *testing.T) {
	// 应付账款为贷方余额科目：贷增借减，勾稽方向与资产类相反
	l := &model.LedgerData{
		SubjectCode:      "2202",
		SubjectName:      "应付账款",
		BeginningBalance: 10_000,
		Entries: []model.LedgerEntry{
			entry("采购入账", "", 0, 5_000, 15_000),
			entry("付款", "", 3_000, 0, 12_000),
		},
		TotalDebit:  3_000,
		TotalCredit: 5_000,
	}
	analysis := NewAnalyzer().Analyze(l)

	for _, an := range analysis.Anomalies {
		if an.Category == model.AnomalyBalanceBreak {
			t.Fatalf("consistent payable ledger flagged: %s", an.Description)
		}
	}
}

func TestBalanceBreakCreditNormalDetectsRealBreak(t *testing.T) {
	l := &model.LedgerData{
		SubjectCode:      "2202",
		SubjectName:      "应付账款",
		BeginningBalance: 10_000,
		Entries: []model.LedgerEntry{
			entry("采购入账", "", 0, 5_000, 15_000),
			entry("断裂", "", 3_000, 0, 20_000), // 应为 12000
		},
	}
	analysis := NewAnalyzer().Analyze(l)

	var hit *model.Anomaly
	for i := range analysis.Anomalies {
		if analysis.Anomalies[i].Category == model.AnomalyBalanceBreak {
			hit = &analysis.Anomalies[i]
		}
	}
	if hit == nil {
		t.Fatal("expected balance-break anomaly")
	}
	if hit.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", hit.EntryCount)
	}
}

func TestAnomaliesSortedBySeverity(t *testing.T) {
	// 同时触发整数金额（中危）与余额断裂（高危），高危在前
	l := &model.LedgerData{
		SubjectCode:      "1002",
		BeginningBalance: 0,
		Entries: []model.LedgerEntry{
			entry("a", "", 10_000, 0, 999_999),
			entry("b", "", 20_000, 0, 0),
			entry("c", "", 50_000, 0, 0),
		},
	}
	analysis := NewAnalyzer().Analyze(l)
	if len(analysis.Anomalies) < 2 {
		t.Fatalf("expected at least 2 anomalies, got %d", len(analysis.Anomalies))
	}
	for i := 1; i < len(analysis.Anomalies); i++ {
		if analysis.Anomalies[i-1].Severity.Rank() < analysis.Anomalies[i].Severity.Rank() {
			t.Fatal("anomalies not sorted by severity desc")
		}
	}
}

func TestTopTransactions(t *testing.T) {
	entries := []model.LedgerEntry{
		entry("t1", "", 10, 0, 0),
		entry("t2", "", 500, 0, 0),
		entry("t3", "", 0, 300, 0),
		entry("t4", "", 40, 0, 0),
		entry("t5", "", 9_000, 0, 0),
		entry("t6", "", 60, 0, 0),
		entry("t7", "", 90, 0, 0),
	}
	l := &model.LedgerData{SubjectCode: "1002", Entries: entries}
	analysis := NewAnalyzer().Analyze(l)

	if len(analysis.TopTxns) != 5 {
		t.Fatalf("len(TopTxns) = %d, want 5", len(analysis.TopTxns))
	}
	if analysis.TopTxns[0].Amount != 9_000 {
		t.Errorf("top amount = %v, want 9000", analysis.TopTxns[0].Amount)
	}
	var totalPct float64
	for _, txn := range analysis.AllTxns {
		totalPct += txn.Percentage
	}
	if math.Abs(totalPct-100) > 1e-6 {
		t.Errorf("percentages sum to %v, want 100", totalPct)
	}
}
