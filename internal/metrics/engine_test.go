package metrics

import (
	"math"
	"testing"

	"finsight/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sampleData() *model.FinancialData {
	data := model.NewFinancialData()
	data.TotalAssets = 1_000_000
	data.TotalLiabilities = 600_000
	data.TotalEquity = 400_000
	data.TotalIncome = 300_000
	data.TotalExpenses = 250_000
	data.NetProfit = 50_000
	data.CurrentAssets = 500_000
	data.CurrentLiabilities = 250_000
	data.MonetaryFunds = 100_000
	data.Receivables = 150_000
	data.Inventory = 120_000
	return data
}

func TestCalculateSolvency(t *testing.T) {
	m := NewEngine().Calculate(sampleData())

	if !almostEqual(m.CurrentRatio, 2.0) {
		t.Errorf("CurrentRatio = %v, want 2.0", m.CurrentRatio)
	}
	if !almostEqual(m.QuickRatio, (500_000.0-120_000)/250_000) {
		t.Errorf("QuickRatio = %v", m.QuickRatio)
	}
	if !almostEqual(m.DebtToAssetRatio, 60.0) {
		t.Errorf("DebtToAssetRatio = %v, want 60", m.DebtToAssetRatio)
	}
	if !almostEqual(m.DebtToEquityRatio, 150.0) {
		t.Errorf("DebtToEquityRatio = %v, want 150", m.DebtToEquityRatio)
	}
	if !almostEqual(m.EquityMultiplier, 2.5) {
		t.Errorf("EquityMultiplier = %v, want 2.5", m.EquityMultiplier)
	}
	if !almostEqual(m.WorkingCapital, 250_000) {
		t.Errorf("WorkingCapital = %v, want 250000", m.WorkingCapital)
	}
}

func TestCalculateCashCoverage(t *testing.T) {
	m := NewEngine().Calculate(sampleData())

	// 现金比率按流动负债口径，负债覆盖按总负债口径
	if !almostEqual(m.CashRatio, 40.0) {
		t.Errorf("CashRatio = %v, want 40", m.CashRatio)
	}
	if !almostEqual(m.CashLiabilityCover, 100_000.0/600_000*100) {
		t.Errorf("CashLiabilityCover = %v, want %v", m.CashLiabilityCover, 100_000.0/600_000*100)
	}
}

func TestCalculateProfitability(t *testing.T) {
	m := NewEngine().Calculate(sampleData())

	wantMargin := 50_000.0 / 300_000 * 100
	if !almostEqual(m.NetProfitMargin, wantMargin) {
		t.Errorf("NetProfitMargin = %v, want %v", m.NetProfitMargin, wantMargin)
	}
	if !almostEqual(m.ROE, 12.5) {
		t.Errorf("ROE = %v, want 12.5", m.ROE)
	}
	if !almostEqual(m.ROA, 5.0) {
		t.Errorf("ROA = %v, want 5", m.ROA)
	}
	// 无概要表时毛利率退回净利率口径
	if !almostEqual(m.GrossProfitMargin, wantMargin) {
		t.Errorf("GrossProfitMargin = %v, want %v", m.GrossProfitMargin, wantMargin)
	}
}

func TestCalculateWithSummaryMargins(t *testing.T) {
	data := sampleData()
	data.Summary = &model.FinancialSummaryData{
		Revenue: 300_000,
		Cost:    180_000,
		Expense: 60_000,
	}
	m := NewEngine().Calculate(data)

	if !almostEqual(m.GrossProfitMargin, 40.0) {
		t.Errorf("GrossProfitMargin = %v, want 40", m.GrossProfitMargin)
	}
	if !almostEqual(m.OperatingMargin, 20.0) {
		t.Errorf("OperatingMargin = %v, want 20", m.OperatingMargin)
	}
	// 存货周转改用概要表营业成本口径
	if !almostEqual(m.InventoryTurnover, 180_000.0/120_000) {
		t.Errorf("InventoryTurnover = %v", m.InventoryTurnover)
	}
}

func TestCalculateGrowth(t *testing.T) {
	prev := sampleData()
	prev.TotalIncome = 250_000
	prev.NetProfit = 40_000
	prev.TotalAssets = 800_000

	m := NewEngine().CalculateWithPrevious(sampleData(), prev)

	if !almostEqual(m.RevenueGrowthRate, 20.0) {
		t.Errorf("RevenueGrowthRate = %v, want 20", m.RevenueGrowthRate)
	}
	if !almostEqual(m.ProfitGrowthRate, 25.0) {
		t.Errorf("ProfitGrowthRate = %v, want 25", m.ProfitGrowthRate)
	}
	if !almostEqual(m.AssetGrowthRate, 25.0) {
		t.Errorf("AssetGrowthRate = %v, want 25", m.AssetGrowthRate)
	}
}

func TestCalculateGrowthWithoutPrevious(t *testing.T) {
	m := NewEngine().Calculate(sampleData())
	if m.RevenueGrowthRate != 0 || m.ProfitGrowthRate != 0 || m.AssetGrowthRate != 0 {
		t.Errorf("growth rates should be 0 without previous period: %+v", m)
	}
}

func TestCalculateAllZeros(t *testing.T) {
	// 全零快照不得产生 NaN/Inf
	m := NewEngine().Calculate(model.NewFinancialData())

	checks := map[string]float64{
		"CurrentRatio":        m.CurrentRatio,
		"DebtToAssetRatio":    m.DebtToAssetRatio,
		"NetProfitMargin":     m.NetProfitMargin,
		"ROE":                 m.ROE,
		"TotalAssetTurnover":  m.TotalAssetTurnover,
		"ReceivablesTurnover": m.ReceivablesTurnover,
		"InventoryDays":       m.InventoryDays,
		"CashToAssetRatio":    m.CashToAssetRatio,
	}
	for name, v := range checks {
		if v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}
}

func TestGrowthRateNegativeBase(t *testing.T) {
	// 上期亏损转盈利：以绝对值为基数，方向为正
	if got := growthRate(50, -100); !almostEqual(got, 150) {
		t.Errorf("growthRate(50, -100) = %v, want 150", got)
	}
	if got := growthRate(100, 0); got != 0 {
		t.Errorf("growthRate(100, 0) = %v, want 0", got)
	}
}

func TestDupont(t *testing.T) {
	m := NewEngine().Calculate(sampleData())
	d := Dupont(m)

	want := m.NetProfitMargin / 100 * m.TotalAssetTurnover * m.EquityMultiplier * 100
	if !almostEqual(d.ROE, want) {
		t.Errorf("Dupont ROE = %v, want %v", d.ROE, want)
	}
	// 杜邦分解值应与直接计算的 ROE 一致
	if !almostEqual(d.ROE, m.ROE) {
		t.Errorf("Dupont ROE %v != direct ROE %v", d.ROE, m.ROE)
	}
}
