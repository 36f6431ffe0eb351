package metrics

import "finsight/internal/model"

// Engine 比率指标计算引擎
// 纯函数式：同一快照重复计算结果恒等
type Engine struct{}

// NewEngine 创建计算引擎
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate 计算全部比率指标（无上期基数，成长指标为 0）
func (e *Engine) Calculate(data *model.FinancialData) *model.FinancialMetrics {
	return e.CalculateWithPrevious(data, nil)
}

// CalculateWithPrevious 计算全部比率指标
// 分母不大于 0 一律取 0，保证所有零快照不抛错
func (e *Engine) CalculateWithPrevious(data, prev *model.FinancialData) *model.FinancialMetrics {
	m := &model.FinancialMetrics{}

	// 偿债能力
	m.CurrentRatio = safeDiv(data.CurrentAssets, data.CurrentLiabilities)
	m.QuickRatio = safeDiv(data.CurrentAssets-data.Inventory, data.CurrentLiabilities)
	m.CashRatio = safeDiv(data.MonetaryFunds, data.CurrentLiabilities) * 100
	m.DebtToAssetRatio = safeDiv(data.TotalLiabilities, data.TotalAssets) * 100
	m.DebtToEquityRatio = safeDiv(data.TotalLiabilities, data.TotalEquity) * 100
	m.EquityMultiplier = safeDiv(data.TotalAssets, data.TotalEquity)
	m.WorkingCapital = data.CurrentAssets - data.CurrentLiabilities

	// 盈利能力
	revenue := data.TotalIncome
	m.NetProfitMargin = safeDiv(data.NetProfit, revenue) * 100
	m.ROE = safeDiv(data.NetProfit, data.TotalEquity) * 100
	m.ROA = safeDiv(data.NetProfit, data.TotalAssets) * 100
	m.CostExpenseProfit = safeDiv(data.NetProfit, data.TotalExpenses) * 100
	m.GrossProfitMargin, m.OperatingMargin = e.profitMargins(data)

	// 营运能力
	m.TotalAssetTurnover = safeDiv(revenue, data.TotalAssets)
	m.CurrentAssetTurnover = safeDiv(revenue, data.CurrentAssets)
	m.ReceivablesTurnover = safeDiv(revenue, data.Receivables)
	m.InventoryTurnover = safeDiv(e.costOfSales(data), data.Inventory)
	m.ReceivablesDays = safeDiv(360, m.ReceivablesTurnover)
	m.InventoryDays = safeDiv(360, m.InventoryTurnover)

	// 成长能力（需上期基数，缺失时保持 0）
	if prev != nil {
		m.RevenueGrowthRate = growthRate(revenue, prev.TotalIncome)
		m.ProfitGrowthRate = growthRate(data.NetProfit, prev.NetProfit)
		m.AssetGrowthRate = growthRate(data.TotalAssets, prev.TotalAssets)
		m.EquityGrowthRate = growthRate(data.TotalEquity, prev.TotalEquity)
	}

	// 现金与结构
	m.CashToAssetRatio = safeDiv(data.MonetaryFunds, data.TotalAssets) * 100
	m.CashToRevenueRatio = safeDiv(data.MonetaryFunds, revenue) * 100
	m.CashLiabilityCover = safeDiv(data.MonetaryFunds, data.TotalLiabilities) * 100
	m.ReceivablesToAssets = safeDiv(data.Receivables, data.TotalAssets) * 100
	m.InventoryToAssets = safeDiv(data.Inventory, data.TotalAssets) * 100

	return m
}

// profitMargins 毛利率与营业利润率
// 概要表提供成本/费用拆分时按拆分口径，否则退回净利率口径
func (e *Engine) profitMargins(data *model.FinancialData) (gross, operating float64) {
	if s := data.Summary; s != nil && s.Revenue > 0 {
		gross = safeDiv(s.Revenue-s.Cost, s.Revenue) * 100
		operating = safeDiv(s.Revenue-s.Cost-s.Expense, s.Revenue) * 100
		return gross, operating
	}
	net := safeDiv(data.NetProfit, data.TotalIncome) * 100
	return net, net
}

// costOfSales 销货成本口径：优先概要表营业成本，退回成本费用合计
func (e *Engine) costOfSales(data *model.FinancialData) float64 {
	if s := data.Summary; s != nil && s.Cost > 0 {
		return s.Cost
	}
	return data.TotalExpenses
}

// safeDiv 分母不大于 0 时返回 0
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// growthRate 同比增长率 (%)，上期为 0 时返回 0
func growthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	base := previous
	if base < 0 {
		base = -base
	}
	return (current - previous) / base * 100
}
