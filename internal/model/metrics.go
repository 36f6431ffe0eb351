package model

// FinancialMetrics 财务比率指标集
// 五大能力维度，各指标独立计算；分母不大于 0 时取 0
type FinancialMetrics struct {
	// 偿债能力
	CurrentRatio      float64 `json:"currentRatio"`      // 流动比率
	QuickRatio        float64 `json:"quickRatio"`        // 速动比率
	CashRatio         float64 `json:"cashRatio"`         // 现金比率 (%)
	DebtToAssetRatio  float64 `json:"debtToAssetRatio"`  // 资产负债率 (%)
	DebtToEquityRatio float64 `json:"debtToEquityRatio"` // 产权比率 (%)
	EquityMultiplier  float64 `json:"equityMultiplier"`  // 权益乘数
	WorkingCapital    float64 `json:"workingCapital"`    // 营运资金

	// 盈利能力
	GrossProfitMargin  float64 `json:"grossProfitMargin"`  // 毛利率 (%)
	NetProfitMargin    float64 `json:"netProfitMargin"`    // 净利率 (%)
	OperatingMargin    float64 `json:"operatingMargin"`    // 营业利润率 (%)
	ROE                float64 `json:"roe"`                // 净资产收益率 (%)
	ROA                float64 `json:"roa"`                // 总资产收益率 (%)
	CostExpenseProfit  float64 `json:"costExpenseProfit"`  // 成本费用利润率 (%)

	// 营运能力
	TotalAssetTurnover   float64 `json:"totalAssetTurnover"`   // 总资产周转率（次）
	CurrentAssetTurnover float64 `json:"currentAssetTurnover"` // 流动资产周转率（次）
	ReceivablesTurnover  float64 `json:"receivablesTurnover"`  // 应收账款周转率（次）
	InventoryTurnover    float64 `json:"inventoryTurnover"`    // 存货周转率（次）
	ReceivablesDays      float64 `json:"receivablesDays"`      // 应收账款周转天数
	InventoryDays        float64 `json:"inventoryDays"`        // 存货周转天数

	// 成长能力（需上期基数，缺失时为 0）
	RevenueGrowthRate float64 `json:"revenueGrowthRate"` // 营收增长率 (%)
	ProfitGrowthRate  float64 `json:"profitGrowthRate"`  // 净利润增长率 (%)
	AssetGrowthRate   float64 `json:"assetGrowthRate"`   // 资产增长率 (%)
	EquityGrowthRate  float64 `json:"equityGrowthRate"`  // 权益增长率 (%)

	// 现金能力
	CashToAssetRatio    float64 `json:"cashToAssetRatio"`    // 货币资金占总资产比 (%)
	CashToRevenueRatio  float64 `json:"cashToRevenueRatio"`  // 货币资金占营收比 (%)
	CashLiabilityCover  float64 `json:"cashLiabilityCover"`  // 货币资金对总负债覆盖 (%)，流动负债口径见 CashRatio
	ReceivablesToAssets float64 `json:"receivablesToAssets"` // 应收账款占总资产比 (%)
	InventoryToAssets   float64 `json:"inventoryToAssets"`   // 存货占总资产比 (%)
}

// DupontAnalysis 杜邦分解
// ROE = 净利率 × 总资产周转率 × 权益乘数
type DupontAnalysis struct {
	ROE                float64 `json:"roe"`                // 净资产收益率 (%)
	NetProfitMargin    float64 `json:"netProfitMargin"`    // 净利率 (%)
	TotalAssetTurnover float64 `json:"totalAssetTurnover"` // 总资产周转率
	EquityMultiplier   float64 `json:"equityMultiplier"`   // 权益乘数
}
