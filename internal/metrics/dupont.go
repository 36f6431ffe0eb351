package metrics

import "finsight/internal/model"

// Dupont 杜邦分解
// ROE = 净利率 × 总资产周转率 × 权益乘数
func Dupont(m *model.FinancialMetrics) *model.DupontAnalysis {
	return &model.DupontAnalysis{
		ROE:                m.NetProfitMargin * m.TotalAssetTurnover * m.EquityMultiplier,
		NetProfitMargin:    m.NetProfitMargin,
		TotalAssetTurnover: m.TotalAssetTurnover,
		EquityMultiplier:   m.EquityMultiplier,
	}
}
