package model

// PeriodFinancials 历史期间财务要点（预测输入）
type PeriodFinancials struct {
	Period  string  `json:"period"`  // 期间标签
	Revenue float64 `json:"revenue"` // 营业收入
	Profit  float64 `json:"profit"`  // 净利润
	Assets  float64 `json:"assets"`  // 资产总计
}

// ForecastItem 单期预测值
type ForecastItem struct {
	Period     string  `json:"period"`     // 期间标签（如 "F+1"）
	Actual     float64 `json:"actual"`     // 实际值（历史期）
	Forecast   float64 `json:"forecast"`   // 预测值
	LowerBound float64 `json:"lowerBound"` // 置信下界
	UpperBound float64 `json:"upperBound"` // 置信上界
	GrowthRate float64 `json:"growthRate"` // 环比增长率 (%)
	IsForecast bool    `json:"isForecast"` // 是否为预测期
}

// KeyMetricForecast 关键指标趋势预测
type KeyMetricForecast struct {
	Name         string  `json:"name"`         // 指标名称
	Current      float64 `json:"current"`      // 当前值
	Forecast     float64 `json:"forecast"`     // 预测值
	Trend        string  `json:"trend"`        // up/down/stable
	HealthStatus string  `json:"healthStatus"` // good/warning/risk
}

// TrendAnalysis 总体趋势判断
type TrendAnalysis struct {
	Direction  string  `json:"direction"`  // positive/negative/stable
	Volatility string  `json:"volatility"` // high/medium/low
	CV         float64 `json:"cv"`         // 营收序列变异系数
}

// ForecastResult 预测结果
type ForecastResult struct {
	Revenue    []ForecastItem      `json:"revenue"`
	Profit     []ForecastItem      `json:"profit"`
	Assets     []ForecastItem      `json:"assets"`
	KeyMetrics []KeyMetricForecast `json:"keyMetrics"`
	Trend      TrendAnalysis       `json:"trend"`
	Horizon    int                 `json:"horizon"` // 预测期数
}
