package forecast

import (
	"fmt"
	"math"

	"finsight/internal/model"
)

const (
	// DefaultHorizon 默认预测期数
	DefaultHorizon = 3
	// defaultVolatility 样本不足时的波动率兜底
	defaultVolatility = 0.1
	// horizonWidening 置信区间随预测期扩张系数
	horizonWidening = 0.3
)

// Engine 时间序列预测引擎
// 最小二乘回归外推，全程确定性：同一历史序列重复预测结果恒等
type Engine struct {
	horizon int
}

// NewEngine 创建默认预测引擎
func NewEngine() *Engine {
	return &Engine{horizon: DefaultHorizon}
}

// NewEngineWithHorizon 创建指定预测期数的引擎
func NewEngineWithHorizon(horizon int) *Engine {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Engine{horizon: horizon}
}

// Forecast 基于历史期间序列与当前指标生成预测
func (e *Engine) Forecast(history []model.PeriodFinancials, current *model.FinancialMetrics) *model.ForecastResult {
	revenues := make([]float64, len(history))
	profits := make([]float64, len(history))
	assets := make([]float64, len(history))
	labels := make([]string, len(history))
	for i, h := range history {
		revenues[i] = h.Revenue
		profits[i] = h.Profit
		assets[i] = h.Assets
		labels[i] = h.Period
	}

	result := &model.ForecastResult{
		Revenue: e.forecastSeries(revenues, labels),
		Profit:  e.forecastSeries(profits, labels),
		Assets:  e.forecastSeries(assets, labels),
		Horizon: e.horizon,
	}

	revSlope, _ := linearRegression(revenues)
	profitSlope, _ := linearRegression(profits)
	if current != nil {
		result.KeyMetrics = e.keyMetricForecasts(current, revSlope, profitSlope)
	}
	result.Trend = e.classifyTrend(revenues, revSlope, profitSlope)

	return result
}

// forecastSeries 单序列回归外推
// 置信边界宽度随预测期数单调不减
func (e *Engine) forecastSeries(values []float64, labels []string) []model.ForecastItem {
	items := make([]model.ForecastItem, 0, len(values)+e.horizon)

	for i, v := range values {
		item := model.ForecastItem{Period: labels[i], Actual: v}
		if i > 0 {
			item.GrowthRate = growthRate(v, values[i-1])
		}
		items = append(items, item)
	}

	if len(values) == 0 {
		return items
	}

	slope, intercept := linearRegression(values)
	vol := volatility(values)
	last := values[len(values)-1]
	prevMargin := 0.0

	for i := 1; i <= e.horizon; i++ {
		f := slope*float64(len(values)-1+i) + intercept
		if f < 0 {
			f = 0 // 收入/利润/资产预测不取负
		}
		margin := f * vol * (1 + float64(i)*horizonWidening)
		if margin < prevMargin {
			margin = prevMargin
		}
		prevMargin = margin

		lower := f - margin
		if lower < 0 {
			lower = 0
		}

		items = append(items, model.ForecastItem{
			Period:     fmt.Sprintf("预测期%d", i),
			Forecast:   f,
			LowerBound: lower,
			UpperBound: f + margin,
			GrowthRate: growthRate(f, last),
			IsForecast: true,
		})
		last = f
	}

	return items
}

// keyMetricForecasts 关键指标趋势预测
// 指标本身不是输入时间序列，采用确定性方向偏置而非回归外推
func (e *Engine) keyMetricForecasts(current *model.FinancialMetrics, revSlope, profitSlope float64) []model.KeyMetricForecast {
	roeBias := -1.0
	if profitSlope > 0 {
		roeBias = 1.0
	}
	marginBias := -0.5
	if revSlope > 0 {
		marginBias = 0.5
	}

	roe := current.ROE + roeBias
	// 负债率预期向下修正
	debt := current.DebtToAssetRatio * 0.97
	gross := current.GrossProfitMargin + marginBias

	return []model.KeyMetricForecast{
		{
			Name:         "净资产收益率",
			Current:      current.ROE,
			Forecast:     roe,
			Trend:        trendOf(roe - current.ROE),
			HealthStatus: healthBand(roe, 10, 5),
		},
		{
			Name:         "资产负债率",
			Current:      current.DebtToAssetRatio,
			Forecast:     debt,
			Trend:        trendOf(debt - current.DebtToAssetRatio),
			HealthStatus: healthBandInverse(debt, 60, 75),
		},
		{
			Name:         "毛利率",
			Current:      current.GrossProfitMargin,
			Forecast:     gross,
			Trend:        trendOf(gross - current.GrossProfitMargin),
			HealthStatus: healthBand(gross, 30, 15),
		},
	}
}

// classifyTrend 总体趋势与波动分级
func (e *Engine) classifyTrend(revenues []float64, revSlope, profitSlope float64) model.TrendAnalysis {
	direction := "stable"
	if revSlope > 0 && profitSlope > 0 {
		direction = "positive"
	} else if revSlope < 0 && profitSlope < 0 {
		direction = "negative"
	}

	cv := volatility(revenues)
	tier := "low"
	switch {
	case cv > 0.3:
		tier = "high"
	case cv > 0.15:
		tier = "medium"
	}

	return model.TrendAnalysis{Direction: direction, Volatility: tier, CV: cv}
}

// linearRegression 按期间序号的最小二乘拟合
func linearRegression(values []float64) (slope, intercept float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 0, values[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / fn
	}
	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept
}

// volatility 变异系数 = 标准差 / 均值
func volatility(values []float64) float64 {
	if len(values) < 2 {
		return defaultVolatility
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return defaultVolatility
	}

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return math.Abs(math.Sqrt(variance/float64(len(values))) / mean)
}

func growthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

func trendOf(delta float64) string {
	switch {
	case delta > 0.01:
		return "up"
	case delta < -0.01:
		return "down"
	default:
		return "stable"
	}
}

// healthBand 越高越好指标的健康分档
func healthBand(value, good, warning float64) string {
	switch {
	case value >= good:
		return "good"
	case value >= warning:
		return "warning"
	default:
		return "risk"
	}
}

// healthBandInverse 越低越好指标的健康分档
func healthBandInverse(value, good, warning float64) string {
	switch {
	case value <= good:
		return "good"
	case value <= warning:
		return "warning"
	default:
		return "risk"
	}
}
