package benchmark

import (
	"sort"

	"finsight/internal/model"
)

// Comparator 行业对标器
type Comparator struct {
	table *Table
}

// New 创建对标器（内置基准表）
func New() (*Comparator, error) {
	table, err := LoadTable()
	if err != nil {
		return nil, err
	}
	return &Comparator{table: table}, nil
}

// NewWithTable 创建自定义基准表对标器
func NewWithTable(table *Table) *Comparator {
	return &Comparator{table: table}
}

// Compare 对标当前指标与行业基准
func (c *Comparator) Compare(m *model.FinancialMetrics, industry string) *model.IndustryComparisonResult {
	profile := c.table.Profile(industry)
	if _, ok := c.table.Industries[industry]; !ok {
		industry = DefaultIndustry
	}

	result := &model.IndustryComparisonResult{Industry: industry}
	var weightedSum, totalWeight float64

	for _, tm := range TrackedMetrics {
		avg, ok := profile.Metrics[tm.Key]
		if !ok || avg == 0 {
			continue
		}
		value := tm.Value(m)
		comparison := compareMetric(tm, value, avg)
		result.Comparisons = append(result.Comparisons, comparison)
		weightedSum += comparison.Percentile * tm.Weight
		totalWeight += tm.Weight
	}

	if totalWeight > 0 {
		result.OverallScore = weightedSum / totalWeight
	}
	result.Ranking = rankingTier(result.OverallScore)
	result.Strengths, result.Weaknesses = topBottom(result.Comparisons)

	return result
}

// compareMetric 单指标对标
// 行业优秀值 = 均值 × 1.5（越高越好）或 × 0.5（越低越好）
func compareMetric(tm TrackedMetric, value, avg float64) model.IndustryMetricComparison {
	best := avg * 1.5
	if !tm.HigherBetter {
		best = avg * 0.5
	}

	pct := percentile(tm.HigherBetter, value, avg, best)
	return model.IndustryMetricComparison{
		Metric:       tm.Key,
		Label:        tm.Label,
		CompanyValue: value,
		IndustryAvg:  avg,
		IndustryBest: best,
		Percentile:   pct,
		Status:       statusOf(pct),
		GapPercent:   (value - avg) / avg * 100,
		HigherBetter: tm.HigherBetter,
	}
}

// percentile 分位固定分档
// 越高越好：≥优秀 95 / ≥1.2均值 80 / ≥均值 60 / ≥0.8均值 40 / ≥0.6均值 20 / 其余 10
// 越低越好按镜像分档，保证分位随指标值单调
func percentile(higherBetter bool, value, avg, best float64) float64 {
	if higherBetter {
		switch {
		case value >= best:
			return 95
		case value >= avg*1.2:
			return 80
		case value >= avg:
			return 60
		case value >= avg*0.8:
			return 40
		case value >= avg*0.6:
			return 20
		default:
			return 10
		}
	}
	switch {
	case value <= best:
		return 95
	case value <= avg*0.8:
		return 80
	case value <= avg:
		return 60
	case value <= avg*1.2:
		return 40
	case value <= avg*1.4:
		return 20
	default:
		return 10
	}
}

func statusOf(pct float64) string {
	switch {
	case pct >= 80:
		return "excellent"
	case pct >= 60:
		return "good"
	case pct >= 40:
		return "average"
	case pct >= 20:
		return "below"
	default:
		return "poor"
	}
}

// rankingTier 综合得分 → 行业位置
func rankingTier(score float64) string {
	switch {
	case score >= 85:
		return "leading"
	case score >= 70:
		return "upper"
	case score >= 50:
		return "average"
	case score >= 30:
		return "below"
	default:
		return "lagging"
	}
}

// strengthCutoff 优劣势分位门槛
const strengthCutoff = 60

// topBottom 优势/弱势指标各取前三，按 60 分位过滤
func topBottom(comparisons []model.IndustryMetricComparison) (strengths, weaknesses []string) {
	sorted := make([]model.IndustryMetricComparison, len(comparisons))
	copy(sorted, comparisons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentile > sorted[j].Percentile
	})

	for i := 0; i < len(sorted) && i < 3; i++ {
		if sorted[i].Percentile > strengthCutoff {
			strengths = append(strengths, sorted[i].Label)
		}
	}
	for i := len(sorted) - 1; i >= 0 && len(weaknesses) < 3; i-- {
		if sorted[i].Percentile < strengthCutoff {
			weaknesses = append(weaknesses, sorted[i].Label)
		}
	}
	return strengths, weaknesses
}
