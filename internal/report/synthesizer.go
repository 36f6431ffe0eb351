package report

import (
	"fmt"

	"finsight/internal/model"
)

// Input 报告合成输入
type Input struct {
	Data      *model.FinancialData
	Metrics   *model.FinancialMetrics
	Anomalies []model.Anomaly
	Forecast  *model.ForecastResult
	Benchmark *model.IndustryComparisonResult
}

// Synthesizer 综合报告合成器
type Synthesizer struct{}

// NewSynthesizer 创建报告合成器
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize 合成综合分析报告
func (s *Synthesizer) Synthesize(in Input) *model.SmartReport {
	report := &model.SmartReport{}

	score, highlights := s.scoreHealth(in)
	report.Summary = model.ExecutiveSummary{
		HealthLevel: healthLevel(score),
		Score:       score,
		Highlights:  highlights,
	}
	report.Summary.Summary = fmt.Sprintf("企业综合财务健康评分 %.0f 分，评级「%s」。", score, report.Summary.HealthLevel)

	report.Findings = s.keyFindings(in)
	report.Risk = s.assessRisk(in)
	report.Recommendations = s.recommendations(in)
	report.ActionPlan = s.actionPlan(report.Recommendations)
	report.Text = render(report)

	return report
}

// scoreHealth 加法计分：基准 50 分，五大能力加分封顶，异常扣分，趋势与对标修正
func (s *Synthesizer) scoreHealth(in Input) (float64, []string) {
	m := in.Metrics
	score := 50.0
	var highlights []string

	// 偿债能力 ≤20
	solvency := 0.0
	solvency += band(m.CurrentRatio, 2, 8, 1.5, 6, 1, 3)
	solvency += bandInverse(m.DebtToAssetRatio, 40, 8, 55, 6, 70, 3)
	solvency += band(m.QuickRatio, 1, 4, 0.7, 2, 0.5, 1)
	score += capAt(solvency, 20)
	if m.CurrentRatio >= 2 {
		highlights = append(highlights, fmt.Sprintf("流动比率 %.2f，短期偿债能力充裕", m.CurrentRatio))
	}

	// 盈利能力 ≤25
	profitability := 0.0
	profitability += band(m.NetProfitMargin, 15, 9, 8, 6, 3, 3)
	profitability += band(m.ROE, 15, 9, 10, 6, 5, 3)
	profitability += band(m.GrossProfitMargin, 30, 7, 20, 4, 10, 2)
	score += capAt(profitability, 25)
	if m.ROE >= 15 {
		highlights = append(highlights, fmt.Sprintf("净资产收益率 %.1f%%，股东回报优秀", m.ROE))
	}

	// 营运能力 ≤20
	efficiency := 0.0
	efficiency += band(m.TotalAssetTurnover, 1.5, 8, 1, 6, 0.5, 3)
	efficiency += band(m.ReceivablesTurnover, 8, 6, 5, 4, 3, 2)
	efficiency += band(m.InventoryTurnover, 6, 6, 4, 4, 2, 2)
	score += capAt(efficiency, 20)

	// 成长能力 ≤20
	growth := 0.0
	growth += band(m.RevenueGrowthRate, 20, 10, 10, 7, 0.001, 4)
	growth += band(m.ProfitGrowthRate, 20, 10, 10, 7, 0.001, 4)
	score += capAt(growth, 20)
	if m.RevenueGrowthRate >= 10 {
		highlights = append(highlights, fmt.Sprintf("营收同比增长 %.1f%%，成长动能良好", m.RevenueGrowthRate))
	}

	// 现金能力 ≤15
	cash := 0.0
	cash += band(m.CashRatio, 50, 8, 30, 5, 15, 3)
	cash += band(m.CashToAssetRatio, 15, 7, 8, 4, 3, 2)
	score += capAt(cash, 15)

	// 异常扣分：高危 -3 / 中危 -1
	for _, an := range in.Anomalies {
		switch an.Severity {
		case model.SeverityHigh:
			score -= 3
		case model.SeverityMedium:
			score -= 1
		}
	}

	// 预测趋势修正
	if in.Forecast != nil {
		switch in.Forecast.Trend.Direction {
		case "positive":
			score += 5
		case "negative":
			score -= 3
		}
	}

	// 行业对标修正
	if in.Benchmark != nil && in.Benchmark.OverallScore > 70 {
		score += 3
		if in.Benchmark.Ranking == "leading" || in.Benchmark.Ranking == "upper" {
			highlights = append(highlights, "主要指标处于行业中上游水平")
		}
	}

	return clamp(score, 0, 100), highlights
}

// healthLevel 评分 → 五档健康评级
func healthLevel(score float64) string {
	switch {
	case score >= 80:
		return "优秀"
	case score >= 65:
		return "良好"
	case score >= 50:
		return "一般"
	case score >= 35:
		return "较差"
	default:
		return "危险"
	}
}

// keyFindings 逐领域生成关键发现
func (s *Synthesizer) keyFindings(in Input) []model.KeyFinding {
	m := in.Metrics
	var findings []model.KeyFinding

	findings = append(findings, model.KeyFinding{
		Area:        "盈利能力",
		Description: fmt.Sprintf("净利率 %.1f%%，净资产收益率 %.1f%%", m.NetProfitMargin, m.ROE),
		Impact:      impactOf(m.NetProfitMargin >= 8, m.NetProfitMargin < 3),
	})
	findings = append(findings, model.KeyFinding{
		Area:        "偿债能力",
		Description: fmt.Sprintf("流动比率 %.2f，资产负债率 %.1f%%", m.CurrentRatio, m.DebtToAssetRatio),
		Impact:      impactOf(m.CurrentRatio >= 1.5 && m.DebtToAssetRatio < 60, m.CurrentRatio < 1 || m.DebtToAssetRatio > 75),
	})
	findings = append(findings, model.KeyFinding{
		Area:        "资产结构",
		Description: fmt.Sprintf("货币资金占总资产 %.1f%%，应收账款占 %.1f%%，存货占 %.1f%%", m.CashToAssetRatio, m.ReceivablesToAssets, m.InventoryToAssets),
		Impact:      impactOf(m.CashToAssetRatio >= 10, m.ReceivablesToAssets > 40 || m.InventoryToAssets > 40),
	})
	findings = append(findings, model.KeyFinding{
		Area:        "成长能力",
		Description: fmt.Sprintf("营收同比增长 %.1f%%，净利润同比增长 %.1f%%", m.RevenueGrowthRate, m.ProfitGrowthRate),
		Impact:      impactOf(m.RevenueGrowthRate > 0, m.RevenueGrowthRate < 0 && m.ProfitGrowthRate < 0),
	})

	// 最高危异常
	for _, an := range in.Anomalies {
		if an.Severity == model.SeverityHigh {
			findings = append(findings, model.KeyFinding{
				Area:        "异常交易",
				Description: an.Description,
				Impact:      "negative",
			})
			break
		}
	}

	// 恒等式校验不通过
	if in.Data != nil {
		for _, check := range in.Data.IdentityChecks {
			if !check.Passed {
				findings = append(findings, model.KeyFinding{
					Area:        "数据勾稽",
					Description: fmt.Sprintf("恒等式「%s」不平衡，差额 %.2f", check.Name, check.Delta),
					Impact:      "negative",
				})
			}
		}
		if in.Data.Aging != nil {
			if ratio := in.Data.Aging.OverdueRatio(); ratio > 30 {
				findings = append(findings, model.KeyFinding{
					Area:        "账龄风险",
					Description: fmt.Sprintf("%s一年以上账龄占比 %.1f%%，回收风险偏高", in.Data.Aging.SubjectName, ratio),
					Impact:      "negative",
				})
			}
		}
	}

	// 对标弱项
	if in.Benchmark != nil && len(in.Benchmark.Weaknesses) > 0 {
		findings = append(findings, model.KeyFinding{
			Area:        "行业对标",
			Description: fmt.Sprintf("低于行业均值的指标：%s", joinCN(in.Benchmark.Weaknesses)),
			Impact:      "negative",
		})
	}

	// 预测趋势
	if in.Forecast != nil {
		desc := "未来趋势总体平稳"
		impact := "neutral"
		switch in.Forecast.Trend.Direction {
		case "positive":
			desc = "回归预测显示营收与利润趋势向好"
			impact = "positive"
		case "negative":
			desc = "回归预测显示营收与利润双双下行"
			impact = "negative"
		}
		findings = append(findings, model.KeyFinding{Area: "趋势预测", Description: desc, Impact: impact})
	}

	return findings
}

// assessRisk 风险评估：各类别按档位给定概率×影响，总分映射四档
func (s *Synthesizer) assessRisk(in Input) model.RiskAssessment {
	m := in.Metrics
	var factors []model.RiskFactor

	factors = append(factors, riskFactor("流动性风险",
		levelOf(m.CurrentRatio < 1, m.CurrentRatio < 1.5),
		fmt.Sprintf("流动比率 %.2f", m.CurrentRatio)))
	factors = append(factors, riskFactor("杠杆风险",
		levelOf(m.DebtToAssetRatio > 70, m.DebtToAssetRatio > 55),
		fmt.Sprintf("资产负债率 %.1f%%", m.DebtToAssetRatio)))
	factors = append(factors, riskFactor("盈利风险",
		levelOf(m.NetProfitMargin < 0, m.NetProfitMargin < 3),
		fmt.Sprintf("净利率 %.1f%%", m.NetProfitMargin)))
	factors = append(factors, riskFactor("增长停滞风险",
		levelOf(m.RevenueGrowthRate < 0 && m.ProfitGrowthRate < 0, m.RevenueGrowthRate < 0),
		fmt.Sprintf("营收增速 %.1f%%，利润增速 %.1f%%", m.RevenueGrowthRate, m.ProfitGrowthRate)))

	highCount, mediumCount := 0, 0
	for _, an := range in.Anomalies {
		switch an.Severity {
		case model.SeverityHigh:
			highCount++
		case model.SeverityMedium:
			mediumCount++
		}
	}
	factors = append(factors, riskFactor("异常交易风险",
		levelOf(highCount >= 2, highCount >= 1 || mediumCount >= 2),
		fmt.Sprintf("高危异常 %d 项，中危异常 %d 项", highCount, mediumCount)))

	if in.Forecast != nil {
		factors = append(factors, riskFactor("趋势风险",
			levelOf(false, in.Forecast.Trend.Direction == "negative"),
			fmt.Sprintf("预测趋势 %s，波动水平 %s", in.Forecast.Trend.Direction, in.Forecast.Trend.Volatility)))
	}

	var total float64
	for _, f := range factors {
		total += f.Probability * f.Impact * 100
	}

	level := "低"
	switch {
	case total >= 150:
		level = "高"
	case total >= 90:
		level = "较高"
	case total >= 45:
		level = "中"
	}

	return model.RiskAssessment{OverallLevel: level, RiskScore: total, Factors: factors}
}

// riskFactor 按档位构造风险因素
func riskFactor(category, level, desc string) model.RiskFactor {
	probability, impact := 0.2, 0.3
	switch level {
	case "high":
		probability, impact = 0.7, 0.8
	case "medium":
		probability, impact = 0.45, 0.55
	}
	return model.RiskFactor{
		Category:    category,
		Level:       level,
		Description: desc,
		Probability: probability,
		Impact:      impact,
	}
}

func levelOf(high, medium bool) string {
	switch {
	case high:
		return "high"
	case medium:
		return "medium"
	default:
		return "low"
	}
}

func impactOf(positive, negative bool) string {
	switch {
	case negative:
		return "negative"
	case positive:
		return "positive"
	default:
		return "neutral"
	}
}

// band 越高越好指标的阶梯加分
func band(value, t1, p1, t2, p2, t3, p3 float64) float64 {
	switch {
	case value >= t1:
		return p1
	case value >= t2:
		return p2
	case value >= t3:
		return p3
	default:
		return 0
	}
}

// bandInverse 越低越好指标的阶梯加分
func bandInverse(value, t1, p1, t2, p2, t3, p3 float64) float64 {
	switch {
	case value < t1:
		return p1
	case value < t2:
		return p2
	case value < t3:
		return p3
	default:
		return 0
	}
}

func capAt(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func joinCN(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "、"
		}
		out += item
	}
	return out
}
