package model

// IndustryMetricComparison 单指标对标结果
type IndustryMetricComparison struct {
	Metric       string  `json:"metric"`       // 指标键名
	Label        string  `json:"label"`        // 指标中文名
	CompanyValue float64 `json:"companyValue"` // 本公司值
	IndustryAvg  float64 `json:"industryAvg"`  // 行业均值
	IndustryBest float64 `json:"industryBest"` // 行业优秀值
	Percentile   float64 `json:"percentile"`   // 行业分位
	Status       string  `json:"status"`       // excellent/good/average/below/poor
	GapPercent   float64 `json:"gapPercent"`   // 与行业均值差距 (%)
	HigherBetter bool    `json:"higherBetter"` // 指标方向
}

// IndustryComparisonResult 行业对标结果
type IndustryComparisonResult struct {
	Industry     string                     `json:"industry"`     // 行业键
	Comparisons  []IndustryMetricComparison `json:"comparisons"`  // 各指标对标
	OverallScore float64                    `json:"overallScore"` // 加权综合得分
	Ranking      string                     `json:"ranking"`      // leading/upper/average/below/lagging
	Strengths    []string                   `json:"strengths"`    // 优势指标（分位前 3，且 >60）
	Weaknesses   []string                   `json:"weaknesses"`   // 弱势指标（分位后 3，且 <60）
}
