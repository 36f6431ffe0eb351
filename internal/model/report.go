package model

// Priority 建议优先级
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank 优先级排序权重
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ExecutiveSummary 执行摘要
type ExecutiveSummary struct {
	HealthLevel string   `json:"healthLevel"` // 优秀/良好/一般/较差/危险
	Score       float64  `json:"score"`       // 综合得分 0-100
	Highlights  []string `json:"highlights"`  // 亮点
	Summary     string   `json:"summary"`     // 一句话总结
}

// KeyFinding 关键发现
type KeyFinding struct {
	Area        string `json:"area"`        // 领域（盈利/偿债/资产结构/成长/异常/对标/趋势）
	Description string `json:"description"` // 描述
	Impact      string `json:"impact"`      // positive/neutral/negative
}

// RiskFactor 风险因素
type RiskFactor struct {
	Category    string  `json:"category"`    // 风险类别
	Level       string  `json:"level"`       // low/medium/high
	Description string  `json:"description"` // 描述
	Probability float64 `json:"probability"` // 发生概率 0-1
	Impact      float64 `json:"impact"`      // 影响程度 0-1
}

// RiskAssessment 风险评估
type RiskAssessment struct {
	OverallLevel string       `json:"overallLevel"` // 低/中/较高/高
	RiskScore    float64      `json:"riskScore"`    // 风险分
	Factors      []RiskFactor `json:"factors"`      // 各风险因素
}

// Recommendation 改进建议
type Recommendation struct {
	Category    string   `json:"category"`    // 建议类别
	Priority    Priority `json:"priority"`    // 优先级
	Title       string   `json:"title"`       // 标题
	Description string   `json:"description"` // 描述
	Expected    string   `json:"expected"`    // 预期效果
}

// ActionItem 行动项
type ActionItem struct {
	Phase       string `json:"phase"`       // immediate/short/medium/long
	Title       string `json:"title"`       // 标题
	Responsible string `json:"responsible"` // 责任部门
	Timeline    string `json:"timeline"`    // 时间窗口
}

// SmartReport 综合分析报告
type SmartReport struct {
	Summary         ExecutiveSummary `json:"summary"`
	Findings        []KeyFinding     `json:"findings"`
	Risk            RiskAssessment   `json:"risk"`
	Recommendations []Recommendation `json:"recommendations"` // 按优先级降序
	ActionPlan      []ActionItem     `json:"actionPlan"`      // 按阶段排序
	Text            string           `json:"text"`            // 文本渲染
}
