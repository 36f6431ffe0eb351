package model

import "time"

// PeriodType 期间类型
type PeriodType string

const (
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
	PeriodYear    PeriodType = "year"
)

// Period 单个分析期间记录
type Period struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`      // 期间标签，如 "2024年3月"
	Type       PeriodType        `json:"type"`       // 期间类型
	Data       *FinancialData    `json:"data"`       // 财务数据快照
	Metrics    *FinancialMetrics `json:"metrics"`    // 比率指标
	Dupont     *DupontAnalysis   `json:"dupont"`     // 杜邦分解
	SourceFile string            `json:"sourceFile"` // 来源文件名
	CreatedAt  time.Time         `json:"createdAt"`
}

// Company 公司记录
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"` // 行业键（对标用）
	Periods   []Period  `json:"periods,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
