package report

import (
	"fmt"
	"strings"

	"finsight/internal/model"
)

var impactLabel = map[string]string{
	"positive": "利好",
	"neutral":  "中性",
	"negative": "关注",
}

var levelLabel = map[string]string{
	"high":   "高",
	"medium": "中",
	"low":    "低",
}

var phaseLabel = map[string]string{
	"immediate": "立即执行",
	"short":     "短期",
	"medium":    "中期",
	"long":      "长期",
}

// render 将报告渲染为 Markdown 文本
func render(r *model.SmartReport) string {
	var b strings.Builder

	b.WriteString("# 财务综合分析报告\n\n")

	b.WriteString("## 执行摘要\n\n")
	fmt.Fprintf(&b, "- 综合评分：%.0f 分\n", r.Summary.Score)
	fmt.Fprintf(&b, "- 健康评级：%s\n", r.Summary.HealthLevel)
	if len(r.Summary.Highlights) > 0 {
		b.WriteString("- 主要亮点：\n")
		for _, h := range r.Summary.Highlights {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}
	fmt.Fprintf(&b, "\n%s\n\n", r.Summary.Summary)

	if len(r.Findings) > 0 {
		b.WriteString("## 关键发现\n\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "- 【%s】%s（%s）\n", f.Area, f.Description, impactLabel[f.Impact])
		}
		b.WriteString("\n")
	}

	b.WriteString("## 风险评估\n\n")
	fmt.Fprintf(&b, "综合风险水平：**%s**\n\n", r.Risk.OverallLevel)
	for _, f := range r.Risk.Factors {
		fmt.Fprintf(&b, "- %s（%s）：%s\n", f.Category, levelLabel[f.Level], f.Description)
	}
	b.WriteString("\n")

	if len(r.Recommendations) > 0 {
		b.WriteString("## 改进建议\n\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. **%s**（%s）\n", i+1, rec.Title, rec.Category)
			fmt.Fprintf(&b, "   %s\n", rec.Description)
			fmt.Fprintf(&b, "   预期效果：%s\n", rec.Expected)
		}
		b.WriteString("\n")
	}

	if len(r.ActionPlan) > 0 {
		b.WriteString("## 行动计划\n\n")
		b.WriteString("| 阶段 | 事项 | 责任部门 | 时间窗口 |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, item := range r.ActionPlan {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", phaseLabel[item.Phase], item.Title, item.Responsible, item.Timeline)
		}
	}

	return b.String()
}
