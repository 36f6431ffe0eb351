package report

import (
	"fmt"
	"sort"

	"finsight/internal/model"
)

// recommendations 阈值触发式建议，按优先级降序
func (s *Synthesizer) recommendations(in Input) []model.Recommendation {
	m := in.Metrics
	var recs []model.Recommendation

	if m.CurrentRatio < 1 {
		recs = append(recs, model.Recommendation{
			Category:    "偿债能力",
			Priority:    model.PriorityCritical,
			Title:       "提升短期偿债能力",
			Description: fmt.Sprintf("流动比率仅 %.2f，流动资产不足以覆盖流动负债，存在短期资金链断裂风险。建议压缩短期借款、加快资产变现。", m.CurrentRatio),
			Expected:    "流动比率恢复至 1.5 以上",
		})
	}

	highAnomaly := false
	for _, an := range in.Anomalies {
		if an.Severity == model.SeverityHigh {
			highAnomaly = true
			break
		}
	}
	if highAnomaly {
		recs = append(recs, model.Recommendation{
			Category:    "内控合规",
			Priority:    model.PriorityCritical,
			Title:       "核查高危异常交易",
			Description: "明细账中发现高危异常（大额离群、余额断裂等），建议逐笔核对原始凭证并完善审批流程。",
			Expected:    "异常交易全部查明原因并整改",
		})
	}

	if m.DebtToAssetRatio > 70 {
		recs = append(recs, model.Recommendation{
			Category:    "资本结构",
			Priority:    model.PriorityHigh,
			Title:       "降低负债杠杆",
			Description: fmt.Sprintf("资产负债率 %.1f%%，财务杠杆偏高。建议控制新增有息负债，优先偿还高成本债务。", m.DebtToAssetRatio),
			Expected:    "资产负债率回落至 60% 以内",
		})
	}

	if m.NetProfitMargin < 3 {
		recs = append(recs, model.Recommendation{
			Category:    "盈利能力",
			Priority:    model.PriorityHigh,
			Title:       "改善盈利水平",
			Description: fmt.Sprintf("净利率 %.1f%%，盈利空间薄弱。建议梳理毛利结构、压降期间费用。", m.NetProfitMargin),
			Expected:    "净利率提升至 5% 以上",
		})
	}

	if m.CashToAssetRatio < 3 {
		recs = append(recs, model.Recommendation{
			Category:    "现金储备",
			Priority:    model.PriorityHigh,
			Title:       "增厚货币资金储备",
			Description: fmt.Sprintf("货币资金仅占总资产 %.1f%%，抗风险缓冲不足。建议建立最低现金保有量制度。", m.CashToAssetRatio),
			Expected:    "货币资金占比达到 5% 以上",
		})
	}

	if m.ReceivablesTurnover > 0 && m.ReceivablesTurnover < 3 {
		recs = append(recs, model.Recommendation{
			Category:    "应收管理",
			Priority:    model.PriorityMedium,
			Title:       "加强应收账款催收",
			Description: fmt.Sprintf("应收账款周转率 %.1f 次，回款偏慢。建议按账龄分级催收，并对长账龄客户收紧信用政策。", m.ReceivablesTurnover),
			Expected:    "周转率提升至 5 次以上",
		})
	}

	if m.InventoryTurnover > 0 && m.InventoryTurnover < 2 {
		recs = append(recs, model.Recommendation{
			Category:    "存货管理",
			Priority:    model.PriorityMedium,
			Title:       "优化存货周转",
			Description: fmt.Sprintf("存货周转率 %.1f 次，库存占压明显。建议清理呆滞库存并按销售节奏调整备货。", m.InventoryTurnover),
			Expected:    "存货周转率提升至 4 次以上",
		})
	}

	if m.RevenueGrowthRate < 0 {
		recs = append(recs, model.Recommendation{
			Category:    "经营增长",
			Priority:    model.PriorityMedium,
			Title:       "扭转营收下滑",
			Description: fmt.Sprintf("营业收入同比下降 %.1f%%，建议分析客户与产品结构，开拓增量市场。", -m.RevenueGrowthRate),
			Expected:    "营收增速转正",
		})
	}

	if in.Benchmark != nil && len(in.Benchmark.Weaknesses) > 0 {
		recs = append(recs, model.Recommendation{
			Category:    "行业对标",
			Priority:    model.PriorityLow,
			Title:       "缩小与行业均值差距",
			Description: fmt.Sprintf("以下指标落后于行业均值：%s。建议对标同业改进。", joinCN(in.Benchmark.Weaknesses)),
			Expected:    "弱项指标达到行业平均水平",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	return recs
}

// responsibleFor 建议类别 → 责任部门
var responsibleFor = map[string]string{
	"偿债能力": "财务部",
	"资本结构": "财务部",
	"现金储备": "财务部",
	"盈利能力": "经营管理层",
	"经营增长": "经营管理层",
	"应收管理": "销售部、财务部",
	"存货管理": "供应链管理部",
	"内控合规": "审计与内控部门",
	"行业对标": "经营管理层",
}

// phaseOf 优先级 → 行动阶段及时间窗口
func phaseOf(p model.Priority) (string, string) {
	switch p {
	case model.PriorityCritical:
		return "immediate", "1 个月内"
	case model.PriorityHigh:
		return "short", "1-3 个月"
	case model.PriorityMedium:
		return "medium", "3-6 个月"
	default:
		return "long", "6-12 个月"
	}
}

const maxActionItems = 6

// actionPlan 取优先级最高的建议生成分阶段行动计划
func (s *Synthesizer) actionPlan(recs []model.Recommendation) []model.ActionItem {
	var items []model.ActionItem
	for _, rec := range recs {
		if len(items) >= maxActionItems {
			break
		}
		phase, timeline := phaseOf(rec.Priority)
		responsible := responsibleFor[rec.Category]
		if responsible == "" {
			responsible = "经营管理层"
		}
		items = append(items, model.ActionItem{
			Phase:       phase,
			Title:       rec.Title,
			Responsible: responsible,
			Timeline:    timeline,
		})
	}
	return items
}
