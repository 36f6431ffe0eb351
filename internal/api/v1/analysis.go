package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/model"
	"finsight/internal/report"
)

// GetMetrics 查询期间比率指标与杜邦分解
// GET /api/companies/:id/periods/:pid/metrics
func (h *Handler) GetMetrics(c *gin.Context) {
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":  period.Label,
		"metrics": period.Metrics,
		"dupont":  period.Dupont,
	})
}

// LedgerAnalysisResponse 明细账分析响应
type LedgerAnalysisResponse struct {
	Period   string                 `json:"period"`
	Ledgers  []model.LedgerAnalysis `json:"ledgers"`
	Total    int                    `json:"total"`
	HighRisk int                    `json:"highRisk"` // 高危异常总数
}

// GetLedgerAnalysis 对期间内全部明细账做资金流向/往来户/异常分析
// GET /api/companies/:id/periods/:pid/ledgers
func (h *Handler) GetLedgerAnalysis(c *gin.Context) {
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	resp := LedgerAnalysisResponse{Period: period.Label}
	if period.Data != nil {
		for i := range period.Data.Ledgers {
			analysis := h.ledger.Analyze(&period.Data.Ledgers[i])
			for _, an := range analysis.Anomalies {
				if an.Severity == model.SeverityHigh {
					resp.HighRisk++
				}
			}
			resp.Ledgers = append(resp.Ledgers, *analysis)
		}
	}
	resp.Total = len(resp.Ledgers)
	c.JSON(http.StatusOK, resp)
}

// GetForecast 基于公司全部历史期间做趋势预测
// GET /api/companies/:id/forecast
func (h *Handler) GetForecast(c *gin.Context) {
	companyID := c.Param("id")
	periods, err := h.store.ListPeriods(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(periods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该公司暂无期间数据"})
		return
	}

	history := historyOf(periods)
	latest := periods[len(periods)-1]
	result := h.forecaster.Forecast(history, latest.Metrics)
	c.JSON(http.StatusOK, result)
}

// GetBenchmark 行业对标
// GET /api/companies/:id/periods/:pid/benchmark?industry=manufacturing
func (h *Handler) GetBenchmark(c *gin.Context) {
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	if period.Metrics == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该期间缺少指标数据"})
		return
	}

	industry := c.Query("industry")
	if industry == "" {
		if company, err := h.store.GetCompany(c.Param("id")); err == nil {
			industry = company.Industry
		}
	}
	if industry == "" {
		industry = h.cfg.Analysis.DefaultIndustry
	}

	c.JSON(http.StatusOK, h.comparator.Compare(period.Metrics, industry))
}

// GetReport 合成综合分析报告
// GET /api/companies/:id/periods/:pid/report
func (h *Handler) GetReport(c *gin.Context) {
	companyID := c.Param("id")
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	if period.Metrics == nil || period.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该期间缺少财务数据"})
		return
	}

	// 明细账异常汇总
	var anomalies []model.Anomaly
	for i := range period.Data.Ledgers {
		analysis := h.ledger.Analyze(&period.Data.Ledgers[i])
		anomalies = append(anomalies, analysis.Anomalies...)
	}

	// 历史序列足够时附带趋势预测
	var forecastResult *model.ForecastResult
	periods, err := h.store.ListPeriods(companyID)
	if err == nil && len(periods) >= 2 {
		forecastResult = h.forecaster.Forecast(historyOf(periods), period.Metrics)
	}

	industry := h.cfg.Analysis.DefaultIndustry
	if company, err := h.store.GetCompany(companyID); err == nil && company.Industry != "" {
		industry = company.Industry
	}
	benchmarkResult := h.comparator.Compare(period.Metrics, industry)

	smartReport := h.synthesizer.Synthesize(report.Input{
		Data:      period.Data,
		Metrics:   period.Metrics,
		Anomalies: anomalies,
		Forecast:  forecastResult,
		Benchmark: benchmarkResult,
	})
	c.JSON(http.StatusOK, smartReport)
}

// historyOf 期间序列 → 预测输入
func historyOf(periods []model.Period) []model.PeriodFinancials {
	var history []model.PeriodFinancials
	for _, p := range periods {
		if p.Data == nil {
			continue
		}
		revenue := p.Data.TotalIncome
		if p.Data.Summary != nil && p.Data.Summary.Revenue > 0 {
			revenue = p.Data.Summary.Revenue
		}
		history = append(history, model.PeriodFinancials{
			Period:  p.Label,
			Revenue: revenue,
			Profit:  p.Data.NetProfit,
			Assets:  p.Data.TotalAssets,
		})
	}
	return history
}
