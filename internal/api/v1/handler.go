package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"finsight/internal/benchmark"
	"finsight/internal/config"
	"finsight/internal/forecast"
	"finsight/internal/importer"
	"finsight/internal/ledger"
	"finsight/internal/report"
	"finsight/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store       *store.Store
	cfg         *config.AppConfig
	log         zerolog.Logger
	coordinator *importer.Coordinator
	ledger      *ledger.Analyzer
	forecaster  *forecast.Engine
	comparator  *benchmark.Comparator
	synthesizer *report.Synthesizer
}

// NewHandler 创建 V1 API 处理器
func NewHandler(s *store.Store, cfg *config.AppConfig, log zerolog.Logger) (*Handler, error) {
	comparator, err := benchmark.New()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		store:       s,
		cfg:         cfg,
		log:         log,
		coordinator: importer.NewCoordinator(s, log),
		comparator:  comparator,
		synthesizer: report.NewSynthesizer(),
	}
	h.applyAnalysisConfig()
	return h, nil
}

// applyAnalysisConfig 按当前配置重建分析引擎（创建与配置更新时调用）
func (h *Handler) applyAnalysisConfig() {
	ledgerCfg := ledger.DefaultConfig()
	if h.cfg.Analysis.ConcentrationShare > 0 {
		ledgerCfg.ConcentrationShare = h.cfg.Analysis.ConcentrationShare
	}
	if h.cfg.Analysis.RoundBase > 0 {
		ledgerCfg.RoundBase = h.cfg.Analysis.RoundBase
	}
	if h.cfg.Analysis.BalanceTolerance > 0 {
		ledgerCfg.BalanceTolerance = h.cfg.Analysis.BalanceTolerance
	}
	h.ledger = ledger.NewAnalyzerWith(ledger.DefaultExtractor(), ledgerCfg)

	horizon := h.cfg.Analysis.ForecastHorizon
	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}
	h.forecaster = forecast.NewEngineWithHorizon(horizon)
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态与配置
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 公司管理
	router.POST("/companies", h.CreateCompany)
	router.GET("/companies", h.ListCompanies)
	router.GET("/companies/:id", h.GetCompany)
	router.PATCH("/companies/:id", h.UpdateCompany)
	router.DELETE("/companies/:id", h.DeleteCompany)

	// 数据导入
	router.POST("/companies/:id/import", h.Import)
	router.POST("/companies/:id/import/batch", h.ImportBatch)

	// 期间数据
	router.GET("/companies/:id/periods", h.ListPeriods)
	router.GET("/companies/:id/periods/:pid", h.GetPeriod)
	router.DELETE("/companies/:id/periods/:pid", h.RemovePeriod)

	// 分析
	router.GET("/companies/:id/periods/:pid/metrics", h.GetMetrics)
	router.GET("/companies/:id/periods/:pid/ledgers", h.GetLedgerAnalysis)
	router.GET("/companies/:id/forecast", h.GetForecast)
	router.GET("/companies/:id/periods/:pid/benchmark", h.GetBenchmark)
	router.GET("/companies/:id/periods/:pid/report", h.GetReport)
	router.GET("/companies/:id/periods/:pid/export", h.ExportPeriod)
}
