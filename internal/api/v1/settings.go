package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
)

// GetConfig 获取分析参数配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Analysis)
}

// UpdateConfigRequest 更新分析参数请求，缺省字段保持不变
type UpdateConfigRequest struct {
	DefaultIndustry    *string  `json:"defaultIndustry"`
	ForecastHorizon    *int     `json:"forecastHorizon"`
	ConcentrationShare *float64 `json:"concentrationShare"`
	RoundBase          *float64 `json:"roundBase"`
	BalanceTolerance   *float64 `json:"balanceTolerance"`
}

// UpdateConfig 更新分析参数并持久化到 config.toml
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	if req.ForecastHorizon != nil && *req.ForecastHorizon <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "预测期数必须为正整数"})
		return
	}
	if req.ConcentrationShare != nil && (*req.ConcentrationShare <= 0 || *req.ConcentrationShare > 1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "集中度阈值必须在 (0, 1] 区间"})
		return
	}

	if req.DefaultIndustry != nil && *req.DefaultIndustry != "" {
		h.cfg.Analysis.DefaultIndustry = *req.DefaultIndustry
	}
	if req.ForecastHorizon != nil {
		h.cfg.Analysis.ForecastHorizon = *req.ForecastHorizon
	}
	if req.ConcentrationShare != nil {
		h.cfg.Analysis.ConcentrationShare = *req.ConcentrationShare
	}
	if req.RoundBase != nil && *req.RoundBase > 0 {
		h.cfg.Analysis.RoundBase = *req.RoundBase
	}
	if req.BalanceTolerance != nil && *req.BalanceTolerance > 0 {
		h.cfg.Analysis.BalanceTolerance = *req.BalanceTolerance
	}

	h.applyAnalysisConfig()

	if err := config.SaveConfig(h.cfg); err != nil {
		h.log.Error().Err(err).Msg("配置持久化失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "配置保存失败"})
		return
	}

	c.JSON(http.StatusOK, h.cfg.Analysis)
}
