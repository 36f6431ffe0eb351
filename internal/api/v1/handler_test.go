package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"finsight/internal/config"
	"finsight/internal/model"
	"finsight/internal/store"
)

func newTestAPI(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	handler, err := NewHandler(s, config.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, s
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatusEmpty(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Initialized || resp.TotalCompanies != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCompanyCRUDOverHTTP(t *testing.T) {
	router, _ := newTestAPI(t)

	// 创建
	w := doJSON(t, router, http.MethodPost, "/api/companies", gin.H{"name": "测试公司", "industry": "manufacturing"})
	if w.Code != http.StatusOK {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var company model.Company
	if err := json.Unmarshal(w.Body.Bytes(), &company); err != nil {
		t.Fatal(err)
	}
	if company.ID == "" {
		t.Fatal("company ID empty")
	}

	// 空名称拒绝
	if w := doJSON(t, router, http.MethodPost, "/api/companies", gin.H{"industry": "retail"}); w.Code != http.StatusBadRequest {
		t.Errorf("create without name = %d", w.Code)
	}

	// 查询
	w = doJSON(t, router, http.MethodGet, "/api/companies/"+company.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}

	// 更新行业
	w = doJSON(t, router, http.MethodPatch, "/api/companies/"+company.ID, gin.H{"industry": "retail"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch = %d: %s", w.Code, w.Body.String())
	}

	// 不存在 → 404
	if w := doJSON(t, router, http.MethodGet, "/api/companies/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing company = %d", w.Code)
	}

	// 删除后再删 → 404
	if w := doJSON(t, router, http.MethodDelete, "/api/companies/"+company.ID, nil); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/api/companies/"+company.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", w.Code)
	}
}

func seedPeriod(t *testing.T, s *store.Store, companyID string) *model.Period {
	t.Helper()
	data := model.NewFinancialData()
	data.TotalAssets = 1_000_000
	data.TotalLiabilities = 600_000
	data.TotalEquity = 400_000
	data.CurrentAssets = 500_000
	data.CurrentLiabilities = 250_000
	data.TotalIncome = 300_000
	data.TotalExpenses = 250_000
	data.NetProfit = 50_000
	p := &model.Period{
		ID:        "p1",
		Label:     "2024年3月",
		Type:      model.PeriodMonth,
		Data:      data,
		Metrics:   &model.FinancialMetrics{CurrentRatio: 2, DebtToAssetRatio: 60, ROE: 12.5},
		CreatedAt: time.Now(),
	}
	if err := s.AppendPeriod(companyID, p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAnalysisEndpoints(t *testing.T) {
	router, s := newTestAPI(t)
	company, err := s.CreateCompany("分析公司", "generic")
	if err != nil {
		t.Fatal(err)
	}
	seedPeriod(t, s, company.ID)

	base := "/api/companies/" + company.ID + "/periods/p1"

	w := doJSON(t, router, http.MethodGet, base+"/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics = %d: %s", w.Code, w.Body.String())
	}
	var metricsResp struct {
		Period  string                  `json:"period"`
		Metrics *model.FinancialMetrics `json:"metrics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &metricsResp); err != nil {
		t.Fatal(err)
	}
	if metricsResp.Period != "2024年3月" || metricsResp.Metrics.CurrentRatio != 2 {
		t.Errorf("metrics resp = %+v", metricsResp)
	}

	if w := doJSON(t, router, http.MethodGet, base+"/ledgers", nil); w.Code != http.StatusOK {
		t.Errorf("ledgers = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, base+"/benchmark?industry=manufacturing", nil); w.Code != http.StatusOK {
		t.Errorf("benchmark = %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodGet, base+"/report", nil); w.Code != http.StatusOK {
		t.Errorf("report = %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodGet, base+"/export", nil); w.Code != http.StatusOK {
		t.Errorf("export = %d", w.Code)
	}

	// 单期也能出预测（置信度低但不报错）
	if w := doJSON(t, router, http.MethodGet, "/api/companies/"+company.ID+"/forecast", nil); w.Code != http.StatusOK {
		t.Errorf("forecast = %d: %s", w.Code, w.Body.String())
	}

	// 缺失期间 → 404
	if w := doJSON(t, router, http.MethodGet, "/api/companies/"+company.ID+"/periods/nope/metrics", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing period metrics = %d", w.Code)
	}
}

func TestConfigEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/config", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get config = %d", w.Code)
	}
	var analysis config.AnalysisConfig
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.ForecastHorizon != 3 || analysis.DefaultIndustry != "generic" {
		t.Errorf("defaults = %+v", analysis)
	}

	// 部分更新并回读
	w = doJSON(t, router, http.MethodPatch, "/api/config", gin.H{"forecastHorizon": 5, "defaultIndustry": "manufacturing"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch config = %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.ForecastHorizon != 5 || analysis.DefaultIndustry != "manufacturing" {
		t.Errorf("after patch = %+v", analysis)
	}
	// 未更新字段保持原值
	if analysis.ConcentrationShare != 0.5 {
		t.Errorf("ConcentrationShare = %v, want 0.5", analysis.ConcentrationShare)
	}

	// 非法阈值拒绝
	if w := doJSON(t, router, http.MethodPatch, "/api/config", gin.H{"concentrationShare": 1.5}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid share = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPatch, "/api/config", gin.H{"forecastHorizon": 0}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid horizon = %d", w.Code)
	}
}

func TestForecastWithoutPeriods(t *testing.T) {
	router, s := newTestAPI(t)
	company, err := s.CreateCompany("空公司", "generic")
	if err != nil {
		t.Fatal(err)
	}

	if w := doJSON(t, router, http.MethodGet, "/api/companies/"+company.ID+"/forecast", nil); w.Code != http.StatusBadRequest {
		t.Errorf("forecast without periods = %d", w.Code)
	}
}
