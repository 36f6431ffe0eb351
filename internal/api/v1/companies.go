package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/store"
)

// CreateCompanyRequest 新建公司请求
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Industry string `json:"industry"`
}

// CreateCompany 新建公司
// POST /api/companies
func (h *Handler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "公司名称不能为空"})
		return
	}

	company, err := h.store.CreateCompany(req.Name, req.Industry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompanies 列出全部公司
// GET /api/companies
func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.store.ListCompanies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}

// GetCompany 查询公司及其全部期间
// GET /api/companies/:id
func (h *Handler) GetCompany(c *gin.Context) {
	company, err := h.store.GetCompany(c.Param("id"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	periods, err := h.store.ListPeriods(company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	company.Periods = periods
	c.JSON(http.StatusOK, company)
}

// UpdateCompanyRequest 更新公司请求
type UpdateCompanyRequest struct {
	Industry string `json:"industry" binding:"required"`
}

// UpdateCompany 更新公司行业键
// PATCH /api/companies/:id
func (h *Handler) UpdateCompany(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "行业键不能为空"})
		return
	}

	if err := h.store.UpdateCompanyIndustry(c.Param("id"), req.Industry); err != nil {
		h.notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteCompany 删除公司及其全部期间
// DELETE /api/companies/:id
func (h *Handler) DeleteCompany(c *gin.Context) {
	if err := h.store.DeleteCompany(c.Param("id")); err != nil {
		h.notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListPeriods 列出公司全部期间
// GET /api/companies/:id/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	periods, err := h.store.ListPeriods(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods, "total": len(periods)})
}

// GetPeriod 查询单个期间完整快照
// GET /api/companies/:id/periods/:pid
func (h *Handler) GetPeriod(c *gin.Context) {
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, period)
}

// RemovePeriod 删除期间
// DELETE /api/companies/:id/periods/:pid
func (h *Handler) RemovePeriod(c *gin.Context) {
	if err := h.store.RemovePeriod(c.Param("pid")); err != nil {
		h.notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
