package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool `json:"initialized"`    // 是否已有数据
	TotalCompanies int  `json:"totalCompanies"` // 公司总数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	companies, err := h.store.ListCompanies()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    len(companies) > 0,
		TotalCompanies: len(companies),
	})
}
