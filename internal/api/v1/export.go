package v1

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"finsight/internal/exporter"
)

// ExportPeriod 导出期间分析结果为 Excel
// GET /api/companies/:id/periods/:pid/export
func (h *Handler) ExportPeriod(c *gin.Context) {
	period, err := h.store.GetPeriod(c.Param("pid"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	f, err := exporter.NewExporter().Export(period, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_分析结果.xlsx", period.Label)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("导出工作簿写入失败")
	}
}
