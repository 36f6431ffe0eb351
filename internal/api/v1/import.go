package v1

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/importer"
	"finsight/internal/model"
	"finsight/internal/parser"
)

// Import 导入单个 Excel 工作簿（SSE 流式响应）
// POST /api/companies/:id/import
func (h *Handler) Import(c *gin.Context) {
	companyID := c.Param("id")
	if _, err := h.store.GetCompany(companyID); err != nil {
		h.notFoundOr500(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]
	tempFilePath, err := h.saveUpload(c, uploadedFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	logID, _ := h.store.CreateImportLog(companyID, uploadedFile.Filename, uploadedFile.Size)

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progressChan := h.coordinator.Import(importer.ImportOptions{
		FilePath:    tempFilePath,
		CompanyID:   companyID,
		PeriodLabel: c.PostForm("periodLabel"),
		PeriodType:  model.PeriodType(c.PostForm("periodType")),
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	status := "failed"
	errorMessage := ""
	var total, parsed, skipped int
	for event := range progressChan {
		switch event.Type {
		case "done":
			status = "completed"
			if r, ok := event.Data.(*parser.ImportReport); ok {
				total, parsed, skipped = r.TotalSheets, r.ImportedSheets, r.SkippedSheets
			}
		case "error":
			errorMessage = event.Message
		}
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}

	if logID > 0 {
		_ = h.store.FinishImportLog(logID, total, parsed, skipped, status, errorMessage)
	}
}

// ImportBatch 批量导入多个工作簿，严格按上传顺序串行处理
// POST /api/companies/:id/import/batch
func (h *Handler) ImportBatch(c *gin.Context) {
	companyID := c.Param("id")
	if _, err := h.store.GetCompany(companyID); err != nil {
		h.notFoundOr500(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	var paths []string
	for _, f := range files {
		p, err := h.saveUpload(c, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
			return
		}
		defer os.Remove(p)
		paths = append(paths, p)
	}

	report := h.coordinator.ImportBatch(companyID, paths, nil)
	c.JSON(http.StatusOK, report)
}

// saveUpload 把上传文件落盘到独立临时目录
// 保留原始文件名，导入时据此推断期间
func (h *Handler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	tempDir := filepath.Join(os.TempDir(), fmt.Sprintf("finsight_import_%d", time.Now().UnixNano()))
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(tempDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}
