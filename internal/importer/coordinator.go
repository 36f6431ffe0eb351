package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"finsight/internal/metrics"
	"finsight/internal/model"
	"finsight/internal/parser"
)

var (
	// ErrPeriodUnknown 未指定期间且无法从文件名推断
	ErrPeriodUnknown = errors.New("无法确定数据期间：请在文件名包含期间（如 2024年3月）或手动指定")
	// ErrParse 工作簿无法解码
	ErrParse = errors.New("工作簿解码失败")
)

// PeriodRepository 期间持久化接口
// 核心只追加/读取期间记录，不触碰存储介质
type PeriodRepository interface {
	AppendPeriod(companyID string, p *model.Period) error
	ListPeriods(companyID string) ([]model.Period, error)
}

// Coordinator 导入协调器
// 批量文件严格串行处理：前一个文件完整落库后才开始下一个
type Coordinator struct {
	repo       PeriodRepository
	aggregator *Aggregator
	engine     *metrics.Engine
	log        zerolog.Logger
}

// NewCoordinator 创建导入协调器
func NewCoordinator(repo PeriodRepository, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		repo:       repo,
		aggregator: NewAggregator(),
		engine:     metrics.NewEngine(),
		log:        log,
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath    string
	CompanyID   string
	PeriodLabel string           // 手动指定期间；为空时从文件名推断
	PeriodType  model.PeriodType // 与 PeriodLabel 配套
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"` // start/sheet_done/file_done/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// FileFailure 单文件失败记录
type FileFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// BatchReport 批量导入报告
type BatchReport struct {
	TotalFiles int                   `json:"totalFiles"`
	Succeeded  int                   `json:"succeeded"`
	Failed     int                   `json:"failed"`
	Reports    []parser.ImportReport `json:"reports"`
	Failures   []FileFailure         `json:"failures,omitempty"`
}

// Import 异步导入单文件，返回进度通道
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		report, _, err := c.doImport(opts, progressChan)
		if err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "error",
				Message:   err.Error(),
				Timestamp: time.Now(),
			})
			return
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "done",
			Message:   "导入完成",
			Data:      report,
			Timestamp: time.Now(),
		})
	}()

	return progressChan
}

// ImportFile 同步导入单文件
func (c *Coordinator) ImportFile(opts ImportOptions) (*parser.ImportReport, *model.Period, error) {
	return c.doImport(opts, nil)
}

// ImportBatch 严格串行导入多个文件
// 单文件失败只计入失败数，不中断批次
func (c *Coordinator) ImportBatch(companyID string, files []string, progressChan chan ProgressEvent) *BatchReport {
	batch := &BatchReport{TotalFiles: len(files)}

	for _, file := range files {
		report, _, err := c.doImport(ImportOptions{
			FilePath:  file,
			CompanyID: companyID,
		}, progressChan)
		if err != nil {
			batch.Failed++
			batch.Failures = append(batch.Failures, FileFailure{
				File:   filepath.Base(file),
				Reason: err.Error(),
			})
			c.log.Warn().Str("file", filepath.Base(file)).Err(err).Msg("文件导入失败")
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("文件 %s 导入失败: %v", filepath.Base(file), err),
				Timestamp: time.Now(),
			})
			continue
		}
		batch.Succeeded++
		batch.Reports = append(batch.Reports, *report)
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("批量导入完成: 成功 %d, 失败 %d", batch.Succeeded, batch.Failed),
		Data:      batch,
		Timestamp: time.Now(),
	})
	return batch
}

// doImport 单文件导入主流程
func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) (*parser.ImportReport, *model.Period, error) {
	start := time.Now()
	filename := filepath.Base(opts.FilePath)

	// 期间校验先于任何解析工作
	label, ptype := opts.PeriodLabel, opts.PeriodType
	if label == "" {
		var ok bool
		label, ptype, ok = parser.ExtractPeriod(filename)
		if !ok {
			return nil, nil, ErrPeriodUnknown
		}
	}
	if ptype == "" {
		ptype = model.PeriodMonth
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始导入 %s（期间 %s）", filename, label),
		Timestamp: time.Now(),
	})

	// 打开工作簿：唯一的 I/O 层硬错误
	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer file.Close()

	report := &parser.ImportReport{
		Filename: filename,
		Period:   label,
	}

	// 逐 Sheet 识别并归集
	data := model.NewFinancialData()
	for _, sheetName := range file.GetSheetList() {
		rows, err := file.GetRows(sheetName)
		if err != nil {
			c.recordResult(report, parser.ParseResult{
				SheetName: sheetName,
				SheetType: parser.SheetTypeUnknown,
				Status:    "error",
				Errors:    []string{fmt.Sprintf("读取 Sheet 失败: %v", err)},
			})
			continue
		}

		sheet := parser.RawSheet{Name: sheetName, Rows: rows}
		result := c.aggregator.AggregateSheet(data, &sheet)
		c.recordResult(report, result)

		c.log.Debug().
			Str("sheet", sheetName).
			Str("type", string(result.SheetType)).
			Int("rows", result.ImportedRows).
			Msg("Sheet 处理完成")

		c.sendProgress(progressChan, ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("Sheet \"%s\" 识别为 %s: %d 行", sheetName, result.SheetType, result.ImportedRows),
			Data: map[string]interface{}{
				"sheetName": sheetName,
				"sheetType": result.SheetType,
				"rows":      result.ImportedRows,
			},
			Timestamp: time.Now(),
		})
	}
	c.aggregator.Finalize(data)

	// 上期快照用于成长指标
	prev := c.previousSnapshot(opts.CompanyID, label)
	m := c.engine.CalculateWithPrevious(data, prev)

	period := &model.Period{
		ID:         uuid.NewString(),
		Label:      label,
		Type:       ptype,
		Data:       data,
		Metrics:    m,
		Dupont:     metrics.Dupont(m),
		SourceFile: filename,
		CreatedAt:  time.Now(),
	}

	if c.repo != nil && opts.CompanyID != "" {
		if err := c.repo.AppendPeriod(opts.CompanyID, period); err != nil {
			return nil, nil, fmt.Errorf("期间落库失败: %w", err)
		}
	}

	report.Duration = time.Since(start)
	c.log.Info().
		Str("file", filename).
		Str("period", label).
		Int("sheets", report.TotalSheets).
		Int("unknown", report.UnknownSheets).
		Dur("elapsed", report.Duration).
		Msg("文件导入完成")

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "file_done",
		Message:   fmt.Sprintf("文件 %s 导入完成", filename),
		Data:      report,
		Timestamp: time.Now(),
	})

	return report, period, nil
}

// previousSnapshot 查找公司最近一期快照（标签不同于当前期间）
func (c *Coordinator) previousSnapshot(companyID, currentLabel string) *model.FinancialData {
	if c.repo == nil || companyID == "" {
		return nil
	}
	periods, err := c.repo.ListPeriods(companyID)
	if err != nil || len(periods) == 0 {
		return nil
	}
	for i := len(periods) - 1; i >= 0; i-- {
		if periods[i].Label != currentLabel && periods[i].Data != nil {
			return periods[i].Data
		}
	}
	return nil
}

// recordResult 记录 Sheet 处理结果
func (c *Coordinator) recordResult(report *parser.ImportReport, result parser.ParseResult) {
	report.Sheets = append(report.Sheets, result)
	report.TotalSheets++

	switch result.Status {
	case "imported":
		report.ImportedSheets++
		report.ImportedRows += result.ImportedRows
	case "skipped":
		report.SkippedSheets++
	}
	if result.SheetType == parser.SheetTypeUnknown {
		report.UnknownSheets++
	}
}

// sendProgress 发送进度事件（通道满时丢弃）
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	default:
	}
}
