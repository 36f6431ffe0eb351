package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"finsight/internal/model"
)

// Exporter 分析结果导出器
// 输出一个三页工作簿：指标汇总、资产负债结构、分析报告
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

const (
	sheetMetrics = "指标汇总"
	sheetBalance = "资产负债"
	sheetReport  = "分析报告"
)

// Export 把期间数据与报告写入新工作簿
func (e *Exporter) Export(period *model.Period, report *model.SmartReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.fillMetricsSheet(f, period); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillBalanceSheet(f, period); err != nil {
		_ = f.Close()
		return nil, err
	}
	if report != nil {
		if err := e.fillReportSheet(f, report); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	// 删除默认 Sheet1，以指标页为首页
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetMetrics); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// metricRow 指标页单行
type metricRow struct {
	group string
	name  string
	value float64
	unit  string
}

func (e *Exporter) fillMetricsSheet(f *excelize.File, period *model.Period) error {
	if _, err := f.NewSheet(sheetMetrics); err != nil {
		return fmt.Errorf("创建指标页失败: %w", err)
	}

	headers := []interface{}{"分类", "指标", "数值", "单位"}
	if err := f.SetSheetRow(sheetMetrics, "A1", &headers); err != nil {
		return err
	}

	m := period.Metrics
	if m == nil {
		return nil
	}

	rows := []metricRow{
		{"偿债能力", "流动比率", m.CurrentRatio, "倍"},
		{"偿债能力", "速动比率", m.QuickRatio, "倍"},
		{"偿债能力", "现金比率", m.CashRatio, "%"},
		{"偿债能力", "资产负债率", m.DebtToAssetRatio, "%"},
		{"偿债能力", "产权比率", m.DebtToEquityRatio, "%"},
		{"盈利能力", "毛利率", m.GrossProfitMargin, "%"},
		{"盈利能力", "净利率", m.NetProfitMargin, "%"},
		{"盈利能力", "净资产收益率", m.ROE, "%"},
		{"盈利能力", "总资产报酬率", m.ROA, "%"},
		{"营运能力", "总资产周转率", m.TotalAssetTurnover, "次"},
		{"营运能力", "应收账款周转率", m.ReceivablesTurnover, "次"},
		{"营运能力", "存货周转率", m.InventoryTurnover, "次"},
		{"成长能力", "营收增长率", m.RevenueGrowthRate, "%"},
		{"成长能力", "净利润增长率", m.ProfitGrowthRate, "%"},
		{"成长能力", "总资产增长率", m.AssetGrowthRate, "%"},
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.group, row.name, row.value, row.unit}
		if err := f.SetSheetRow(sheetMetrics, cell, &values); err != nil {
			return err
		}
	}

	if period.Dupont != nil {
		base := len(rows) + 3
		_ = f.SetCellValue(sheetMetrics, fmt.Sprintf("A%d", base), "杜邦分解")
		dupontRows := [][]interface{}{
			{"净利率", period.Dupont.NetProfitMargin, "%"},
			{"总资产周转率", period.Dupont.TotalAssetTurnover, "次"},
			{"权益乘数", period.Dupont.EquityMultiplier, "倍"},
			{"ROE", period.Dupont.ROE, "%"},
		}
		for i, values := range dupontRows {
			row := append([]interface{}{""}, values...)
			if err := f.SetSheetRow(sheetMetrics, fmt.Sprintf("A%d", base+1+i), &row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) fillBalanceSheet(f *excelize.File, period *model.Period) error {
	if _, err := f.NewSheet(sheetBalance); err != nil {
		return fmt.Errorf("创建资产负债页失败: %w", err)
	}

	data := period.Data
	if data == nil {
		return nil
	}

	headers := []interface{}{"科目", "金额"}
	if err := f.SetSheetRow(sheetBalance, "A1", &headers); err != nil {
		return err
	}

	row := 2
	writeRow := func(name string, value float64) error {
		values := []interface{}{name, value}
		if err := f.SetSheetRow(sheetBalance, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
		return nil
	}

	for _, name := range data.AssetNames {
		if err := writeRow(name, data.Assets[name]); err != nil {
			return err
		}
	}
	if err := writeRow("资产总计", data.TotalAssets); err != nil {
		return err
	}
	row++
	for _, name := range data.LiabilityNames {
		if err := writeRow(name, data.Liabilities[name]); err != nil {
			return err
		}
	}
	if err := writeRow("负债总计", data.TotalLiabilities); err != nil {
		return err
	}
	if err := writeRow("所有者权益", data.TotalEquity); err != nil {
		return err
	}
	return nil
}

func (e *Exporter) fillReportSheet(f *excelize.File, report *model.SmartReport) error {
	if _, err := f.NewSheet(sheetReport); err != nil {
		return fmt.Errorf("创建报告页失败: %w", err)
	}

	row := 1
	write := func(values ...interface{}) error {
		if err := f.SetSheetRow(sheetReport, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := write("综合评分", report.Summary.Score); err != nil {
		return err
	}
	if err := write("健康评级", report.Summary.HealthLevel); err != nil {
		return err
	}
	if err := write("风险水平", report.Risk.OverallLevel); err != nil {
		return err
	}
	row++

	if err := write("关键发现"); err != nil {
		return err
	}
	for _, finding := range report.Findings {
		if err := write(finding.Area, finding.Description, finding.Impact); err != nil {
			return err
		}
	}
	row++

	if err := write("改进建议"); err != nil {
		return err
	}
	for _, rec := range report.Recommendations {
		if err := write(string(rec.Priority), rec.Title, rec.Description); err != nil {
			return err
		}
	}
	return nil
}
