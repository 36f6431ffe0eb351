package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"finsight/internal/importer"
	"finsight/internal/metrics"
	"finsight/internal/parser"
)

func main() {
	root := &cobra.Command{
		Use:   "sheetcheck",
		Short: "财务工作簿离线检查工具",
		Long:  "不启动服务的情况下检查 Excel 工作簿：识别各 Sheet 类型，或直接跑完整的聚合与指标计算。",
	}
	root.AddCommand(newClassifyCmd(), newAnalyzeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClassifyCmd 逐 Sheet 打印识别出的类型与行数
func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <workbook.xlsx>",
		Short: "识别工作簿内各 Sheet 的报表类型",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := readWorkbook(args[0])
			if err != nil {
				return err
			}

			classifier := parser.NewSheetClassifier()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-30s %-12s %s\n", "Sheet", "类型", "行数")
			for _, sheet := range sheets {
				fmt.Fprintf(w, "%-30s %-12s %d\n", sheet.Name, classifier.Classify(&sheet), len(sheet.Rows))
			}
			return nil
		},
	}
}

// newAnalyzeCmd 聚合工作簿并打印核心指标
func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <workbook.xlsx>",
		Short: "聚合工作簿并计算核心财务指标",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := readWorkbook(args[0])
			if err != nil {
				return err
			}

			aggregator := importer.NewAggregator()
			data, results := aggregator.Aggregate(sheets)
			for _, r := range results {
				if r.Status == "error" {
					fmt.Fprintf(cmd.ErrOrStderr(), "跳过 %s: %v\n", r.SheetName, r.Errors)
				}
			}
			m := metrics.NewEngine().Calculate(data)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "资产总计:     %.2f\n", data.TotalAssets)
			fmt.Fprintf(w, "负债总计:     %.2f\n", data.TotalLiabilities)
			fmt.Fprintf(w, "所有者权益:   %.2f\n", data.TotalEquity)
			fmt.Fprintf(w, "净利润:       %.2f\n", data.NetProfit)
			fmt.Fprintf(w, "流动比率:     %.2f\n", m.CurrentRatio)
			fmt.Fprintf(w, "资产负债率:   %.2f%%\n", m.DebtToAssetRatio)
			fmt.Fprintf(w, "净利率:       %.2f%%\n", m.NetProfitMargin)
			fmt.Fprintf(w, "净资产收益率: %.2f%%\n", m.ROE)
			for _, check := range data.IdentityChecks {
				status := "通过"
				if !check.Passed {
					status = fmt.Sprintf("不平衡 (差额 %.2f)", check.Delta)
				}
				fmt.Fprintf(w, "校验 %s: %s\n", check.Name, status)
			}
			return nil
		},
	}
}

// readWorkbook 读取全部 Sheet 为原始行
func readWorkbook(path string) ([]parser.RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开工作簿: %w", err)
	}
	defer f.Close()

	var sheets []parser.RawSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("读取 Sheet %s 失败: %w", name, err)
		}
		sheets = append(sheets, parser.RawSheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
