package parser

import "testing"

func TestClassifyByContent(t *testing.T) {
	tests := []struct {
		name  string
		sheet RawSheet
		want  SheetType
	}{
		{
			name: "资产负债表",
			sheet: RawSheet{Name: "Sheet1", Rows: [][]string{
				{"资产负债表"},
				{"编制单位：某某公司", "", "2024年3月31日"},
				{"资产", "期末余额", "负债和所有者权益", "期末余额"},
			}},
			want: SheetTypeBalance,
		},
		{
			name: "利润表",
			sheet: RawSheet{Name: "表二", Rows: [][]string{
				{"利润表"},
				{"项目", "本期金额", "本年累计"},
			}},
			want: SheetTypeIncome,
		},
		{
			name: "损益表别名",
			sheet: RawSheet{Name: "随便", Rows: [][]string{
				{"损益表"},
			}},
			want: SheetTypeIncome,
		},
		{
			name: "现金流量表",
			sheet: RawSheet{Name: "cf", Rows: [][]string{
				{"现金流量表"},
				{"项目", "本期金额"},
			}},
			want: SheetTypeCashflow,
		},
		{
			name: "科目余额表",
			sheet: RawSheet{Name: "数据", Rows: [][]string{
				{"科目余额表"},
				{"科目编码", "科目名称", "期初借方", "期初贷方", "期末借方", "期末贷方"},
			}},
			want: SheetTypeSubject,
		},
		{
			name: "明细账",
			sheet: RawSheet{Name: "应收账款", Rows: [][]string{
				{"应收账款明细账"},
				{"日期", "凭证号", "摘要", "借方", "贷方", "余额"},
			}},
			want: SheetTypeLedger,
		},
		{
			name: "财务概要",
			sheet: RawSheet{Name: "sheet9", Rows: [][]string{
				{"财务数据概要"},
				{"项目", "本年累计"},
			}},
			want: SheetTypeSummary,
		},
		{
			name: "账龄分析",
			sheet: RawSheet{Name: "aging", Rows: [][]string{
				{"应收账款账龄分析"},
				{"1年以内", "1-2年", "2-3年", "3年以上"},
			}},
			want: SheetTypeAging,
		},
		{
			name: "无法识别",
			sheet: RawSheet{Name: "备注", Rows: [][]string{
				{"本月无重大事项"},
			}},
			want: SheetTypeUnknown,
		},
		{
			name:  "空表",
			sheet: RawSheet{Name: "empty"},
			want:  SheetTypeUnknown,
		},
	}

	c := NewSheetClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(&tt.sheet); got != tt.want {
				t.Fatalf("Classify(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// 同时包含"资产负债"和"科目余额"关键词时，规则表靠前者优先
	sheet := RawSheet{Rows: [][]string{
		{"资产负债表（按科目余额表编制）"},
	}}
	if got := NewSheetClassifier().Classify(&sheet); got != SheetTypeBalance {
		t.Fatalf("got %v, want %v", got, SheetTypeBalance)
	}
}

func TestClassifyIgnoresSheetName(t *testing.T) {
	// Sheet 名声称是利润表，内容却是明细账，应按内容识别
	sheet := RawSheet{Name: "利润表", Rows: [][]string{
		{"银行存款明细账"},
		{"日期", "摘要", "借方", "贷方", "余额"},
	}}
	if got := NewSheetClassifier().Classify(&sheet); got != SheetTypeLedger {
		t.Fatalf("got %v, want %v", got, SheetTypeLedger)
	}
}

func TestClassifyScanLimit(t *testing.T) {
	// 关键词出现在前 10 行之外时不应命中
	rows := make([][]string, 15)
	for i := range rows {
		rows[i] = []string{"..."}
	}
	rows[12] = []string{"资产负债表"}
	sheet := RawSheet{Rows: rows}
	if got := NewSheetClassifier().Classify(&sheet); got != SheetTypeUnknown {
		t.Fatalf("got %v, want %v", got, SheetTypeUnknown)
	}
}
