package importer

import (
	"strings"

	"finsight/internal/parser"
)

// AccountCategory 科目大类
type AccountCategory int

const (
	CategoryOther     AccountCategory = iota // 共同类/无法归类
	CategoryAsset                            // 资产
	CategoryLiability                        // 负债
	CategoryEquity                           // 所有者权益
	CategoryIncome                           // 损益-收入
	CategoryExpense                          // 损益-成本费用
)

// 损益类编码前缀归属（2007 企业会计准则编码体系）
var (
	incomeCodePrefixes  = []string{"60", "61", "63"}
	expenseCodePrefixes = []string{"64", "66", "67", "68", "69"}
)

// ClassifyAccount 按科目编码首位归类，编码缺失时退回名称关键词
func ClassifyAccount(code, name string) AccountCategory {
	if code != "" {
		switch code[0] {
		case '1':
			return CategoryAsset
		case '2':
			return CategoryLiability
		case '4':
			return CategoryEquity
		case '5':
			// 成本类科目在分析口径下并入费用
			return CategoryExpense
		case '6':
			for _, p := range expenseCodePrefixes {
				if strings.HasPrefix(code, p) {
					return CategoryExpense
				}
			}
			for _, p := range incomeCodePrefixes {
				if strings.HasPrefix(code, p) {
					return CategoryIncome
				}
			}
		}
	}
	return classifyByName(name)
}

// classifyByName 名称关键词兜底
func classifyByName(name string) AccountCategory {
	switch {
	case parser.ContainsAny(name, []string{"收入", "收益"}):
		return CategoryIncome
	case parser.ContainsAny(name, []string{"成本", "费用", "支出", "税金"}):
		return CategoryExpense
	case parser.ContainsAny(name, []string{"实收资本", "资本公积", "盈余公积", "未分配利润", "权益"}):
		return CategoryEquity
	case parser.ContainsAny(name, []string{"借款", "应付", "预收", "应交"}):
		return CategoryLiability
	case parser.ContainsAny(name, []string{"现金", "银行", "应收", "预付", "存货", "库存", "原材料", "资产", "摊销"}):
		return CategoryAsset
	default:
		return CategoryOther
	}
}

// 流动资产编码前缀：货币资金、应收类、存货类
var currentAssetPrefixes = []string{
	"100", "101", "11", "12", "13", "14",
}

// IsCurrentAsset 判断流动资产
func IsCurrentAsset(code, name string) bool {
	if code != "" {
		for _, p := range currentAssetPrefixes {
			if strings.HasPrefix(code, p) {
				return true
			}
		}
		return false
	}
	return parser.ContainsAny(name, []string{
		"现金", "银行存款", "其他货币", "应收", "预付", "存货", "库存", "原材料", "周转材料",
	})
}

// IsCurrentLiability 判断流动负债
func IsCurrentLiability(code, name string) bool {
	if code != "" {
		// 非流动负债：长期借款 2501、应付债券 2502、长期应付款 2701
		for _, p := range []string{"25", "26", "27", "28", "29"} {
			if strings.HasPrefix(code, p) {
				return false
			}
		}
		return true
	}
	if strings.Contains(name, "长期") || strings.Contains(name, "债券") {
		return false
	}
	return parser.ContainsAny(name, []string{"借款", "应付", "预收", "应交"})
}

// IsMonetaryFund 判断货币资金
func IsMonetaryFund(code, name string) bool {
	if code != "" {
		for _, p := range []string{"1001", "1002", "1012"} {
			if strings.HasPrefix(code, p) {
				return true
			}
		}
		return false
	}
	return parser.ContainsAny(name, []string{"库存现金", "现金", "银行存款", "其他货币"})
}

// IsReceivable 判断应收账款
func IsReceivable(code, name string) bool {
	if code != "" {
		return strings.HasPrefix(code, "1122")
	}
	return strings.Contains(name, "应收账款")
}

// IsInventory 判断存货类
func IsInventory(code, name string) bool {
	if code != "" {
		return strings.HasPrefix(code, "14")
	}
	return parser.ContainsAny(name, []string{"存货", "库存商品", "原材料", "在产品", "周转材料"})
}
