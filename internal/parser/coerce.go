package parser

import (
	"strconv"
	"strings"
)

// CleanCell 清洗单元格文本：去首尾空白，空白即 nil
func CleanCell(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ParseHours 把单元格文本解析为工时
//
// 解析失败一律返回 nil，绝不报错：脏数据只丢该格，不中断整次导入。
// 容忍千分位逗号（"1,200.5"）：所有逗号一律剥掉再解析，因此欧式
// 小数写法 "8,5" 会被读成 85 而不是拒绝——来源表格固定用点号小数，
// 逗号只作分组符。
func ParseHours(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// FormatHours 工时转回单元格文本
//
// 与导入侧互逆：nil 渲染为空串而不是 "0"；8.0 渲染为 "8"。
func FormatHours(hours *float64) string {
	if hours == nil {
		return ""
	}
	return strconv.FormatFloat(*hours, 'f', -1, 64)
}
