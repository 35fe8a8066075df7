package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoDayColumns 表头中找不到任何 "Day N" 列
var ErrNoDayColumns = errors.New("no day columns found in header")

var dayColPattern = regexp.MustCompile(`(?i)^Day\s*(\d+)$`)

// DayTriplet 宽表中编码一天数据的三列组合
//
// TimeCol/LaborCol 按位置取 Day 列右侧第 1、2 列，越界时为 nil。
// 列名不参与匹配：真实表头里 "Time (hours)" 会重复出现，只能按位置区分。
type DayTriplet struct {
	DayCol   string  // Day 列的原始列名
	TimeCol  *string // 工时列名（可能缺失）
	LaborCol *string // 用工列名（可能缺失）
	Day      int     // 天数（列名中的数字）
	Index    int     // Day 列在表头中的下标
}

// DetectDayTriplets 从表头扫描出所有 Day 三列组
//
// 列名先去首尾空白，再按大小写不敏感的 "Day <数字>" 匹配。
// 同一天数出现多次时各自保留一组，下游写入同一 (row, day) 时后写覆盖。
func DetectDayTriplets(columns []string) []DayTriplet {
	var triplets []DayTriplet
	for i, c := range columns {
		m := dayColPattern.FindStringSubmatch(strings.TrimSpace(c))
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		t := DayTriplet{DayCol: c, Day: day, Index: i}
		if i+1 < len(columns) {
			t.TimeCol = &columns[i+1]
		}
		if i+2 < len(columns) {
			t.LaborCol = &columns[i+2]
		}
		triplets = append(triplets, t)
	}
	return triplets
}

// MaxDayFromColumns 表头中出现的最大天数
//
// 没有任何 Day 列时返回 1（与导出的最小窗口保持一致）。
func MaxDayFromColumns(columns []string) int {
	max := 0
	for _, c := range columns {
		m := dayColPattern.FindStringSubmatch(strings.TrimSpace(c))
		if m == nil {
			continue
		}
		if d, err := strconv.Atoi(m[1]); err == nil && d > max {
			max = d
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// DayFromFilename 从文件名里提取 "day N" 数字，找不到返回 -1
//
// 用于种子文件排序：文件名天数越大版本越新。
func DayFromFilename(name string) int {
	m := dayNamePattern.FindStringSubmatch(name)
	if m == nil {
		return -1
	}
	d, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return d
}

var dayNamePattern = regexp.MustCompile(`(?i)day\s*(\d+)`)
