package labor

import (
	"strconv"
	"strings"
)

// Encode 生成紧凑用工编码 "P.GG"
//
// P 为人数，GG 为两位补零的班组编号，如 Encode(7, 6) = "7.06"。
// 负数一律按 0 处理。
func Encode(people, group int) string {
	if people < 0 {
		people = 0
	}
	if group < 0 {
		group = 0
	}
	return strconv.Itoa(people) + "." + padGroup(group)
}

func padGroup(group int) string {
	s := strconv.Itoa(group)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// People 从用工编码解析人数
//
// 取第一个 "." 之前的整数；编码为空或前缀不是合法整数时返回 0，不报错。
// 班组编号后缀在读取时被丢弃（单向有损）。
func People(code string) int {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0
	}
	prefix, _, _ := strings.Cut(code, ".")
	n, err := strconv.Atoi(prefix)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// PeoplePtr People 的指针入参版本（数据库可空字段直接传入）
func PeoplePtr(code *string) int {
	if code == nil {
		return 0
	}
	return People(*code)
}

// Summary 用工汇总：人数 × 工时 = 人时，人时 × 单价 = 成本
type Summary struct {
	People     int     `json:"people"`
	LaborHours float64 `json:"laborHours"`
	Cost       float64 `json:"cost"`
}

// Summarize 计算单个单元格的用工汇总
//
// hours 或 code 为空按 0 参与计算。
func Summarize(hours *float64, code *string, rate float64) Summary {
	h := 0.0
	if hours != nil {
		h = *hours
	}
	p := PeoplePtr(code)
	lh := float64(p) * h
	return Summary{
		People:     p,
		LaborHours: lh,
		Cost:       lh * rate,
	}
}

// Accumulate 把单元格汇总累加进合计
//
// People 取峰值而不是求和：同一区域不同天的人数不能简单相加。
func Accumulate(total Summary, s Summary) Summary {
	if s.People > total.People {
		total.People = s.People
	}
	total.LaborHours += s.LaborHours
	total.Cost += s.Cost
	return total
}
