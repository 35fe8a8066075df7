package parser

import "strings"

// SectionPolicy 区域标签的收敛策略
//
// Canonical 非空时只接受白名单内的区域名，Aliases 把变体写法归一
// （如 "First Floor" → "1st Floor"）。空策略接受任何非空标签。
// 这是一项可配置的口径选择，不是格式本身的要求。
type SectionPolicy struct {
	Canonical []string
	Aliases   map[string]string
}

// DefaultSectionPolicy 工地排期表常见的四大区域
func DefaultSectionPolicy() SectionPolicy {
	return SectionPolicy{
		Canonical: []string{"Outside", "Ground Floor", "1st Floor", "Roof"},
		Aliases: map[string]string{
			"First Floor": "1st Floor",
		},
	}
}

// Normalize 归一化区域标签
//
// 返回 (归一后的标签, 是否接受)。空策略下任何非空标签原样接受；
// 白名单模式下不认识的标签被拒绝，调用方应维持原有区域上下文不变。
func (p SectionPolicy) Normalize(label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	if alias, ok := p.lookupAlias(label); ok {
		label = alias
	}
	if len(p.Canonical) == 0 {
		return label, true
	}
	for _, c := range p.Canonical {
		if strings.EqualFold(label, c) {
			return c, true
		}
	}
	return "", false
}

func (p SectionPolicy) lookupAlias(label string) (string, bool) {
	for from, to := range p.Aliases {
		if strings.EqualFold(label, from) {
			return to, true
		}
	}
	return "", false
}
