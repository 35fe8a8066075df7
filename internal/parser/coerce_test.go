package parser

import "testing"

func TestParseHours(t *testing.T) {
	t.Parallel()

	if got := ParseHours("8.0"); got == nil || *got != 8 {
		t.Fatalf("ParseHours(8.0) = %v", got)
	}
	if got := ParseHours(" 7.5 "); got == nil || *got != 7.5 {
		t.Fatalf("ParseHours( 7.5 ) = %v", got)
	}
	if got := ParseHours("1,200.5"); got == nil || *got != 1200.5 {
		t.Fatalf("ParseHours(1,200.5) = %v", got)
	}
	// 逗号一律当分组符剥掉：欧式小数 "8,5" 读成 85（见 godoc）
	if got := ParseHours("8,5"); got == nil || *got != 85 {
		t.Fatalf("ParseHours(8,5) = %v, want 85", got)
	}
}

func TestParseHours_GarbageIsNil(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "n/a", "eight", "8h"} {
		if got := ParseHours(s); got != nil {
			t.Fatalf("ParseHours(%q) = %v, want nil", s, *got)
		}
	}
}

func TestCleanCell(t *testing.T) {
	t.Parallel()

	if got := CleanCell("  Pour  "); got == nil || *got != "Pour" {
		t.Fatalf("CleanCell = %v", got)
	}
	if got := CleanCell("   "); got != nil {
		t.Fatalf("CleanCell(blank) = %q, want nil", *got)
	}
}

func TestFormatHours(t *testing.T) {
	t.Parallel()

	if got := FormatHours(nil); got != "" {
		t.Fatalf("FormatHours(nil) = %q, want empty", got)
	}
	h := 8.0
	if got := FormatHours(&h); got != "8" {
		t.Fatalf("FormatHours(8.0) = %q, want 8", got)
	}
	h = 7.5
	if got := FormatHours(&h); got != "7.5" {
		t.Fatalf("FormatHours(7.5) = %q, want 7.5", got)
	}
}
