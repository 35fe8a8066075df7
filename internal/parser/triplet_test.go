package parser

import "testing"

func TestDetectDayTriplets_DuplicateColumnNames(t *testing.T) {
	t.Parallel()

	// 真实导出文件里每天的 Time/Labor 列名完全相同，只能按位置区分
	columns := []string{
		"Label",
		"Day 1", "Time (hours)", "Labor (workers)",
		"Day 2", "Time (hours)", "Labor (workers)",
	}

	triplets := DetectDayTriplets(columns)
	if len(triplets) != 2 {
		t.Fatalf("expected 2 triplets, got %d", len(triplets))
	}

	if triplets[0].Day != 1 || triplets[0].Index != 1 {
		t.Fatalf("triplet 0: day=%d index=%d", triplets[0].Day, triplets[0].Index)
	}
	if triplets[1].Day != 2 || triplets[1].Index != 4 {
		t.Fatalf("triplet 1: day=%d index=%d", triplets[1].Day, triplets[1].Index)
	}
	if triplets[0].TimeCol == nil || triplets[1].TimeCol == nil {
		t.Fatalf("expected both time columns captured")
	}
	if triplets[0].LaborCol == nil || triplets[1].LaborCol == nil {
		t.Fatalf("expected both labor columns captured")
	}
}

func TestDetectDayTriplets_PatternMatching(t *testing.T) {
	t.Parallel()

	columns := []string{"Label", " day3 ", "t", "l", "DAY 12", "t2", "l2", "Daytime", "Day x"}
	triplets := DetectDayTriplets(columns)
	if len(triplets) != 2 {
		t.Fatalf("expected 2 triplets, got %d", len(triplets))
	}
	if triplets[0].Day != 3 {
		t.Fatalf("triplet 0 day = %d, want 3", triplets[0].Day)
	}
	if triplets[1].Day != 12 {
		t.Fatalf("triplet 1 day = %d, want 12", triplets[1].Day)
	}
}

func TestDetectDayTriplets_TruncatedTail(t *testing.T) {
	t.Parallel()

	// Day 列在表尾：时间/用工列越界，按 nil 处理
	triplets := DetectDayTriplets([]string{"Label", "Day 1"})
	if len(triplets) != 1 {
		t.Fatalf("expected 1 triplet, got %d", len(triplets))
	}
	if triplets[0].TimeCol != nil || triplets[0].LaborCol != nil {
		t.Fatalf("expected nil time/labor columns for truncated triplet")
	}

	triplets = DetectDayTriplets([]string{"Label", "Day 1", "Time (hours)"})
	if triplets[0].TimeCol == nil || triplets[0].LaborCol != nil {
		t.Fatalf("expected time captured and labor nil")
	}
}

func TestDetectDayTriplets_DuplicateDayNumbers(t *testing.T) {
	t.Parallel()

	columns := []string{"Label", "Day 3", "t", "l", "Day 3", "t", "l"}
	triplets := DetectDayTriplets(columns)
	if len(triplets) != 2 {
		t.Fatalf("duplicate day numbers must both be kept, got %d", len(triplets))
	}
	if triplets[0].Day != 3 || triplets[1].Day != 3 {
		t.Fatalf("unexpected days: %d %d", triplets[0].Day, triplets[1].Day)
	}
}

func TestDetectDayTriplets_NoMatches(t *testing.T) {
	t.Parallel()

	if got := DetectDayTriplets([]string{"Label", "Notes", "Owner"}); len(got) != 0 {
		t.Fatalf("expected no triplets, got %d", len(got))
	}
}

func TestMaxDayFromColumns(t *testing.T) {
	t.Parallel()

	columns := []string{"Label", "Day 1", "t", "l", "Day 7", "t", "l", "Day 3", "t", "l"}
	if got := MaxDayFromColumns(columns); got != 7 {
		t.Fatalf("MaxDayFromColumns = %d, want 7", got)
	}
	// 没有 Day 列时回落到 1
	if got := MaxDayFromColumns([]string{"Label"}); got != 1 {
		t.Fatalf("MaxDayFromColumns (no days) = %d, want 1", got)
	}
}

func TestDayFromFilename(t *testing.T) {
	t.Parallel()

	if got := DayFromFilename("schedule Day 45.csv"); got != 45 {
		t.Fatalf("DayFromFilename = %d, want 45", got)
	}
	if got := DayFromFilename("day12_export.xlsx"); got != 12 {
		t.Fatalf("DayFromFilename = %d, want 12", got)
	}
	if got := DayFromFilename("schedule.csv"); got != -1 {
		t.Fatalf("DayFromFilename = %d, want -1", got)
	}
}
