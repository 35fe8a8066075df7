package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"testing"

	"sitegrid/internal/importer"
	"sitegrid/internal/store"
)

// cellTuple 往返比较用的展平单元格
type cellTuple struct {
	Section    string
	Subsection string
	Day        int
	Task       string
	Hours      string
	Labor      string
}

func collectTuples(t *testing.T, st *store.Store, sheetID int64) []cellTuple {
	t.Helper()

	rows, err := st.ListRows(sheetID)
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}

	var tuples []cellTuple
	for _, r := range rows {
		cells, err := st.CellsForRow(r.ID)
		if err != nil {
			t.Fatalf("cells: %v", err)
		}
		for _, c := range cells {
			tuple := cellTuple{Section: r.Section, Subsection: r.Subsection, Day: c.Day}
			if c.Task != nil {
				tuple.Task = *c.Task
			}
			if c.Hours != nil {
				tuple.Hours = fmt.Sprintf("%g", *c.Hours)
			}
			if c.LaborCode != nil {
				tuple.Labor = *c.LaborCode
			}
			tuples = append(tuples, tuple)
		}
	}

	sort.Slice(tuples, func(i, j int) bool {
		a, b := tuples[i], tuples[j]
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		if a.Subsection != b.Subsection {
			return a.Subsection < b.Subsection
		}
		return a.Day < b.Day
	})
	return tuples
}

func TestRoundTrip_ImportExportImport(t *testing.T) {
	st := newTestStore(t)
	im := importer.NewImporter(st, importer.Options{})

	original := [][]string{
		{"Section/Subsection", "Day 1", "Time (hours)", "Labor (workers)", "Day 2", "Time (hours)", "Labor (workers)", "Day 3", "Time (hours)", "Labor (workers)"},
		{"Mobilize", "Setup", "4", "2.01", "", "", "", "", "", ""}, // 首个区域标题之前：区域为空串
		{"Outside", "", "", "", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8", "4.02", "Cure", "", "", "", "", ""},
		{"Drainage", "", "", "", "Trench", "6.5", "2.02", "Backfill", "3", "2.01"},
		{"Roof", "", "", "", "", "", "", "", "", ""},
		{"Tiles", "", "", "", "", "", "", "Lay tiles", "8", "6.04"},
	}

	r1, err := im.ImportTable(original, "roundtrip.csv")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	before := collectTuples(t, st, r1.SheetID)

	// 默认参数导出，序列化成 CSV 再读回
	table, err := NewExporter(st).BuildTable(Options{SheetID: r1.SheetID})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	reread, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}

	r2, err := im.ImportTable(reread, "roundtrip-2.csv")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	after := collectTuples(t, st, r2.SheetID)

	if len(before) != len(after) {
		t.Fatalf("tuple count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("tuple %d changed:\n before: %+v\n after:  %+v", i, before[i], after[i])
		}
	}
}
