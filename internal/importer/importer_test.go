package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sitegrid.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

var wideHeader = []string{"Section/Subsection", "Day 1", "Time (hours)", "Labor (workers)", "Day 2", "Time (hours)", "Labor (workers)"}

func TestImportTable_SectionAndCell(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		wideHeader,
		{"Outside", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8.0", "4.02", "", "", ""},
	}

	report, err := im.ImportTable(table, "site.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Rows != 1 || report.Cells != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.MaxDay != 2 {
		t.Fatalf("MaxDay = %d, want 2", report.MaxDay)
	}

	rows, err := st.ListRows(report.SheetID)
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Section != "Outside" || rows[0].Subsection != "Foundation" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}

	cell, err := st.GetCell(rows[0].ID, 1)
	if err != nil || cell == nil {
		t.Fatalf("get cell: %v", err)
	}
	if cell.Task == nil || *cell.Task != "Pour" {
		t.Fatalf("task = %v", cell.Task)
	}
	if cell.Hours == nil || *cell.Hours != 8.0 {
		t.Fatalf("hours = %v", cell.Hours)
	}
	if cell.LaborCode == nil || *cell.LaborCode != "4.02" {
		t.Fatalf("labor = %v", cell.LaborCode)
	}
}

func TestImportTable_SparseCellOmission(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		wideHeader,
		{"Outside", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8.0", "4.02", "", "  ", ""},
	}

	report, err := im.ImportTable(table, "sparse.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Cells != 1 {
		t.Fatalf("blank triplet must not produce a cell, got %d cells", report.Cells)
	}

	rows, _ := st.ListRows(report.SheetID)
	if cell, _ := st.GetCell(rows[0].ID, 2); cell != nil {
		t.Fatalf("day 2 cell must not exist")
	}
}

func TestImportTable_HoursCoercionFailureDegrades(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		wideHeader,
		{"Outside", "", "", "", "", "", ""},
		{"Walls", "Brickwork", "eight", "3.01", "", "", ""},
	}

	report, err := im.ImportTable(table, "dirty.csv")
	if err != nil {
		t.Fatalf("dirty hours must not abort the import: %v", err)
	}

	rows, _ := st.ListRows(report.SheetID)
	cell, _ := st.GetCell(rows[0].ID, 1)
	if cell == nil {
		t.Fatalf("cell must still exist")
	}
	if cell.Hours != nil {
		t.Fatalf("unparseable hours must be NULL, got %v", *cell.Hours)
	}
	if cell.Task == nil || *cell.Task != "Brickwork" {
		t.Fatalf("task must survive: %v", cell.Task)
	}
}

func TestImportTable_OrphanRows(t *testing.T) {
	st := newTestStore(t)

	table := [][]string{
		wideHeader,
		{"", "Stray", "2", "1.01", "", "", ""}, // 无标签且无区域上下文
		{"Outside", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8", "4.02", "", "", ""},
	}

	// 宽松模式：跳过并计数
	im := NewImporter(st, Options{})
	report, err := im.ImportTable(table, "orphan.csv")
	if err != nil {
		t.Fatalf("lenient import: %v", err)
	}
	if report.OrphansSkipped != 1 {
		t.Fatalf("OrphansSkipped = %d, want 1", report.OrphansSkipped)
	}
	if report.Rows != 1 {
		t.Fatalf("Rows = %d, want 1", report.Rows)
	}

	// 严格模式：报错且不留半成品
	strict := NewImporter(st, Options{Strict: true})
	_, err = strict.ImportTable(table, "orphan-strict.csv")
	if !errors.Is(err, ErrOrphanRow) {
		t.Fatalf("strict import error = %v, want ErrOrphanRow", err)
	}
	if _, err := st.SheetIDByName("orphan-strict.csv"); err == nil {
		t.Fatalf("failed import must not create a sheet")
	}
}

func TestImportTable_LabeledRowBeforeFirstSection(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	// 有标签的数据行出现在首个区域标题之前：保留，区域为空串。
	// 孤行跳过只针对既无标签又无区域上下文的行。
	table := [][]string{
		wideHeader,
		{"Mobilize", "Setup", "4", "2.01", "", "", ""},
		{"Outside", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8", "4.02", "", "", ""},
	}

	report, err := im.ImportTable(table, "prelude.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", report.Rows)
	}
	if report.OrphansSkipped != 0 {
		t.Fatalf("OrphansSkipped = %d, labeled rows are not orphans", report.OrphansSkipped)
	}

	rows, _ := st.ListRows(report.SheetID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Section != "" || rows[0].Subsection != "Mobilize" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Section != "Outside" || rows[1].Subsection != "Foundation" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestImportTable_EmptyLabelUnderSection(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		wideHeader,
		{"Outside", "", "", "", "", "", ""},
		{"", "Backfill", "3", "2.01", "", "", ""}, // 有区域上下文的无标签行
	}

	report, err := im.ImportTable(table, "nolabel.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	rows, _ := st.ListRows(report.SheetID)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Section != "Outside" || rows[0].Subsection != "" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestImportTable_StructuralErrors(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	_, err := im.ImportTable([][]string{{"OnlyOneColumn"}}, "bad.csv")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("error = %v, want ErrMalformedInput", err)
	}

	_, err = im.ImportTable([][]string{{"Label", "Notes", "Owner"}}, "nodays.csv")
	if !errors.Is(err, parser.ErrNoDayColumns) {
		t.Fatalf("error = %v, want ErrNoDayColumns", err)
	}

	if count, _ := st.SheetCount(); count != 0 {
		t.Fatalf("failed imports must create zero sheets, got %d", count)
	}
}

func TestImportTable_IdempotentReimport(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		wideHeader,
		{"Outside", "", "", "", "", "", ""},
		{"Foundation", "Pour", "8", "4.02", "Cure", "1", "1.01"},
		{"Drainage", "Trench", "6", "2.02", "", "", ""},
	}

	r1, err := im.ImportTable(table, "repeat.csv")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	r2, err := im.ImportTable(table, "repeat.csv")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if r1.SheetID != r2.SheetID {
		t.Fatalf("re-import must reuse the sheet: %d != %d", r1.SheetID, r2.SheetID)
	}
	if r1.Rows != r2.Rows || r1.Cells != r2.Cells {
		t.Fatalf("re-import must yield identical content: %+v vs %+v", r1, r2)
	}

	rows, _ := st.ListRows(r2.SheetID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (replace, not append), got %d", len(rows))
	}
}

func TestImportTable_SectionPolicy(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{Policy: parser.DefaultSectionPolicy()})

	table := [][]string{
		wideHeader,
		{"First Floor", "", "", "", "", "", ""}, // 别名 → 1st Floor
		{"Joists", "Install", "8", "6.01", "", "", ""},
		{"Mezzanine", "", "", "", "", "", ""}, // 白名单外：丢弃，区域上下文不变
		{"Decking", "Lay boards", "4", "3.02", "", "", ""},
	}

	report, err := im.ImportTable(table, "policy.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.HeadersDropped != 1 {
		t.Fatalf("HeadersDropped = %d, want 1", report.HeadersDropped)
	}

	rows, _ := st.ListRows(report.SheetID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Section != "1st Floor" {
			t.Fatalf("row %q section = %q, want 1st Floor", r.Subsection, r.Section)
		}
	}
}

func TestImportTable_DuplicateDayColumnsLastWriteWins(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	table := [][]string{
		{"Label", "Day 3", "Time (hours)", "Labor (workers)", "Day 3", "Time (hours)", "Labor (workers)"},
		{"Outside", "", "", "", "", "", ""},
		{"Footings", "First", "2", "1.01", "Second", "4", "2.02"},
	}

	report, err := im.ImportTable(table, "dup.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	rows, _ := st.ListRows(report.SheetID)
	cells, _ := st.CellsForRow(rows[0].ID)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell for the duplicated day, got %d", len(cells))
	}
	if cells[0].Task == nil || *cells[0].Task != "Second" {
		t.Fatalf("last write must win: %v", cells[0].Task)
	}
	if cells[0].Hours == nil || *cells[0].Hours != 4 {
		t.Fatalf("last write hours = %v", cells[0].Hours)
	}
}
