package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestImportFile_CSVWithBOM(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	content := "\xEF\xBB\xBFSection/Subsection,Day 1,Time (hours),Labor (workers)\n" +
		"Outside,,,\n" +
		"Foundation,Pour,8.0,4.02\n"

	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := im.ImportFile(path, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.SheetName != "bom.csv" {
		t.Fatalf("sheet name = %q, want file base name", report.SheetName)
	}
	if report.Rows != 1 || report.Cells != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestImportFile_ShortRows(t *testing.T) {
	st := newTestStore(t)
	im := NewImporter(st, Options{})

	// 行尾缺列：真实导出文件常见，按空白处理
	content := "Section/Subsection,Day 1,Time (hours),Labor (workers)\n" +
		"Outside\n" +
		"Foundation,Pour\n"

	path := filepath.Join(t.TempDir(), "short.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := im.ImportFile(path, "short.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	rows, _ := st.ListRows(report.SheetID)
	if len(rows) != 1 || rows[0].Section != "Outside" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	cell, _ := st.GetCell(rows[0].ID, 1)
	if cell == nil || cell.Task == nil || *cell.Task != "Pour" {
		t.Fatalf("unexpected cell: %+v", cell)
	}
	if cell.Hours != nil || cell.LaborCode != nil {
		t.Fatalf("missing columns must stay NULL: %+v", cell)
	}
}

func TestFindLatestTable(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, mtime time.Time) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}

	now := time.Now()
	write("schedule day 3.csv", now.Add(-time.Hour))
	write("schedule day 12.csv", now.Add(-2*time.Hour)) // 文件名天数优先于修改时间
	write("notes.txt", now)

	got := FindLatestTable(dir)
	if filepath.Base(got) != "schedule day 12.csv" {
		t.Fatalf("FindLatestTable = %q, want day 12 file", got)
	}

	// 没有天数时按修改时间
	dir2 := t.TempDir()
	writeIn := func(d, name string, mtime time.Time) {
		path := filepath.Join(d, name)
		_ = os.WriteFile(path, []byte("x"), 0644)
		_ = os.Chtimes(path, mtime, mtime)
	}
	writeIn(dir2, "old.csv", now.Add(-time.Hour))
	writeIn(dir2, "new.csv", now)
	if got := FindLatestTable(dir2); filepath.Base(got) != "new.csv" {
		t.Fatalf("FindLatestTable = %q, want new.csv", got)
	}

	if got := FindLatestTable(filepath.Join(dir, "missing")); got != "" {
		t.Fatalf("missing dir must yield empty path, got %q", got)
	}
}
