package exporter

import (
	"fmt"
	"strconv"

	"sitegrid/internal/model"
	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

// HeaderStyle 导出表头的命名风格
type HeaderStyle string

const (
	// HeaderRepeat 每天重复相同列名（与导入侧按位置识别的约定互补，默认）
	HeaderRepeat HeaderStyle = "repeat"
	// HeaderNumbered 带天数后缀（"Time 3" / "Labor 3"），人读窗口导出用
	HeaderNumbered HeaderStyle = "numbered"
)

// SectionOrder 导出时区域的排列顺序
type SectionOrder string

const (
	// SectionByName 按区域名称排序（原始行为，兼容默认）
	SectionByName SectionOrder = "name"
	// SectionByImport 按导入时首次出现的顺序
	SectionByImport SectionOrder = "import"
)

// Exporter 宽表导出器：把规范化的行和单元格重建成平铺表格
//
// 纯读操作，不产生任何写入。默认参数下的输出可以被导入器
// 零损耗地重新摄入（往返属性）。
type Exporter struct {
	store *store.Store
}

// NewExporter 创建导出器
func NewExporter(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

// Options 导出选项
type Options struct {
	SheetID      int64
	StartDay     int // 0 表示自动：从第 1 天起
	EndDay       int // 0 表示自动：到表内最大天数
	HeaderStyle  HeaderStyle
	SectionOrder SectionOrder
}

// Table 平铺导出结果（首行表头 + 数据行）
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable 重建宽表
//
// 缺失的单元格渲染为空串而不是 "0" 或 "null"；每个非空区域前插入
// 一行合成的区域标题（标签在第 0 列，其余列全空），空区域的行组
// 排在最前且不带标题行。整表没有任何行时输出仅含表头。
func (e *Exporter) BuildTable(opts Options) (*Table, error) {
	if _, err := e.store.GetSheet(opts.SheetID); err != nil {
		return nil, err
	}

	startDay, endDay, err := e.resolveDayRange(opts)
	if err != nil {
		return nil, err
	}

	table := &Table{Header: buildHeader(startDay, endDay, opts.HeaderStyle)}

	sections, err := e.listSections(opts)
	if err != nil {
		return nil, err
	}

	cells, err := e.cellIndex(opts.SheetID)
	if err != nil {
		return nil, err
	}

	width := len(table.Header)
	for _, section := range sections {
		// 合成区域标题行；空区域（首个区域标题之前的行）不输出标题，
		// 重新导入时这些行仍落在任何区域之前
		if section != "" {
			header := make([]string, width)
			header[0] = section
			table.Rows = append(table.Rows, header)
		}

		rows, err := e.store.RowsForSection(opts.SheetID, section)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			table.Rows = append(table.Rows, renderRow(r, cells, startDay, endDay, width))
		}
	}

	return table, nil
}

// resolveDayRange 确定导出的天数窗口
//
// 调用方给定 [start, end] 优先；未指定时取 [1, 表内最大天数]。
// 表内无单元格时 end 为 0，窗口为空，输出不含任何 Day 三列组。
func (e *Exporter) resolveDayRange(opts Options) (int, int, error) {
	startDay, endDay := opts.StartDay, opts.EndDay
	if startDay <= 0 {
		startDay = 1
	}
	if endDay <= 0 {
		maxDay, err := e.store.MaxDay(opts.SheetID)
		if err != nil {
			return 0, 0, err
		}
		endDay = maxDay
	}
	if endDay < startDay && opts.EndDay > 0 {
		startDay, endDay = endDay, startDay
	}
	return startDay, endDay, nil
}

// listSections 导出用的区域列表：包含空区域，不能用大纲的过滤版本
func (e *Exporter) listSections(opts Options) ([]string, error) {
	if opts.SectionOrder == SectionByImport {
		return e.store.AllSectionsByFirstSeen(opts.SheetID)
	}
	return e.store.AllSections(opts.SheetID)
}

// cellIndex 一次性读出整张表的单元格，按 (row, day) 建索引
func (e *Exporter) cellIndex(sheetID int64) (map[int64]map[int]*model.Cell, error) {
	cells, err := e.store.CellsForSheet(sheetID)
	if err != nil {
		return nil, err
	}
	index := make(map[int64]map[int]*model.Cell)
	for _, c := range cells {
		byDay, ok := index[c.RowID]
		if !ok {
			byDay = make(map[int]*model.Cell)
			index[c.RowID] = byDay
		}
		byDay[c.Day] = c
	}
	return index, nil
}

func buildHeader(startDay, endDay int, style HeaderStyle) []string {
	header := []string{"Section/Subsection"}
	for d := startDay; d <= endDay; d++ {
		dayCol := "Day " + strconv.Itoa(d)
		if style == HeaderNumbered {
			n := strconv.Itoa(d)
			header = append(header, dayCol, "Time "+n, "Labor "+n)
		} else {
			header = append(header, dayCol, "Time (hours)", "Labor (workers)")
		}
	}
	return header
}

func renderRow(r *model.Row, cells map[int64]map[int]*model.Cell, startDay, endDay, width int) []string {
	out := make([]string, 1, width)
	out[0] = r.Subsection
	byDay := cells[r.ID]
	for d := startDay; d <= endDay; d++ {
		c := byDay[d]
		if c == nil {
			out = append(out, "", "", "")
			continue
		}
		out = append(out, deref(c.Task), parser.FormatHours(c.Hours), deref(c.LaborCode))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseHeaderStyle 解析表头风格参数，空串回落到默认
func ParseHeaderStyle(s string) (HeaderStyle, error) {
	switch s {
	case "", string(HeaderRepeat):
		return HeaderRepeat, nil
	case string(HeaderNumbered):
		return HeaderNumbered, nil
	}
	return "", fmt.Errorf("unknown header style: %s", s)
}

// ParseSectionOrder 解析区域排序参数，空串回落到默认
func ParseSectionOrder(s string) (SectionOrder, error) {
	switch s {
	case "", string(SectionByName):
		return SectionByName, nil
	case string(SectionByImport):
		return SectionByImport, nil
	}
	return "", fmt.Errorf("unknown section order: %s", s)
}
