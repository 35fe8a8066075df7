package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sitegrid/internal/model"
	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

// ErrMalformedInput 文件结构不可用（列数不足 2）
var ErrMalformedInput = errors.New("malformed input: need at least 2 columns")

// ErrOrphanRow 严格模式下出现了不属于任何区域的数据行
var ErrOrphanRow = errors.New("data row before any section header")

// Importer 宽表导入器
//
// 把平铺的 Day/Time/Labor 三列组表格还原成规范化的行和单元格。
// 结构性错误（表头坏、列数不足）中止整次导入；单元格级的脏数据
// 只降级成 NULL，绝不让一格坏数据毁掉整张表。
type Importer struct {
	store  *store.Store
	policy parser.SectionPolicy
	strict bool // 严格模式：孤行报错而不是静默跳过
}

// Options 导入行为开关
type Options struct {
	Policy parser.SectionPolicy // 区域标签收敛策略，零值接受任何标签
	Strict bool
}

// NewImporter 创建导入器
func NewImporter(st *store.Store, opts Options) *Importer {
	return &Importer{
		store:  st,
		policy: opts.Policy,
		strict: opts.Strict,
	}
}

// Report 一次导入的结果汇总
type Report struct {
	SheetID        int64         `json:"sheetId"`
	SheetName      string        `json:"sheetName"`
	Rows           int           `json:"rows"`
	Cells          int           `json:"cells"`
	OrphansSkipped int           `json:"orphansSkipped"` // 无区域上下文被跳过的数据行
	HeadersDropped int           `json:"headersDropped"` // 被收敛策略拒绝的区域标题行
	MaxDay         int           `json:"maxDay"`
	Duration       time.Duration `json:"duration"`
}

// scanState 行扫描的折叠状态
//
// 当前区域上下文显式地随扫描传递，而不是共享可变变量：
// 每处理一行，取当前状态、返回新状态。
type scanState struct {
	section *string // 当前区域，遇到区域标题行更新，nil 表示尚无区域
}

// ImportTable 导入一张已在内存中的平铺表格（首行为表头）
//
// 整表替换语义：同名排期表的旧内容会被清空重建，且整个落库过程
// 在单个事务里完成——失败的导入不会留下任何半成品。
func (im *Importer) ImportTable(table [][]string, sheetName string) (*Report, error) {
	start := time.Now()

	if len(table) == 0 || len(table[0]) < 2 {
		return nil, ErrMalformedInput
	}

	header := table[0]
	triplets := parser.DetectDayTriplets(header)
	if len(triplets) == 0 {
		return nil, parser.ErrNoDayColumns
	}

	report := &Report{
		SheetName: sheetName,
		MaxDay:    parser.MaxDayFromColumns(header),
	}

	var rows []model.RowData
	state := scanState{}
	for _, record := range table[1:] {
		var row *model.RowData
		var err error
		state, row, err = im.scanRow(state, record, triplets, report)
		if err != nil {
			return nil, err
		}
		if row != nil {
			rows = append(rows, *row)
		}
	}

	sheetID, stats, err := im.store.ImportSheet(sheetName, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to store imported sheet: %w", err)
	}

	report.SheetID = sheetID
	report.Rows = stats.Rows
	report.Cells = stats.Cells
	report.Duration = time.Since(start)
	return report, nil
}

// scanRow 处理一行：返回新的扫描状态和产出的任务行（标题行/孤行为 nil）
func (im *Importer) scanRow(state scanState, record []string, triplets []parser.DayTriplet, report *Report) (scanState, *model.RowData, error) {
	label := strings.TrimSpace(cellAt(record, 0))

	// 区域标题行：标签非空且所有三列组全空
	if label != "" && allTripletCellsBlank(record, triplets) {
		if normalized, ok := im.policy.Normalize(label); ok {
			state.section = &normalized
		} else {
			// 不认识的标题被丢弃，区域上下文保持不变
			report.HeadersDropped++
		}
		return state, nil, nil
	}

	// 孤行：没有标签也没有区域上下文
	if label == "" && state.section == nil {
		if im.strict {
			return state, nil, ErrOrphanRow
		}
		report.OrphansSkipped++
		return state, nil, nil
	}

	row := &model.RowData{Subsection: label}
	if state.section != nil {
		row.Section = *state.section
	}

	for _, t := range triplets {
		task := parser.CleanCell(cellAt(record, t.Index))
		var hours *float64
		if t.TimeCol != nil {
			hours = parser.ParseHours(cellAt(record, t.Index+1))
		}
		var laborCode *string
		if t.LaborCol != nil {
			laborCode = parser.CleanCell(cellAt(record, t.Index+2))
		}
		// 三项全空的天不落库（稀疏存储）
		if task == nil && hours == nil && laborCode == nil {
			continue
		}
		row.Cells = append(row.Cells, model.CellData{
			Day:       t.Day,
			Task:      task,
			Hours:     hours,
			LaborCode: laborCode,
		})
	}

	return state, row, nil
}

// allTripletCellsBlank 该行所有三列组的格子是否全为空白
//
// 只看三列组覆盖的列；表头之外的杂列不影响标题行判定。
func allTripletCellsBlank(record []string, triplets []parser.DayTriplet) bool {
	for _, t := range triplets {
		if strings.TrimSpace(cellAt(record, t.Index)) != "" {
			return false
		}
		if t.TimeCol != nil && strings.TrimSpace(cellAt(record, t.Index+1)) != "" {
			return false
		}
		if t.LaborCol != nil && strings.TrimSpace(cellAt(record, t.Index+2)) != "" {
			return false
		}
	}
	return true
}

// cellAt 越界安全的取格子：CSV 的短行按空串处理
func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
