package model

import "time"

// Sheet 一份导入的排期表（一个独立数据集）
type Sheet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SheetInfo 排期表概要（列表展示用）
type SheetInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	RowCount  int       `json:"rowCount"`  // 任务行数
	CellCount int       `json:"cellCount"` // 非空单元格数
	MaxDay    int       `json:"maxDay"`    // 有数据的最大天数（无数据为 0）
}

// Row 排期表中的一行任务
//
// RowOrder 在整张表内全局唯一，决定显示顺序。
type Row struct {
	ID         int64  `json:"id"`
	SheetID    int64  `json:"sheetId"`
	Section    string `json:"section"`    // 区域（如 Roof / Outside）
	Subsection string `json:"subsection"` // 行标签（表格左侧的说明文字）
	RowOrder   int    `json:"rowOrder"`
}

// Cell 某行在某一天的稀疏事实（任务/工时/用工编码）
//
// 三个字段都可为空；三者全空的单元格等价于不存在，不落库。
type Cell struct {
	ID        int64    `json:"id"`
	RowID     int64    `json:"rowId"`
	Day       int      `json:"day"`
	Task      *string  `json:"task"`
	Hours     *float64 `json:"hours"`
	LaborCode *string  `json:"laborCode"` // "P.GG" 格式，P 为人数
}

// CellData 导入阶段解析出的单天数据（尚未落库，无 ID）
type CellData struct {
	Day       int
	Task      *string
	Hours     *float64
	LaborCode *string
}

// RowData 导入阶段解析出的一行任务及其所有单元格
type RowData struct {
	Section    string
	Subsection string
	Cells      []CellData
}

// CellEdit 编辑器批量保存时的一条单元格修改
//
// 三个字段全为 nil 表示清空该单元格（删除而不是写入全空记录）。
type CellEdit struct {
	RowID     int64    `json:"rowId"`
	Day       int      `json:"day"`
	Task      *string  `json:"task"`
	Hours     *float64 `json:"hours"`
	LaborCode *string  `json:"laborCode"`
}
