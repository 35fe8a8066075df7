package store

import (
	"database/sql"
	"fmt"

	"sitegrid/internal/model"
)

// UpsertCell 写入单元格（PATCH 语义）
//
// 单条原子语句完成 insert-or-update，避免读写两步在并发下撞唯一键。
// 插入时 nil 参数按 NULL 落库；更新时 nil 参数表示"不改该字段"，
// 只有非 nil 参数会覆盖已有值。三个参数全为 nil 时不做任何事。
// row_id 不存在时静默跳过。
func (s *Store) UpsertCell(rowID int64, day int, task *string, hours *float64, laborCode *string) error {
	if task == nil && hours == nil && laborCode == nil {
		return nil
	}
	return upsertCell(s.db, rowID, day, task, hours, laborCode)
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func upsertCell(db execer, rowID int64, day int, task *string, hours *float64, laborCode *string) error {
	_, err := db.Exec(`
		INSERT INTO day_cells (row_id, day, task, hours, labor_code)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM rows WHERE id = ?)
		ON CONFLICT(row_id, day) DO UPDATE SET
			task = COALESCE(excluded.task, task),
			hours = COALESCE(excluded.hours, hours),
			labor_code = COALESCE(excluded.labor_code, labor_code),
			updated_at = CURRENT_TIMESTAMP
	`, rowID, day, task, hours, laborCode, rowID)
	if err != nil {
		return fmt.Errorf("failed to upsert cell: %w", err)
	}
	return nil
}

// SetCell 写入单元格（整格覆盖语义，编辑器保存用）
//
// nil 参数会把对应字段清成 NULL；三个参数全为 nil 等价于删除该单元格。
func (s *Store) SetCell(rowID int64, day int, task *string, hours *float64, laborCode *string) error {
	if task == nil && hours == nil && laborCode == nil {
		return s.DeleteCell(rowID, day)
	}
	return setCell(s.db, rowID, day, task, hours, laborCode)
}

func setCell(db execer, rowID int64, day int, task *string, hours *float64, laborCode *string) error {
	if task == nil && hours == nil && laborCode == nil {
		_, err := db.Exec("DELETE FROM day_cells WHERE row_id = ? AND day = ?", rowID, day)
		if err != nil {
			return fmt.Errorf("failed to delete cell: %w", err)
		}
		return nil
	}
	_, err := db.Exec(`
		INSERT INTO day_cells (row_id, day, task, hours, labor_code)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM rows WHERE id = ?)
		ON CONFLICT(row_id, day) DO UPDATE SET
			task = excluded.task,
			hours = excluded.hours,
			labor_code = excluded.labor_code,
			updated_at = CURRENT_TIMESTAMP
	`, rowID, day, task, hours, laborCode, rowID)
	if err != nil {
		return fmt.Errorf("failed to set cell: %w", err)
	}
	return nil
}

// DeleteCell 删除单元格，不存在时为空操作
func (s *Store) DeleteCell(rowID int64, day int) error {
	_, err := s.db.Exec("DELETE FROM day_cells WHERE row_id = ? AND day = ?", rowID, day)
	if err != nil {
		return fmt.Errorf("failed to delete cell: %w", err)
	}
	return nil
}

// UpsertCellRange 把同一组值写到连续的天数区间（PATCH 语义，单事务）
func (s *Store) UpsertCellRange(rowID int64, startDay, endDay int, task *string, hours *float64, laborCode *string) error {
	if task == nil && hours == nil && laborCode == nil {
		return nil
	}
	if startDay > endDay {
		startDay, endDay = endDay, startDay
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for d := startDay; d <= endDay; d++ {
		if err := upsertCell(tx, rowID, d, task, hours, laborCode); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ApplyCellEdits 批量保存编辑器窗口的单元格修改（整格覆盖语义，单事务）
//
// 一次网格保存打包成一个事务提交，而不是 N 次独立写入。
func (s *Store) ApplyCellEdits(edits []model.CellEdit) error {
	if len(edits) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range edits {
		if err := setCell(tx, e.RowID, e.Day, e.Task, e.Hours, e.LaborCode); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCell 读取单元格，不存在返回 nil
func (s *Store) GetCell(rowID int64, day int) (*model.Cell, error) {
	c := &model.Cell{}
	err := s.db.QueryRow(`
		SELECT id, row_id, day, task, hours, labor_code
		FROM day_cells WHERE row_id = ? AND day = ?
	`, rowID, day).Scan(&c.ID, &c.RowID, &c.Day, &c.Task, &c.Hours, &c.LaborCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cell: %w", err)
	}
	return c, nil
}

// CellsForRow 某行的所有单元格，按天排序
func (s *Store) CellsForRow(rowID int64) ([]*model.Cell, error) {
	rows, err := s.db.Query(`
		SELECT id, row_id, day, task, hours, labor_code
		FROM day_cells WHERE row_id = ?
		ORDER BY day
	`, rowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	return scanCells(rows)
}

// CellsForSheet 整张表的所有单元格（导出/网格渲染的批量读取）
func (s *Store) CellsForSheet(sheetID int64) ([]*model.Cell, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.row_id, c.day, c.task, c.hours, c.labor_code
		FROM day_cells c
		JOIN rows r ON c.row_id = r.id
		WHERE r.sheet_id = ?
		ORDER BY c.row_id, c.day
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	return scanCells(rows)
}

// CellPreview 行内容摘要：最早一天的非空任务名，截断到 40 字符
func (s *Store) CellPreview(rowID int64) (string, error) {
	var day int
	var task string
	err := s.db.QueryRow(`
		SELECT day, task FROM day_cells
		WHERE row_id = ? AND task IS NOT NULL AND task != ''
		ORDER BY day ASC LIMIT 1
	`, rowID).Scan(&day, &task)
	if err == sql.ErrNoRows {
		return "(empty)", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query cell preview: %w", err)
	}

	runes := []rune(task)
	if len(runes) > 40 {
		task = string(runes[:40])
	}
	return fmt.Sprintf("Day %d: %s", day, task), nil
}

// MaxDay 表内有单元格的最大天数，无单元格为 0
func (s *Store) MaxDay(sheetID int64) (int, error) {
	var max int
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(c.day), 0)
		FROM day_cells c
		JOIN rows r ON c.row_id = r.id
		WHERE r.sheet_id = ?
	`, sheetID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to query max day: %w", err)
	}
	return max, nil
}

// DayBounds 表内有单元格的最小/最大天数
//
// 完全没有单元格时回落到 (1, 90)：编辑器的默认展示窗口，不算错误。
func (s *Store) DayBounds(sheetID int64) (min, max int, err error) {
	var minDay, maxDay sql.NullInt64
	err = s.db.QueryRow(`
		SELECT MIN(c.day), MAX(c.day)
		FROM day_cells c
		JOIN rows r ON c.row_id = r.id
		WHERE r.sheet_id = ?
	`, sheetID).Scan(&minDay, &maxDay)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query day bounds: %w", err)
	}
	if !minDay.Valid || !maxDay.Valid {
		return 1, 90, nil
	}
	return int(minDay.Int64), int(maxDay.Int64), nil
}

// scanCells 扫描多行单元格数据
func scanCells(rows *sql.Rows) ([]*model.Cell, error) {
	var results []*model.Cell
	for rows.Next() {
		c := &model.Cell{}
		if err := rows.Scan(&c.ID, &c.RowID, &c.Day, &c.Task, &c.Hours, &c.LaborCode); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
