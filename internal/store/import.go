package store

import (
	"database/sql"
	"fmt"

	"sitegrid/internal/model"
)

// ImportStats 一次导入的落库统计
type ImportStats struct {
	Rows  int
	Cells int
}

// ImportSheet 整表替换式导入（单事务）
//
// 按名称查找或创建排期表，清空其已有行和单元格，再批量写入解析结果。
// 任一步失败整个事务回滚：失败的导入不会留下半成品表。
// 同一天被重复的 Day 列命中时按语句顺序后写覆盖。
func (s *Store) ImportSheet(name string, rows []model.RowData) (int64, *ImportStats, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 查找或创建排期表
	var sheetID int64
	err = tx.QueryRow("SELECT id FROM sheets WHERE name = ?", name).Scan(&sheetID)
	if err == sql.ErrNoRows {
		res, err := tx.Exec("INSERT INTO sheets (name) VALUES (?)", name)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		sheetID, err = res.LastInsertId()
		if err != nil {
			return 0, nil, fmt.Errorf("failed to get sheet id: %w", err)
		}
	} else if err != nil {
		return 0, nil, fmt.Errorf("failed to query sheet: %w", err)
	}

	// 整表替换：先清空旧内容
	if err := deleteRowsAndCellsTx(tx, sheetID); err != nil {
		return 0, nil, err
	}

	rowStmt, err := tx.Prepare(`
		INSERT INTO rows (sheet_id, section, subsection, row_order)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer rowStmt.Close()

	cellStmt, err := tx.Prepare(`
		INSERT INTO day_cells (row_id, day, task, hours, labor_code)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(row_id, day) DO UPDATE SET
			task = excluded.task,
			hours = excluded.hours,
			labor_code = excluded.labor_code,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer cellStmt.Close()

	stats := &ImportStats{}
	for i, r := range rows {
		res, err := rowStmt.Exec(sheetID, r.Section, r.Subsection, i+1)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to insert row: %w", err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, nil, fmt.Errorf("failed to get row id: %w", err)
		}
		stats.Rows++

		for _, c := range r.Cells {
			if _, err := cellStmt.Exec(rowID, c.Day, c.Task, c.Hours, c.LaborCode); err != nil {
				return 0, nil, fmt.Errorf("failed to insert cell: %w", err)
			}
			stats.Cells++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sheetID, stats, nil
}
