package store

import (
	"database/sql"
	"fmt"

	"sitegrid/internal/model"
)

// CreateSheet 按名称查找或创建排期表，返回 id
//
// 名称唯一：同名重复导入会复用同一张表（整表替换语义见 ImportSheet）。
func (s *Store) CreateSheet(name string) (int64, error) {
	if id, err := s.SheetIDByName(name); err == nil {
		return id, nil
	} else if err != sql.ErrNoRows {
		return 0, err
	}

	res, err := s.db.Exec("INSERT INTO sheets (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get sheet id: %w", err)
	}
	return id, nil
}

// SheetIDByName 按名称查表 id，不存在返回 sql.ErrNoRows
func (s *Store) SheetIDByName(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM sheets WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query sheet by name: %w", err)
	}
	return id, nil
}

// GetSheet 按 id 获取排期表
func (s *Store) GetSheet(id int64) (*model.Sheet, error) {
	sheet := &model.Sheet{}
	err := s.db.QueryRow(
		"SELECT id, name, created_at FROM sheets WHERE id = ?", id,
	).Scan(&sheet.ID, &sheet.Name, &sheet.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sheet not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sheet: %w", err)
	}
	return sheet, nil
}

// ListSheets 列出所有排期表及其行数/单元格数统计，按创建时间倒序
func (s *Store) ListSheets() ([]*model.SheetInfo, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.name, s.created_at,
		       COUNT(DISTINCT r.id),
		       COUNT(c.id),
		       COALESCE(MAX(c.day), 0)
		FROM sheets s
		LEFT JOIN rows r ON r.sheet_id = s.id
		LEFT JOIN day_cells c ON c.row_id = r.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	defer rows.Close()

	var results []*model.SheetInfo
	for rows.Next() {
		info := &model.SheetInfo{}
		if err := rows.Scan(
			&info.ID, &info.Name, &info.CreatedAt,
			&info.RowCount, &info.CellCount, &info.MaxDay,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sheet row: %w", err)
		}
		results = append(results, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// SheetCount 统计排期表数量
func (s *Store) SheetCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sheets").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sheets: %w", err)
	}
	return count, nil
}
