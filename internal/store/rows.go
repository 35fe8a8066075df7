package store

import (
	"database/sql"
	"fmt"

	"sitegrid/internal/model"
)

// InsertRow 插入一行任务，返回 id
func (s *Store) InsertRow(sheetID int64, section, subsection string, order int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO rows (sheet_id, section, subsection, row_order)
		VALUES (?, ?, ?, ?)
	`, sheetID, section, subsection, order)
	if err != nil {
		return 0, fmt.Errorf("failed to insert row: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get row id: %w", err)
	}
	return id, nil
}

// MaxRowOrder 当前最大行序号，空表为 0
func (s *Store) MaxRowOrder(sheetID int64) (int, error) {
	var max int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(row_order), 0) FROM rows WHERE sheet_id = ?", sheetID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to query max row order: %w", err)
	}
	return max, nil
}

// DeleteRowsAndCells 清空整张表的行和单元格（重新导入前调用）
func (s *Store) DeleteRowsAndCells(sheetID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteRowsAndCellsTx(tx, sheetID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func deleteRowsAndCellsTx(tx *sql.Tx, sheetID int64) error {
	if _, err := tx.Exec(`
		DELETE FROM day_cells
		WHERE row_id IN (SELECT id FROM rows WHERE sheet_id = ?)
	`, sheetID); err != nil {
		return fmt.Errorf("failed to delete cells: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM rows WHERE sheet_id = ?", sheetID); err != nil {
		return fmt.Errorf("failed to delete rows: %w", err)
	}
	return nil
}

// Sections 表内所有非空区域名，按名称排序
func (s *Store) Sections(sheetID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT section FROM rows
		WHERE sheet_id = ? AND section IS NOT NULL AND section != ''
		ORDER BY section
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// AllSections 表内所有区域名（含空区域），按名称排序
//
// 第一个区域标题之前的带标签数据行落库时区域为空串，导出必须把
// 这组行带上，否则往返会丢数据；空串排序在所有名称之前。
// 大纲展示用 Sections（过滤空区域），导出用这里。
func (s *Store) AllSections(sheetID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT COALESCE(section, '') FROM rows
		WHERE sheet_id = ?
		ORDER BY COALESCE(section, '')
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// SectionsByFirstSeen 表内所有非空区域名，按导入时首次出现的顺序排序
func (s *Store) SectionsByFirstSeen(sheetID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT section FROM rows
		WHERE sheet_id = ? AND section IS NOT NULL AND section != ''
		GROUP BY section
		ORDER BY MIN(row_order)
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// AllSectionsByFirstSeen 表内所有区域名（含空区域），按首次出现的顺序排序
func (s *Store) AllSectionsByFirstSeen(sheetID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(section, '') FROM rows
		WHERE sheet_id = ?
		GROUP BY COALESCE(section, '')
		ORDER BY MIN(row_order)
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Subsections 某区域下所有非空行标签，按名称排序
func (s *Store) Subsections(sheetID int64, section string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT subsection FROM rows
		WHERE sheet_id = ? AND section = ? AND subsection IS NOT NULL AND subsection != ''
		ORDER BY subsection
	`, sheetID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to query subsections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// RowsForSection 某区域下的所有行，按行序号排序
func (s *Store) RowsForSection(sheetID int64, section string) ([]*model.Row, error) {
	rows, err := s.db.Query(`
		SELECT id, sheet_id, COALESCE(section, ''), COALESCE(subsection, ''), row_order
		FROM rows
		WHERE sheet_id = ? AND section = ?
		ORDER BY row_order
	`, sheetID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// RowsForSubsection 某区域+行标签下的所有行，按行序号排序
func (s *Store) RowsForSubsection(sheetID int64, section, subsection string) ([]*model.Row, error) {
	rows, err := s.db.Query(`
		SELECT id, sheet_id, COALESCE(section, ''), COALESCE(subsection, ''), row_order
		FROM rows
		WHERE sheet_id = ? AND section = ? AND subsection = ?
		ORDER BY row_order
	`, sheetID, section, subsection)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ListRows 整张表的所有行，按行序号排序
func (s *Store) ListRows(sheetID int64) ([]*model.Row, error) {
	rows, err := s.db.Query(`
		SELECT id, sheet_id, COALESCE(section, ''), COALESCE(subsection, ''), row_order
		FROM rows
		WHERE sheet_id = ?
		ORDER BY row_order
	`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetRow 按 id 获取单行，不存在返回 nil
func (s *Store) GetRow(id int64) (*model.Row, error) {
	r := &model.Row{}
	err := s.db.QueryRow(`
		SELECT id, sheet_id, COALESCE(section, ''), COALESCE(subsection, ''), row_order
		FROM rows WHERE id = ?
	`, id).Scan(&r.ID, &r.SheetID, &r.Section, &r.Subsection, &r.RowOrder)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query row: %w", err)
	}
	return r, nil
}

// SwapRowOrder 原子交换两行的行序号
//
// 任一行不存在、或两行不属于同一张表时静默返回，不视为错误。
// 受 UNIQUE(sheet_id, row_order) 约束，交换需借助临时序号分三步完成。
func (s *Store) SwapRowOrder(idA, idB int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sheetA, sheetB int64
	var orderA, orderB int
	if err := tx.QueryRow("SELECT sheet_id, row_order FROM rows WHERE id = ?", idA).Scan(&sheetA, &orderA); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to query row: %w", err)
	}
	if err := tx.QueryRow("SELECT sheet_id, row_order FROM rows WHERE id = ?", idB).Scan(&sheetB, &orderB); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to query row: %w", err)
	}
	if sheetA != sheetB {
		return nil
	}

	// 临时序号避开唯一约束：行序号恒为正，负数不会撞上已有行
	if _, err := tx.Exec("UPDATE rows SET row_order = ? WHERE id = ?", -orderA, idA); err != nil {
		return fmt.Errorf("failed to swap row order: %w", err)
	}
	if _, err := tx.Exec("UPDATE rows SET row_order = ? WHERE id = ?", orderA, idB); err != nil {
		return fmt.Errorf("failed to swap row order: %w", err)
	}
	if _, err := tx.Exec("UPDATE rows SET row_order = ? WHERE id = ?", orderB, idA); err != nil {
		return fmt.Errorf("failed to swap row order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// scanStrings 扫描单列字符串结果
func scanStrings(rows *sql.Rows) ([]string, error) {
	var results []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// scanRows 扫描多行任务数据
func scanRows(rows *sql.Rows) ([]*model.Row, error) {
	var results []*model.Row
	for rows.Next() {
		r := &model.Row{}
		if err := rows.Scan(&r.ID, &r.SheetID, &r.Section, &r.Subsection, &r.RowOrder); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
