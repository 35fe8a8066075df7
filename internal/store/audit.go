package store

import (
	"encoding/json"
	"fmt"
	"log"
)

// AppendAudit 追加一条操作审计记录
//
// 尽力而为：审计写入失败只打日志，绝不中断触发它的业务操作，
// 因此本方法没有返回值。payload 序列化为 JSON 存储。
func (s *Store) AppendAudit(who, action string, payload interface{}) {
	var payloadText *string
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Printf("audit payload marshal failed (action=%s): %v", action, err)
		} else {
			t := string(b)
			payloadText = &t
		}
	}

	_, err := s.db.Exec(
		"INSERT INTO audit_log (who, action, payload) VALUES (?, ?, ?)",
		who, action, payloadText,
	)
	if err != nil {
		log.Printf("audit append failed (action=%s): %v", action, err)
	}
}

// AuditEntry 审计日志记录
type AuditEntry struct {
	ID      int64  `json:"id"`
	Who     string `json:"who"`
	Action  string `json:"action"`
	Payload string `json:"payload"`
	TS      string `json:"ts"`
}

// RecentAudit 最近的审计记录，按时间倒序
func (s *Store) RecentAudit(limit int) ([]*AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, COALESCE(who, ''), action, COALESCE(payload, ''), ts
		FROM audit_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var results []*AuditEntry
	for rows.Next() {
		e := &AuditEntry{}
		if err := rows.Scan(&e.ID, &e.Who, &e.Action, &e.Payload, &e.TS); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}
