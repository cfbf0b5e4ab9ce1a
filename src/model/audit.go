package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// AuditEntry records a reviewer action against the screening data. Details
// holds a JSON object with action-specific context.
type AuditEntry struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"userId"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
}

func RecordAudit(db *sql.DB, userID, action string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	stmt, err := db.Prepare(`INSERT INTO audit_log (timestamp, user_id, action, details) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(time.Now(), userID, action, string(payload))
	return err
}

func ListAudit(db *sql.DB, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
	SELECT id, timestamp, user_id, action, details
	FROM audit_log
	ORDER BY id DESC
	LIMIT ?`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		var details string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.UserID, &e.Action, &details); err != nil {
			return nil, err
		}
		e.Details = json.RawMessage(details)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
