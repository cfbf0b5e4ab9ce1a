package model

import (
	"database/sql"
	"errors"
	"time"
)

// WhitelistEntry marks an account as reviewed and cleared. The list is
// reference data for reviewers; flag generation does not consult it.
type WhitelistEntry struct {
	ID        int64  `json:"id"`
	AcNum     string `json:"acNum"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	DateAdded string `json:"dateAdded"`
	AddedBy   string `json:"addedBy"`
}

func (w *WhitelistEntry) Create(db *sql.DB) error {
	if w.DateAdded == "" {
		w.DateAdded = time.Now().Format("2006-01-02")
	}

	query := `
	INSERT INTO whitelist (ac_num, name, reason, date_added, added_by)
	VALUES (?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(w.AcNum, w.Name, w.Reason, w.DateAdded, w.AddedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = id
	return nil
}

func ListWhitelist(db *sql.DB) ([]WhitelistEntry, error) {
	query := `
	SELECT id, ac_num, name, reason, date_added, added_by
	FROM whitelist
	ORDER BY id`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []WhitelistEntry{}
	for rows.Next() {
		var e WhitelistEntry
		if err := rows.Scan(&e.ID, &e.AcNum, &e.Name, &e.Reason, &e.DateAdded, &e.AddedBy); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WhitelistedAccounts returns the set of whitelisted account numbers.
func WhitelistedAccounts(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT ac_num FROM whitelist`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make(map[string]bool)
	for rows.Next() {
		var acNum string
		if err := rows.Scan(&acNum); err != nil {
			return nil, err
		}
		accounts[acNum] = true
	}
	return accounts, rows.Err()
}

func DeleteWhitelistEntry(db *sql.DB, id int64) error {
	stmt, err := db.Prepare(`DELETE FROM whitelist WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("whitelist entry not found")
	}
	return nil
}
