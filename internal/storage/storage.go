package storage

import (
	"database/sql"
	"fmt"
)

// OpenSqlite opens the sqlite database file. One connection keeps writes
// serialised.
func OpenSqlite(file string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	return db, nil
}
