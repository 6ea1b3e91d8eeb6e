package database

import (
	"database/sql"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// InitDB opens a SQLite database at the given path (":memory:" works for
// tests), verifies the connection, and ensures the schema exists. The
// schema is idempotent, so InitDB is safe to call against an existing
// database file.
func InitDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	// One connection keeps ":memory:" databases coherent (each sqlite
	// connection would otherwise get its own empty database) and sidesteps
	// SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
