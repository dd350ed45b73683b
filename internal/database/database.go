package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_time_format=sqlite")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
//
// test_results.user_id carries ON DELETE SET NULL: deleting an account orphans
// its results instead of destroying them. The user service also performs the
// set-null explicitly inside its delete transaction, so the rule holds no
// matter which path removes the user row.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS test_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		wpm REAL NOT NULL,
		raw_wpm REAL NOT NULL,
		accuracy REAL NOT NULL,
		consistency REAL NOT NULL,
		chars_correct INTEGER NOT NULL,
		chars_wrong INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		-- Opaque JSON, stored verbatim
		char_errors TEXT NOT NULL,
		wpm_timeline TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_test_results_user_created
		ON test_results(user_id, created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
