package database

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the SQLite database at path, creating it if necessary.
// It exits the process on failure; use Open for databases that may be absent.
func Connect(path string) *sqlx.DB {
	db, err := openDSN(path)
	if err != nil {
		log.Fatalf("failed to connect to database %s: %v", path, err)
	}
	return db
}

// Open opens an existing SQLite database at path. Inventory stores are owned
// by other programs, so a missing file is an error rather than a reason to
// create an empty database.
func Open(path string) (*sqlx.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database %s: %w", path, err)
	}
	return openDSN(path)
}

func openDSN(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
