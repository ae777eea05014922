package db

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	bankDB   *sql.DB
	bankOnce sync.Once
	bankErr  error
)

// GetDB returns the process-wide in-memory DuckDB used to query answer bank
// files. The first call opens it and loads the json extension.
func GetDB() (*sql.DB, error) {
	bankOnce.Do(func() {
		bankDB, bankErr = openBankDB()
	})
	return bankDB, bankErr
}

func openBankDB() (*sql.DB, error) {
	database, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// an in-memory database is private to its connection
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	// read_json needs the json extension
	for _, stmt := range []string{"INSTALL json", "LOAD json"} {
		if _, err := database.Exec(stmt); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to prepare answer bank queries (%s): %w", stmt, err)
		}
	}

	return database, nil
}

// QuoteLiteral quotes s as a SQL string literal. read_json takes the bank
// path as a literal, not a bind parameter.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
