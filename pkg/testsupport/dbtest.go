package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens the process-wide shared in-memory sqlite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewNamedSQLiteMemoryDB opens an in-memory sqlite database private to name,
// so tests do not observe each other's rows.
func NewNamedSQLiteMemoryDB(name string) (*sql.DB, error) {
	replacer := strings.NewReplacer("/", "_", " ", "_", "#", "_")
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", replacer.Replace(name)))
}
