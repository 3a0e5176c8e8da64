/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the pkg/bio/sql package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	biosql "github.com/pbanos/ripeness/pkg/bio/sql"
)

var createTableStmts = []string{
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		red INTEGER NOT NULL,
		green INTEGER NOT NULL,
		blue INTEGER NOT NULL,
		label TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1)`, biosql.TrainingTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		red INTEGER NOT NULL,
		green INTEGER NOT NULL,
		blue INTEGER NOT NULL,
		label TEXT NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL)`, biosql.ClassificationTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		position INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		field TEXT NOT NULL DEFAULT '',
		operator TEXT NOT NULL DEFAULT '',
		threshold REAL NOT NULL DEFAULT 0,
		on_true_action TEXT NOT NULL DEFAULT '',
		on_true_label TEXT NOT NULL DEFAULT '',
		on_true_target INTEGER NOT NULL DEFAULT 0,
		on_false_action TEXT NOT NULL DEFAULT '',
		on_false_label TEXT NOT NULL DEFAULT '',
		on_false_target INTEGER NOT NULL DEFAULT 0,
		label TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT 1)`, biosql.RuleTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		algorithm TEXT NOT NULL,
		accuracy REAL NOT NULL,
		confusion_matrix TEXT NOT NULL,
		metrics TEXT NOT NULL,
		sample_count INTEGER NOT NULL,
		insufficient BOOLEAN NOT NULL,
		calculated_at TIMESTAMP NOT NULL)`, biosql.HistoryTable),
	fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_algorithm_time ON %s (algorithm, calculated_at)`, biosql.HistoryTable, biosql.HistoryTable),
}

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (biosql.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite3 serializes writers, a single connection avoids busy errors
	db.SetMaxOpenConns(1)
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Placeholder(int) string {
	return "?"
}

func (a *adapter) CreateTableStatements() []string {
	return createTableStmts
}
