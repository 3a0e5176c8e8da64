/*
Package pgadapter provides an implementation of the
Adapter interface in the pkg/bio/sql package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	biosql "github.com/pbanos/ripeness/pkg/bio/sql"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

var createTableStmts = []string{
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		red INTEGER NOT NULL,
		green INTEGER NOT NULL,
		blue INTEGER NOT NULL,
		label TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE)`, biosql.TrainingTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		red INTEGER NOT NULL,
		green INTEGER NOT NULL,
		blue INTEGER NOT NULL,
		label TEXT NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL)`, biosql.ClassificationTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		position INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		field TEXT NOT NULL DEFAULT '',
		operator TEXT NOT NULL DEFAULT '',
		threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
		on_true_action TEXT NOT NULL DEFAULT '',
		on_true_label TEXT NOT NULL DEFAULT '',
		on_true_target INTEGER NOT NULL DEFAULT 0,
		on_false_action TEXT NOT NULL DEFAULT '',
		on_false_label TEXT NOT NULL DEFAULT '',
		on_false_target INTEGER NOT NULL DEFAULT 0,
		label TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE)`, biosql.RuleTable),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id UUID PRIMARY KEY,
		algorithm TEXT NOT NULL,
		accuracy DOUBLE PRECISION NOT NULL,
		confusion_matrix TEXT NOT NULL,
		metrics TEXT NOT NULL,
		sample_count INTEGER NOT NULL,
		insufficient BOOLEAN NOT NULL,
		calculated_at TIMESTAMPTZ NOT NULL)`, biosql.HistoryTable),
	fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_algorithm_time ON %s (algorithm, calculated_at)`, biosql.HistoryTable, biosql.HistoryTable),
}

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (biosql.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) CreateTableStatements() []string {
	return createTableStmts
}
