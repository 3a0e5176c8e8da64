/*
Package sql provides a store over an SQL database that serves training
data, rule nodes and evaluation history. Differences between database
engines are handled by an Adapter.
*/
package sql

import (
	"database/sql"
)

/*
Adapter is an interface providing what the Store needs to
work on a specific database engine.

Its DB method returns the connection pool to the database.

Its Placeholder method takes the 1-based position of a query
argument and returns the placeholder for it on the engine's
dialect.

Its CreateTableStatements method returns the statements that
create the tables used by the Store when they do not exist.
*/
type Adapter interface {
	DB() *sql.DB
	Placeholder(int) string
	CreateTableStatements() []string
}

// Table names
const (
	TrainingTable       = "training_data"
	ClassificationTable = "classifications"
	RuleTable           = "rule_nodes"
	HistoryTable        = "accuracy_history"
)
