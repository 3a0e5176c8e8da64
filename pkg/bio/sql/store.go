package sql

import (
	"context"
	"fmt"
	"strings"
	"time"
)

/*
Store works on the tables of an Adapter's database. It implements
dataset.Source, rule.NodeStore and history.Store.
*/
type Store struct {
	adapter Adapter
	now     func() time.Time
}

/*
Open takes a context and an Adapter and returns a Store working on the
adapter's database, after ensuring its tables exist, or an error.
*/
func Open(ctx context.Context, a Adapter) (*Store, error) {
	for _, stmt := range a.CreateTableStatements() {
		_, err := a.DB().ExecContext(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("ensuring tables exist: %v", err)
		}
	}
	return &Store{adapter: a, now: time.Now}, nil
}

// Close closes the database connection pool
func (s *Store) Close(ctx context.Context) error {
	return s.adapter.DB().Close()
}

/*
query takes a query with ? placeholders and returns it with the adapter's
placeholders instead.
*/
func (s *Store) query(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString(s.adapter.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
