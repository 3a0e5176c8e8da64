package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/history"
)

const historyColumns = "id, algorithm, accuracy, confusion_matrix, metrics, sample_count, insufficient, calculated_at"

/*
Save takes a history record and inserts it on the history table. The
confusion matrix and metrics are stored as JSON documents.
*/
func (s *Store) Save(ctx context.Context, r history.Record) error {
	cm, err := json.Marshal(r.ConfusionMatrix)
	if err != nil {
		return fmt.Errorf("encoding confusion matrix: %v", err)
	}
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %v", err)
	}
	q := s.query(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", HistoryTable, historyColumns))
	_, err = s.adapter.DB().ExecContext(ctx, q,
		r.ID.String(), r.Algorithm, r.Accuracy, string(cm), string(metrics),
		r.SampleCount, r.Insufficient, r.CalculatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving %s record: %v", r.Algorithm, err)
	}
	return nil
}

// Latest returns the most recent record of the algorithm or history.ErrNotFound
func (s *Store) Latest(ctx context.Context, algorithm string) (*history.Record, error) {
	q := s.query(fmt.Sprintf("SELECT %s FROM %s WHERE algorithm = ? ORDER BY calculated_at DESC LIMIT 1", historyColumns, HistoryTable))
	records, err := s.queryRecords(ctx, q, algorithm)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, history.ErrNotFound
	}
	return &records[0], nil
}

// Since returns the records of the algorithm within the last days, newest first
func (s *Store) Since(ctx context.Context, algorithm string, days int) ([]history.Record, error) {
	q := s.query(fmt.Sprintf("SELECT %s FROM %s WHERE algorithm = ? AND calculated_at >= ? ORDER BY calculated_at DESC", historyColumns, HistoryTable))
	return s.queryRecords(ctx, q, algorithm, history.Cutoff(s.now(), days).UTC())
}

func (s *Store) queryRecords(ctx context.Context, q string, args ...interface{}) ([]history.Record, error) {
	rows, err := s.adapter.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %v", err)
	}
	defer rows.Close()
	var result []history.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("reading history record: %v", err)
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

func scanRecord(rows *sql.Rows) (*history.Record, error) {
	var (
		r           history.Record
		id, cm, mts string
		at          time.Time
	)
	err := rows.Scan(&id, &r.Algorithm, &r.Accuracy, &cm, &mts, &r.SampleCount, &r.Insufficient, &at)
	if err != nil {
		return nil, err
	}
	r.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal([]byte(cm), &r.ConfusionMatrix)
	if err != nil {
		return nil, fmt.Errorf("decoding confusion matrix: %v", err)
	}
	r.Metrics = make(map[feature.Label]history.Metrics)
	err = json.Unmarshal([]byte(mts), &r.Metrics)
	if err != nil {
		return nil, fmt.Errorf("decoding metrics: %v", err)
	}
	r.CalculatedAt = at
	return &r, nil
}
