package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

/*
TrainingSamples returns the active rows of the training table
*/
func (s *Store) TrainingSamples(ctx context.Context) ([]dataset.LabeledSample, error) {
	q := s.query(fmt.Sprintf("SELECT red, green, blue, label FROM %s WHERE active = ? ORDER BY id", TrainingTable))
	rows, err := s.adapter.DB().QueryContext(ctx, q, true)
	if err != nil {
		return nil, fmt.Errorf("querying training samples: %v", err)
	}
	return scanSamples(rows)
}

/*
VerifiedSamples returns the classifications verified by an operator,
labeled with their verified label
*/
func (s *Store) VerifiedSamples(ctx context.Context) ([]dataset.LabeledSample, error) {
	q := s.query(fmt.Sprintf("SELECT red, green, blue, label FROM %s WHERE verified = ? ORDER BY id", ClassificationTable))
	rows, err := s.adapter.DB().QueryContext(ctx, q, true)
	if err != nil {
		return nil, fmt.Errorf("querying verified samples: %v", err)
	}
	return scanSamples(rows)
}

/*
AddTrainingSamples takes a slice of labeled samples and inserts them as
active training data in a single transaction. It returns the number of
samples inserted or an error.
*/
func (s *Store) AddTrainingSamples(ctx context.Context, samples []dataset.LabeledSample) (int, error) {
	tx, err := s.adapter.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	q := s.query(fmt.Sprintf("INSERT INTO %s (red, green, blue, label, active) VALUES (?, ?, ?, ?, ?)", TrainingTable))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing training sample insertion: %v", err)
	}
	defer stmt.Close()
	for i, ls := range samples {
		_, err = stmt.ExecContext(ctx, ls.Red, ls.Green, ls.Blue, string(ls.Label), true)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting training sample %d: %v", i+1, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

/*
AddClassification takes a color, the label it was classified as and
whether an operator verified the label, and records it. Verified records
are served by VerifiedSamples.
*/
func (s *Store) AddClassification(ctx context.Context, c dataset.Color, l feature.Label, verified bool) error {
	q := s.query(fmt.Sprintf("INSERT INTO %s (red, green, blue, label, verified, created_at) VALUES (?, ?, ?, ?, ?, ?)", ClassificationTable))
	_, err := s.adapter.DB().ExecContext(ctx, q, c.Red, c.Green, c.Blue, string(l), verified, s.now().UTC())
	if err != nil {
		return fmt.Errorf("recording classification of %v: %v", c, err)
	}
	return nil
}

func scanSamples(rows *sql.Rows) ([]dataset.LabeledSample, error) {
	defer rows.Close()
	var result []dataset.LabeledSample
	for rows.Next() {
		var r, g, b int
		var label string
		err := rows.Scan(&r, &g, &b, &label)
		if err != nil {
			return nil, err
		}
		c, err := dataset.NewColor(r, g, b)
		if err != nil {
			return nil, err
		}
		l, err := feature.ParseLabel(label)
		if err != nil {
			return nil, err
		}
		result = append(result, dataset.LabeledSample{Color: c, Label: l})
	}
	return result, rows.Err()
}
