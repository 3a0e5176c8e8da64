package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/rule"
)

const nodeColumns = `position, kind, field, operator, threshold,
	on_true_action, on_true_label, on_true_target,
	on_false_action, on_false_label, on_false_target,
	label, active`

/*
ActiveNodes returns the active rows of the rule table as nodes sorted by
order
*/
func (s *Store) ActiveNodes(ctx context.Context) ([]rule.Node, error) {
	q := s.query(fmt.Sprintf("SELECT %s FROM %s WHERE active = ? ORDER BY position", nodeColumns, RuleTable))
	rows, err := s.adapter.DB().QueryContext(ctx, q, true)
	if err != nil {
		return nil, fmt.Errorf("querying rule nodes: %v", err)
	}
	defer rows.Close()
	var result []rule.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("reading rule node: %v", err)
		}
		result = append(result, *n)
	}
	return result, rows.Err()
}

/*
Put takes a node and stores it, replacing the node with the same order if
any.
*/
func (s *Store) Put(ctx context.Context, n rule.Node) error {
	tx, err := s.adapter.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, s.query(fmt.Sprintf("DELETE FROM %s WHERE position = ?", RuleTable)), n.Order)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("replacing node #%d: %v", n.Order, err)
	}
	q := s.query(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", RuleTable, nodeColumns))
	_, err = tx.ExecContext(ctx, q,
		n.Order, string(n.Kind), string(n.Criterion.Field), string(n.Criterion.Operator), n.Criterion.Threshold,
		string(n.OnTrue.Action), string(n.OnTrue.Label), n.OnTrue.Target,
		string(n.OnFalse.Action), string(n.OnFalse.Label), n.OnFalse.Target,
		string(n.Label), n.Active,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storing node #%d: %v", n.Order, err)
	}
	return tx.Commit()
}

// Delete takes an order and removes the node with that order
func (s *Store) Delete(ctx context.Context, order int) error {
	_, err := s.adapter.DB().ExecContext(ctx, s.query(fmt.Sprintf("DELETE FROM %s WHERE position = ?", RuleTable)), order)
	if err != nil {
		return fmt.Errorf("deleting node #%d: %v", order, err)
	}
	return nil
}

func scanNode(rows *sql.Rows) (*rule.Node, error) {
	var (
		n                            rule.Node
		kind, field, operator, label string
		trueAction, trueLabel        string
		falseAction, falseLabel      string
		trueTarget, falseTarget      int
	)
	err := rows.Scan(
		&n.Order, &kind, &field, &operator, &n.Criterion.Threshold,
		&trueAction, &trueLabel, &trueTarget,
		&falseAction, &falseLabel, &falseTarget,
		&label, &n.Active,
	)
	if err != nil {
		return nil, err
	}
	n.Kind = rule.Kind(kind)
	n.Criterion.Field = feature.Field(field)
	n.Criterion.Operator = feature.Operator(operator)
	n.OnTrue = rule.Branch{Action: rule.Action(trueAction), Label: feature.Label(trueLabel), Target: trueTarget}
	n.OnFalse = rule.Branch{Action: rule.Action(falseAction), Label: feature.Label(falseLabel), Target: falseTarget}
	n.Label = feature.Label(label)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}
