// Package store keeps best-practice rules and form submissions in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"github.com/benjaminschreck/go-scorecard/pkg/scorecard"
)

// ErrFormNotFound reports a form id without any stored fields.
var ErrFormNotFound = errors.New("form not found")

const schema = `
CREATE TABLE IF NOT EXISTS rules (
	rule_no INTEGER NOT NULL,
	rule_id TEXT NOT NULL PRIMARY KEY,
	bp_section TEXT NOT NULL,
	question TEXT NOT NULL DEFAULT '',
	question_category TEXT NOT NULL DEFAULT '',
	on_yes TEXT NOT NULL DEFAULT '',
	on_no TEXT NOT NULL DEFAULT '',
	finding TEXT NOT NULL DEFAULT '',
	recommendation TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_rules_no ON rules(rule_no);

CREATE TABLE IF NOT EXISTS form_submissions (
	id INTEGER NOT NULL,
	field TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (id, field)
);
`

// Store is a sqlite backed rule and form store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the database at path and migrates it.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Rules returns every rule ordered by rule number, with lower-case ids.
func (s *Store) Rules(ctx context.Context) ([]scorecard.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule_no, rule_id, bp_section, question, question_category, on_yes, on_no, finding, recommendation
		FROM rules ORDER BY rule_no, rule_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []scorecard.Rule
	for rows.Next() {
		var r scorecard.Rule
		if err := rows.Scan(&r.No, &r.ID, &r.Section, &r.Question, &r.QuestionCategory,
			&r.OnYes, &r.OnNo, &r.Finding, &r.Recommendation); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		r.ID = strings.ToLower(r.ID)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rules, nil
}

// Form returns the fields of submission id keyed by lower-case field name.
func (s *Store) Form(ctx context.Context, id int64) (scorecard.Form, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM form_submissions WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query form %d: %w", id, err)
	}
	defer rows.Close()

	form := scorecard.Form{}
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan form %d: %w", id, err)
		}
		form[strings.ToLower(field)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read form %d: %w", id, err)
	}
	if len(form) == 0 {
		return nil, fmt.Errorf("form %d: %w", id, ErrFormNotFound)
	}
	return form, nil
}

// SaveRules inserts or replaces rules in one transaction.
func (s *Store) SaveRules(ctx context.Context, rules []scorecard.Rule) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO rules
			(rule_no, rule_id, bp_section, question, question_category, on_yes, on_no, finding, recommendation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rules {
			if _, err := stmt.ExecContext(ctx, r.No, strings.ToLower(r.ID), r.Section, r.Question,
				r.QuestionCategory, r.OnYes, r.OnNo, r.Finding, r.Recommendation); err != nil {
				return fmt.Errorf("failed to save rule %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// SaveForm replaces the fields of submission id.
func (s *Store) SaveForm(ctx context.Context, id int64, form scorecard.Form) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM form_submissions WHERE id = ?`, id); err != nil {
			return err
		}
		for field, value := range form {
			if _, err := tx.ExecContext(ctx, `INSERT INTO form_submissions (id, field, value) VALUES (?, ?, ?)`,
				id, strings.ToLower(field), value); err != nil {
				return fmt.Errorf("failed to save form %d field %s: %w", id, field, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		return multierr.Append(err, tx.Rollback())
	}
	return tx.Commit()
}
