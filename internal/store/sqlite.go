package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/lessonlab/quizroom/internal/quiz"
)

// SQLiteStore keeps the document as a JSON blob in a single-row table.
// The table shape is deliberately dumb: the contract is whole-document
// read/replace, so there is nothing to normalize.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS document (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			body TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)
	`)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (quiz.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM document WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.DefaultDocument(), nil
	}
	if err != nil {
		return quiz.DefaultDocument(), err
	}

	var doc quiz.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil || doc.Rooms == nil {
		s.logger.Warn("stored document is corrupt, using default", "error", err)
		return quiz.DefaultDocument(), nil
	}
	return doc, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc quiz.Document) error {
	stamp(&doc)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (id, body, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, string(body))
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
