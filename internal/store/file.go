package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lessonlab/quizroom/internal/quiz"
)

const dataFileName = "quiz-data.json"

// FileStore keeps the document in a pretty-printed JSON file under a
// data directory, the way small single-host deployments run this tool.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{
		path:   filepath.Join(dir, dataFileName),
		logger: logger,
	}, nil
}

// Load reads the document from disk. A missing or unparseable file
// yields the default empty document; corruption is logged, never
// surfaced to the caller.
func (s *FileStore) Load(_ context.Context) (quiz.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reading data file failed, using default document", "path", s.path, "error", err)
		}
		return quiz.DefaultDocument(), nil
	}

	var doc quiz.Document
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Rooms == nil {
		s.logger.Warn("data file is corrupt, using default document", "path", s.path, "error", err)
		return quiz.DefaultDocument(), nil
	}
	return doc, nil
}

func (s *FileStore) Save(_ context.Context, doc quiz.Document) error {
	stamp(&doc)
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
