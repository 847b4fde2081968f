// Package store persists the single shared quiz document. Every
// backend exposes the same whole-document contract: Load returns the
// current document (or the default empty one when the backing data is
// absent or corrupt — absence is never an error), Save replaces it
// wholesale. There are no transactions and no locking; concurrent
// saves race and the last writer wins.
package store

import (
	"context"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

type Store interface {
	Load(ctx context.Context) (quiz.Document, error)
	Save(ctx context.Context, doc quiz.Document) error
	Close() error
}

// stamp sets LastUpdated just before a write, matching the contract
// that every successful save carries a fresh timestamp.
func stamp(doc *quiz.Document) {
	doc.LastUpdated = time.Now().UTC()
	if doc.Rooms == nil {
		doc.Rooms = []quiz.Room{}
	}
}
