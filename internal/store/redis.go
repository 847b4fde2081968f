package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lessonlab/quizroom/internal/quiz"
)

const redisDocumentKey = "quizroom:document"

// RedisStore keeps the document as a JSON blob under a single key, for
// deployments where several server replicas share one backing store.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context) (quiz.Document, error) {
	body, err := s.client.Get(ctx, redisDocumentKey).Result()
	if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Save(ctx context.Context, doc quiz.Document) error {
	stamp(&doc)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisDocumentKey, body, 0).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
