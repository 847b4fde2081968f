package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lessonlab/quizroom/internal/quiz"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, discardLogger())
}

func TestRedisStoreLoadMissing(t *testing.T) {
	st := newTestRedisStore(t)

	doc, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Rooms) != 0 {
		t.Errorf("missing key must yield the default document, got %+v", doc)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestRedisStore(t)

	room := quiz.NewRoom("Physics", "Velocity")
	if err := st.Save(ctx, quiz.Document{Rooms: []quiz.Room{room}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Rooms) != 1 || loaded.Rooms[0].ID != room.ID {
		t.Fatalf("loaded = %+v, want the saved room", loaded.Rooms)
	}
}

func TestRedisStoreCorruptFallsBackToDefault(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	st := NewRedisStore(client, discardLogger())

	mr.Set(redisDocumentKey, "}}garbage")

	doc, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Rooms) != 0 {
		t.Errorf("corrupt value must yield the default document, got %+v", doc)
	}
}
