package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

// Poller keeps a room-list snapshot fresh by fetching on a fixed
// interval. Consistency is eventual and best effort: errors keep the
// previous snapshot with no backoff, the next tick retries naturally,
// and the staleness window is about one interval under normal
// conditions.
type Poller struct {
	client   *Client
	session  *Session
	interval time.Duration
	logger   *slog.Logger
	onUpdate func([]quiz.Room)

	mu    sync.Mutex
	rooms []quiz.Room
}

// NewPoller seeds its snapshot from the session cache so callers can
// render immediately and reconcile on the first fetch. onUpdate may be
// nil; when set it runs after every adopted snapshot.
func NewPoller(client *Client, session *Session, interval time.Duration, logger *slog.Logger, onUpdate func([]quiz.Room)) *Poller {
	return &Poller{
		client:   client,
		session:  session,
		interval: interval,
		logger:   logger,
		onUpdate: onUpdate,
		rooms:    session.CachedRooms,
	}
}

// Rooms returns the current snapshot.
func (p *Poller) Rooms() []quiz.Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	rooms := make([]quiz.Room, len(p.rooms))
	copy(rooms, p.rooms)
	return rooms
}

// Run polls until the context is cancelled. An immediate fetch happens
// before the first interval tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll performs one fetch-and-adopt cycle.
func (p *Poller) Poll(ctx context.Context) {
	rooms, err := p.client.FetchRooms(ctx)
	if err != nil {
		// Keep the previous snapshot; the next tick retries.
		p.logger.Warn("room poll failed, keeping cached snapshot", "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// An empty list while we hold a non-empty cache usually means the
	// backing store was reset or swapped out from under the API, not
	// that every room was deleted. Treat it as suspect and keep the
	// cache.
	if len(rooms) == 0 && len(p.rooms) > 0 {
		p.logger.Warn("room poll returned empty list over non-empty cache, discarding fetch")
		return
	}

	p.rooms = rooms
	p.session.CacheRooms(rooms)
	if err := p.session.Save(); err != nil {
		p.logger.Warn("persisting session cache failed", "error", err)
	}
	if p.onUpdate != nil {
		p.onUpdate(rooms)
	}
}
