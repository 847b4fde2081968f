package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lessonlab/quizroom/internal/engine"
	"github.com/lessonlab/quizroom/internal/quiz"
)

const (
	tickInterval = time.Second
	pollInterval = 2 * time.Second
)

// Player drives one team's game view: it ticks the phase engine once
// per second, polls the room every two seconds to observe scores and
// the presenter's next-question trigger, and pushes the engine's score
// mutations back to the shared store.
//
// The original runs all of this on a single UI event loop; here a
// mutex serializes engine access between the run loop and Answer.
type Player struct {
	client  *Client
	session *Session
	logger  *slog.Logger
	roomID  string
	team    string

	mu     sync.Mutex
	engine *engine.Engine
}

// NewPlayer joins the player's team into the session record and builds
// the engine from the current room snapshot.
func NewPlayer(c *Client, session *Session, room quiz.Room, team string, logger *slog.Logger) (*Player, error) {
	if room.FindTeam(team) == nil {
		return nil, errors.New("team has not joined this room")
	}
	session.JoinRoom(room.ID, team)
	if err := session.Save(); err != nil {
		return nil, err
	}

	return &Player{
		client:  c,
		session: session,
		logger:  logger,
		roomID:  room.ID,
		team:    team,
		engine:  engine.New(team, room),
	}, nil
}

// Events exposes the engine's event feed.
func (p *Player) Events() <-chan engine.Event {
	return p.engine.Events()
}

// Phase reports the engine's current phase.
func (p *Player) Phase() engine.Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Phase()
}

// Scores reports the reconciled score map.
func (p *Player) Scores() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Scores()
}

// Answer submits an answer selection; only the first one per question
// is accepted.
func (p *Player) Answer(option int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Answer(option)
}

// NextQuestion manually advances out of a manual-advance result phase
// (ResultTime zero) on this client only.
func (p *Player) NextQuestion() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engine.Phase() == engine.PhaseResult {
		p.engine.NextQuestion()
	}
}

// Run ticks and polls until the context is cancelled. Both timers stop
// with the context, so no goroutine or ticker outlives the view that
// owns this player.
func (p *Player) Run(ctx context.Context) error {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			p.mu.Lock()
			p.engine.Tick()
			p.mu.Unlock()
			p.flush(ctx)
		case <-poll.C:
			p.poll(ctx)
		}
	}
}

// poll reconciles the engine with the freshest server copy of the room.
func (p *Player) poll(ctx context.Context) {
	rooms, err := p.client.FetchRooms(ctx)
	if err != nil {
		// Keep in-memory state; the next tick retries.
		p.logger.Warn("room poll failed", "error", err)
		return
	}

	var room *quiz.Room
	for i := range rooms {
		if rooms[i].ID == p.roomID {
			room = &rooms[i]
			break
		}
	}
	if room == nil {
		// Room deleted (presenter stopped hosting); forget the join so
		// a reload lands in the lobby.
		p.logger.Info("room no longer exists", "room_id", p.roomID)
		p.session.LeaveRoom(p.roomID)
		if err := p.session.Save(); err != nil {
			p.logger.Warn("persisting session failed", "error", err)
		}
		return
	}

	p.mu.Lock()
	p.engine.ApplyRemote(*room)
	p.mu.Unlock()
	p.flush(ctx)
}

// flush pushes any pending engine mutation (score credit, consumed
// trigger) back to the store. Failures are logged and dropped: the
// max-merge on the next poll is the safety net, not a retry.
func (p *Player) flush(ctx context.Context) {
	p.mu.Lock()
	room, ok := p.engine.TakePendingUpdate()
	p.mu.Unlock()
	if !ok {
		return
	}
	if err := p.client.PushRoom(ctx, room); err != nil {
		p.logger.Warn("pushing room update failed", "room_id", room.ID, "error", err)
	}
}
