// Package engine implements the per-client game phase state machine:
// question progression, phase timers, answer capture, scoring, and
// ranking-change detection. One Engine instance drives one client's
// view of one room; it is advanced by Tick (once per second) and fed
// fresh server state through ApplyRemote.
//
// The engine is not safe for concurrent use. The owning client must
// serialize Tick, Answer, and ApplyRemote, mirroring the event-loop
// model the protocol was designed for.
package engine

import (
	"github.com/lessonlab/quizroom/internal/quiz"
)

// Phase of the per-question cycle. The ended phase is absorbing.
type Phase string

const (
	PhaseCountdown Phase = "countdown"
	PhaseWaiting   Phase = "waiting"
	PhaseThinking  Phase = "thinking"
	PhaseAnswering Phase = "answering"
	PhaseResult    Phase = "result"
	PhaseEnded     Phase = "ended"
)

const (
	countdownTicks    = 5 // game-start countdown
	interstitialTicks = 3 // "special question" overlay before a hard question
	answeringSeconds  = 5 // fixed answering window
)

// Engine runs the phase machine for a single team in a single room.
type Engine struct {
	team string
	room quiz.Room

	phase        Phase
	current      int // question index
	countdown    int
	interstitial int
	timeLeft     int

	selected      *int
	resultHandled bool

	started     bool
	lastTrigger int64

	scores      map[string]int
	stats       map[int]map[int]int
	prevRanking []quiz.Standing

	pending *quiz.Room
	events  chan Event

	initialized bool
}

// New creates an engine for the given team. The engine idles in the
// waiting phase until a room snapshot with GameStarted arrives via
// ApplyRemote (or Start is called directly).
func New(team string, room quiz.Room) *Engine {
	e := &Engine{
		team:   team,
		room:   room,
		phase:  PhaseWaiting,
		scores: make(map[string]int),
		stats:  make(map[int]map[int]int),
		events: make(chan Event, 16),
	}
	e.initScores(room)
	return e
}

// initScores seeds the score map and the previous-ranking snapshot from
// the first non-empty team list seen. The snapshot is taken exactly
// once per game; afterwards it only moves when a ranking diff is
// computed on entering the result phase.
func (e *Engine) initScores(room quiz.Room) {
	if e.initialized || len(room.Teams) == 0 {
		return
	}
	for _, t := range room.Teams {
		e.scores[t.Name] = t.Score
	}
	e.prevRanking = e.ranking()
	e.initialized = true
}

func (e *Engine) ranking() []quiz.Standing {
	return quiz.RankScores(e.scores, e.teamOrder())
}

func (e *Engine) teamOrder() []string {
	order := make([]string, len(e.room.Teams))
	for i, t := range e.room.Teams {
		order[i] = t.Name
	}
	return order
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// CurrentQuestion returns the active question index.
func (e *Engine) CurrentQuestion() int { return e.current }

// TimeLeft returns the seconds remaining in the current timed phase.
func (e *Engine) TimeLeft() int { return e.timeLeft }

// Countdown returns the remaining game-start countdown ticks.
func (e *Engine) Countdown() int { return e.countdown }

// Selected returns the answer selected for the current question, or
// nil if none was selected yet.
func (e *Engine) Selected() *int { return e.selected }

// Scores returns a copy of the reconciled score map.
func (e *Engine) Scores() map[string]int {
	out := make(map[string]int, len(e.scores))
	for k, v := range e.scores {
		out[k] = v
	}
	return out
}

// Stats returns the per-question, per-option selection tallies recorded
// by this client, used for end-of-game analytics.
func (e *Engine) Stats() map[int]map[int]int {
	out := make(map[int]map[int]int, len(e.stats))
	for q, opts := range e.stats {
		out[q] = make(map[int]int, len(opts))
		for o, n := range opts {
			out[q][o] = n
		}
	}
	return out
}

// Ranking returns the current full ranking.
func (e *Engine) Ranking() []quiz.Standing { return e.ranking() }

// Events is a buffered feed of phase, score, and ranking events.
// Slow consumers lose events rather than blocking the machine.
func (e *Engine) Events() <-chan Event { return e.events }

// TakePendingUpdate returns a room mutation that must be pushed to the
// shared store (a score credit or a consumed next-question trigger),
// clearing it. ok is false when nothing is pending.
func (e *Engine) TakePendingUpdate() (room quiz.Room, ok bool) {
	if e.pending == nil {
		return quiz.Room{}, false
	}
	room = *e.pending
	e.pending = nil
	return room, true
}

// Start begins the game-start countdown.
func (e *Engine) Start() {
	e.started = true
	e.setPhase(PhaseCountdown)
	e.countdown = countdownTicks
}

// Tick advances the machine by one second.
func (e *Engine) Tick() {
	switch e.phase {
	case PhaseCountdown:
		e.countdown--
		if e.countdown <= 0 {
			e.enterWaiting()
		}
	case PhaseWaiting:
		if e.interstitial > 0 {
			e.interstitial--
			if e.interstitial == 0 {
				e.enterThinking()
			}
		}
	case PhaseThinking:
		if e.room.ThinkingTime <= 0 {
			return // unlimited thinking time, advance is external
		}
		e.timeLeft--
		if e.timeLeft <= 0 {
			e.enterAnswering()
		}
	case PhaseAnswering:
		e.timeLeft--
		if e.timeLeft <= 0 {
			e.enterResult()
		}
	case PhaseResult:
		if e.room.ResultTime <= 0 {
			return // manual advance, wait for the presenter's trigger
		}
		e.timeLeft--
		if e.timeLeft <= 0 {
			e.NextQuestion()
		}
	}
}

// Answer records an answer selection. At most one selection is accepted
// per question; later calls are ignored and return false. Valid only in
// the answering phase.
func (e *Engine) Answer(option int) bool {
	if e.phase != PhaseAnswering || e.selected != nil {
		return false
	}
	q := e.question()
	if q == nil || option < 0 || option >= len(q.Options) {
		return false
	}

	opt := option
	e.selected = &opt
	if e.stats[e.current] == nil {
		e.stats[e.current] = make(map[int]int)
	}
	e.stats[e.current][option]++
	e.room.RecordAnswer(e.team, e.current, &opt)
	return true
}

// NextQuestion advances out of the result phase: to the next question's
// waiting phase, or to ended when questions are exhausted. Called by
// the result timer, by an observed presenter trigger, or manually when
// ResultTime is zero.
func (e *Engine) NextQuestion() {
	e.resultHandled = false
	e.selected = nil
	if e.current < len(e.room.Questions)-1 {
		e.current++
		e.enterWaiting()
		return
	}
	e.setPhase(PhaseEnded)
	e.publish(Event{Type: EventGameEnded, Question: e.current, Ranking: e.ranking()})
}

func (e *Engine) question() *quiz.Question {
	if e.current < 0 || e.current >= len(e.room.Questions) {
		return nil
	}
	return &e.room.Questions[e.current]
}

func (e *Engine) enterWaiting() {
	e.setPhase(PhaseWaiting)
	q := e.question()
	if q == nil {
		e.setPhase(PhaseEnded)
		e.publish(Event{Type: EventGameEnded, Ranking: e.ranking()})
		return
	}
	if q.Multiplier() >= 2 {
		// Hard question: blocking interstitial before thinking starts.
		e.interstitial = interstitialTicks
		return
	}
	e.enterThinking()
}

func (e *Engine) enterThinking() {
	e.interstitial = 0
	e.selected = nil
	e.timeLeft = e.room.ThinkingTime
	e.setPhase(PhaseThinking)
}

func (e *Engine) enterAnswering() {
	e.selected = nil
	e.timeLeft = answeringSeconds
	e.setPhase(PhaseAnswering)
}

// enterResult resolves the current question exactly once: credits the
// team on a correct answer, queues the room mutation for pushing, and
// computes the ranking diff against the previous snapshot.
func (e *Engine) enterResult() {
	e.timeLeft = e.room.ResultTime
	e.setPhase(PhaseResult)
	if e.resultHandled {
		return
	}
	e.resultHandled = true

	q := e.question()
	if q != nil && e.selected != nil && *e.selected == q.CorrectAnswer {
		points := q.AwardedScore()
		e.scores[e.team] += points
		e.queueScorePush()
		e.publish(Event{Type: EventScoreAwarded, Question: e.current, Team: e.team, Points: points})
	}

	cur := e.ranking()
	changes := quiz.DiffRankings(e.prevRanking, cur)
	e.prevRanking = cur
	if len(changes) > 0 {
		e.publish(Event{Type: EventRankingChanged, Question: e.current, Ranking: cur, Changes: changes})
	}
}

// queueScorePush stages the local room, with reconciled scores and this
// client's answer history folded in, for a write back to the store.
func (e *Engine) queueScorePush() {
	room := e.room
	room.Teams = make([]quiz.Team, len(e.room.Teams))
	copy(room.Teams, e.room.Teams)
	quiz.ApplyScores(&room, e.scores)
	e.pending = &room
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	e.phase = p
	e.publish(Event{Type: EventPhaseChanged, Phase: p, Question: e.current})
}

func (e *Engine) publish(ev Event) {
	ev.Phase = e.phase
	select {
	case e.events <- ev:
	default:
		// Drop if the consumer is slow.
	}
}
