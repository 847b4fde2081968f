package engine

import "github.com/lessonlab/quizroom/internal/quiz"

// EventType identifies what happened inside the phase machine.
type EventType string

const (
	EventPhaseChanged   EventType = "phase_changed"
	EventScoreAwarded   EventType = "score_awarded"
	EventRankingChanged EventType = "ranking_changed"
	EventGameEnded      EventType = "game_ended"
	EventGameReset      EventType = "game_reset"
)

// Event is published on the engine's event channel. Phase is always the
// phase after the event took effect.
type Event struct {
	Type     EventType         `json:"type"`
	Phase    Phase             `json:"phase"`
	Question int               `json:"question"`
	Team     string            `json:"team,omitempty"`
	Points   int               `json:"points,omitempty"`
	Ranking  []quiz.Standing   `json:"ranking,omitempty"`
	Changes  []quiz.RankChange `json:"changes,omitempty"`
}
