// Package quiz holds the shared data model for classroom quiz rooms:
// the persisted document, rooms, questions, teams, and the scoring and
// ranking rules that every client derives its state from.
package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateTeam   = errors.New("team name already taken")
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Document is the entire persisted state: one rooms list, replaced
// wholesale on every write. There is no versioning and no partial
// update; concurrent writers race and the last one wins.
type Document struct {
	Rooms       []Room    `json:"rooms"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultDocument is what readers get when the backing store is absent
// or corrupt. Never an error: the store contract is load-or-default.
func DefaultDocument() Document {
	return Document{Rooms: []Room{}, LastUpdated: time.Now().UTC()}
}

// FindRoom returns a pointer into d.Rooms, or nil.
func (d *Document) FindRoom(id string) *Room {
	for i := range d.Rooms {
		if d.Rooms[i].ID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}

// Room is one quiz session. Any participant holding a reference may
// mutate and push it back; there is no ownership enforcement.
type Room struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Topic     string     `json:"topic"`
	Lesson    string     `json:"lesson,omitempty"`
	Questions []Question `json:"questions"`
	Teams     []Team     `json:"teams"`

	GameStarted bool `json:"gameStarted"`

	// ThinkingTime and ResultTime are seconds; 0 disables the
	// automatic advance for that phase.
	ThinkingTime int `json:"thinkingTime"`
	ResultTime   int `json:"resultTime"`

	// NextQuestionTrigger is a unix-millisecond timestamp written by
	// the presenter; polling players treat any value different from
	// the last one they processed as a fresh "next question" signal.
	// 0 means no pending trigger.
	NextQuestionTrigger int64 `json:"nextQuestionTrigger"`

	// AnswerHistory records, per team, the selected option index for
	// each question index (nil for no answer).
	AnswerHistory map[string]map[int]*int `json:"answerHistory,omitempty"`
}

// NewRoom creates an empty room with sane defaults (20 s thinking,
// 5 s result display).
func NewRoom(name, topic string) Room {
	return Room{
		ID:           uuid.NewString(),
		Name:         name,
		Topic:        topic,
		Questions:    []Question{},
		Teams:        []Team{},
		ThinkingTime: 20,
		ResultTime:   5,
	}
}

// NormalizeTeamName is the key under which team names are compared:
// trimmed and lowercased.
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindTeam returns a pointer to the team with the given name
// (case-insensitive, trimmed), or nil.
func (r *Room) FindTeam(name string) *Team {
	key := NormalizeTeamName(name)
	for i := range r.Teams {
		if NormalizeTeamName(r.Teams[i].Name) == key {
			return &r.Teams[i]
		}
	}
	return nil
}

// AddTeam appends a team, enforcing the case-insensitive-unique name
// invariant within the room.
func (r *Room) AddTeam(name string, virtual bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("team name is required")
	}
	if r.FindTeam(name) != nil {
		return ErrDuplicateTeam
	}
	r.Teams = append(r.Teams, Team{Name: name, IsVirtual: virtual})
	return nil
}

// Scores flattens the team list into a name to score map. Virtual and
// real teams are included alike.
func (r *Room) Scores() map[string]int {
	scores := make(map[string]int, len(r.Teams))
	for _, t := range r.Teams {
		scores[t.Name] = t.Score
	}
	return scores
}

// RecordAnswer appends a selection to the room's answer history.
// Writing the same answer again is a no-op, so a replayed submission
// cannot double-append.
func (r *Room) RecordAnswer(team string, questionIndex int, option *int) {
	if r.AnswerHistory == nil {
		r.AnswerHistory = make(map[string]map[int]*int)
	}
	if r.AnswerHistory[team] == nil {
		r.AnswerHistory[team] = make(map[int]*int)
	}
	if _, done := r.AnswerHistory[team][questionIndex]; done {
		return
	}
	r.AnswerHistory[team][questionIndex] = option
}

// Difficulty of a question; drives both base points and multiplier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Question is a four-option multiple-choice question. Points and
// multiplier are derived from difficulty, never stored independently.
type Question struct {
	ID            string     `json:"id"`
	Text          string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty"`
	Desc          string     `json:"desc,omitempty"`
}

/// Points returns the base score for the question's difficulty:
// easy 5, medium 10, hard 15. Unknown difficulties count as medium.
func (q Question) Points() int {
	switch q.Difficulty {
	case Easy:
		return 5
	case Hard:
		return 15
	default:
		return 10
	}
}

// Multiplier is 2 for hard questions, 1 otherwise.
func (q Question) Multiplier() int {
	if q.Difficulty == Hard {
		return 2
	}
	return 1
}

// AwardedScore is what a team earns for answering correctly.
func (q Question) AwardedScore() int {
	return q.Points() * q.Multiplier()
}

/// Validate rejects questions the editor should never have produced:
// empty text, missing options, or an out-of-range answer index.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("%w: expected 4 options, got %d", ErrInvalidQuestion, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i+1)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct answer index %d out of range", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// NewQuestion builds a validated question with a fresh ID.
func NewQuestion(text string, options []string, correct int, difficulty Difficulty) (Question, error) {
	q := Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectAnswer: correct,
		Difficulty:    difficulty,
	}
	if q.Difficulty == "" {
		q.Difficulty = Medium
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Team is one scoring unit. Real teams join from a student device;
// virtual teams are created by the presenter for offline participants.
// Both live in the same list, disambiguated only by IsVirtual.
type Team struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsVirtual bool   `json:"isVirtual"`
}

// UnmarshalJSON accepts both the tagged object form and the legacy
// bare-string form ("Alpha" meaning a real team with zero score), so
// documents written by older clients still load. The union never
// leaks past this boundary.
func (t *Team) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = Team{Name: name}
		return nil
	}

	type team Team
	var obj team
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Team(obj)
	return nil
}
