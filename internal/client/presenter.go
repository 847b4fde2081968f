package client

import (
	"context"
	"fmt"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

// Presenter is the teacher console: room CRUD, game control, virtual
// teams, and manual score credits. Every operation is a full-document
// read-modify-write against the repository API; errors are returned to
// the caller for surfacing and never retried automatically.
type Presenter struct {
	client *Client
}

func NewPresenter(c *Client) *Presenter {
	return &Presenter{client: c}
}

// CreateRoom validates the questions and appends a new room.
func (p *Presenter) CreateRoom(ctx context.Context, name, topic string, questions []quiz.Question, thinkingTime, resultTime int) (quiz.Room, error) {
	if name == "" {
		return quiz.Room{}, fmt.Errorf("room name is required")
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return quiz.Room{}, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	room := quiz.NewRoom(name, topic)
	room.Questions = questions
	if thinkingTime >= 0 {
		room.ThinkingTime = thinkingTime
	}
	if resultTime >= 0 {
		room.ResultTime = resultTime
	}

	rooms, err := p.client.FetchRooms(ctx)
	if err != nil {
		return quiz.Room{}, fmt.Errorf("fetching rooms: %w", err)
	}
	rooms = append(rooms, room)
	if err := p.client.SaveRooms(ctx, rooms); err != nil {
		return quiz.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes a room from the shared list.
func (p *Presenter) DeleteRoom(ctx context.Context, roomID string) error {
	rooms, err := p.client.FetchRooms(ctx)
	if err != nil {
		return fmt.Errorf("fetching rooms: %w", err)
	}
	kept := rooms[:0]
	found := false
	for _, r := range rooms {
		if r.ID == roomID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return quiz.ErrRoomNotFound
	}
	return p.client.SaveRooms(ctx, kept)
}

// StartGame flips the room into play. Refused for question-less rooms.
func (p *Presenter) StartGame(ctx context.Context, roomID string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		if len(room.Questions) == 0 {
			return fmt.Errorf("cannot start game: room has no questions")
		}
		room.GameStarted = true
		room.NextQuestionTrigger = 0
		return nil
	})
}

// StopGame ends the game and clears all teams, scores, and answer
// history. Every connected player observes the flip and resets.
func (p *Presenter) StopGame(ctx context.Context, roomID string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		room.GameStarted = false
		room.NextQuestionTrigger = 0
		room.Teams = []quiz.Team{}
		room.AnswerHistory = nil
		return nil
	})
}

// NextQuestion writes a fresh trigger timestamp. Players sitting in a
// manual-advance result phase observe it on their next poll and move
// to the next question.
func (p *Presenter) NextQuestion(ctx context.Context, roomID string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		room.NextQuestionTrigger = time.Now().UnixMilli()
		return nil
	})
}

// JoinTeam adds a real team, rejecting duplicate names before any
// further round trip.
func (p *Presenter) JoinTeam(ctx context.Context, roomID, teamName string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		return room.AddTeam(teamName, false)
	})
}

// AddVirtualTeam adds a presenter-managed team for offline
// participants.
func (p *Presenter) AddVirtualTeam(ctx context.Context, roomID, teamName string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		return room.AddTeam(teamName, true)
	})
}

// RemoveTeam drops a team from the room.
func (p *Presenter) RemoveTeam(ctx context.Context, roomID, teamName string) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		key := quiz.NormalizeTeamName(teamName)
		kept := room.Teams[:0]
		found := false
		for _, t := range room.Teams {
			if quiz.NormalizeTeamName(t.Name) == key {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		if !found {
			return fmt.Errorf("team %q not found", teamName)
		}
		room.Teams = kept
		return nil
	})
}

// CreditTeams increments the score of each named team in one write,
// the batch crediting the presenter uses for virtual teams after a
// question. The room is re-read first so the increment lands on the
// freshest scores available.
func (p *Presenter) CreditTeams(ctx context.Context, roomID string, teams []string, points int) error {
	selected := make(map[string]bool, len(teams))
	for _, name := range teams {
		selected[quiz.NormalizeTeamName(name)] = true
	}
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		for i := range room.Teams {
			if selected[quiz.NormalizeTeamName(room.Teams[i].Name)] {
				room.Teams[i].Score += points
			}
		}
		return nil
	})
}

// UpdateQuestions replaces the room's question list after validation.
func (p *Presenter) UpdateQuestions(ctx context.Context, roomID string, questions []quiz.Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		room.Questions = questions
		return nil
	})
}

// SetTimers adjusts the per-phase timers (0 disables auto-advance).
func (p *Presenter) SetTimers(ctx context.Context, roomID string, thinkingTime, resultTime int) error {
	return p.updateRoom(ctx, roomID, func(room *quiz.Room) error {
		if thinkingTime < 0 || resultTime < 0 {
			return fmt.Errorf("timers must not be negative")
		}
		room.ThinkingTime = thinkingTime
		room.ResultTime = resultTime
		return nil
	})
}

// updateRoom is the shared read-modify-write cycle: fetch the latest
// rooms list, mutate the matching room, write the whole list back.
func (p *Presenter) updateRoom(ctx context.Context, roomID string, mutate func(*quiz.Room) error) error {
	rooms, err := p.client.FetchRooms(ctx)
	if err != nil {
		return fmt.Errorf("fetching rooms: %w", err)
	}
	for i := range rooms {
		if rooms[i].ID == roomID {
			if err := mutate(&rooms[i]); err != nil {
				return err
			}
			return p.client.SaveRooms(ctx, rooms)
		}
	}
	return quiz.ErrRoomNotFound
}
