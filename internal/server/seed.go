package server

import (
	"context"
	"log/slog"

	"github.com/lessonlab/quizroom/internal/quiz"
	"github.com/lessonlab/quizroom/internal/store"
)

// SeedDemo creates a demo physics room if the store holds no rooms.
// Idempotent: does nothing when any room already exists.
func SeedDemo(ctx context.Context, logger *slog.Logger, st store.Store) error {
	doc, err := st.Load(ctx)
	if err != nil {
		return err
	}
	if len(doc.Rooms) > 0 {
		return nil
	}

	room := quiz.NewRoom("Physics 8A", "Velocity")
	room.Lesson = "Motion and average velocity"
	room.Questions = demoQuestions()

	doc.Rooms = append(doc.Rooms, room)
	if err := st.Save(ctx, doc); err != nil {
		return err
	}

	logger.Info("demo room created", "room_id", room.ID)
	return nil
}

func demoQuestions() []quiz.Question {
	defs := []struct {
		text       string
		options    []string
		correct    int
		difficulty quiz.Difficulty
	}{
		{
			"What does velocity measure?",
			[]string{
				"Distance covered per unit of time",
				"Time needed to travel",
				"The mass of an object",
				"The force acting on an object",
			},
			0, quiz.Easy,
		},
		{
			"Which formula gives velocity?",
			[]string{"v = s × t", "v = s / t", "v = t / s", "v = s + t"},
			1, quiz.Easy,
		},
		{
			"A car travels 100 km in 2 hours. What is its velocity?",
			[]string{"50 km/h", "100 km/h", "200 km/h", "25 km/h"},
			0, quiz.Medium,
		},
		{
			"What is the SI unit of velocity?",
			[]string{"m/s", "km/h", "cm/s", "m/h"},
			0, quiz.Medium,
		},
		{
			"Convert 72 km/h to m/s.",
			[]string{"20 m/s", "30 m/s", "10 m/s", "50 m/s"},
			0, quiz.Hard,
		},
	}

	questions := make([]quiz.Question, 0, len(defs))
	for _, s := range defs {
		q, err := quiz.NewQuestion(s.text, s.options, s.correct, s.difficulty)
		if err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}
