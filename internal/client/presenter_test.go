package client

import (
	"context"
	"errors"
	"testing"

	"github.com/lessonlab/quizroom/internal/quiz"
)

func validQuestions(t *testing.T) []quiz.Question {
	t.Helper()
	q1, err := quiz.NewQuestion("What unit measures force?",
		[]string{"Newton", "Joule", "Watt", "Pascal"}, 0, quiz.Easy)
	if err != nil {
		t.Fatalf("building question: %v", err)
	}
	q2, err := quiz.NewQuestion("What is acceleration?",
		[]string{"m/s", "m/s^2", "kg", "N"}, 1, quiz.Hard)
	if err != nil {
		t.Fatalf("building question: %v", err)
	}
	return []quiz.Question{q1, q2}
}

func TestCreateRoom(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)

	room, err := p.CreateRoom(context.Background(), "Physics 8A", "Velocity", validQuestions(t), 30, 10)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == "" {
		t.Error("expected a generated room ID")
	}
	if room.ThinkingTime != 30 || room.ResultTime != 10 {
		t.Errorf("timers = %d/%d, want 30/10", room.ThinkingTime, room.ResultTime)
	}

	rooms := stub.getRooms()
	if len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Errorf("stored rooms = %+v, want the created room", rooms)
	}
}

func TestCreateRoomRejectsInvalidQuestion(t *testing.T) {
	_, c := newTestAPI(t)
	p := NewPresenter(c)

	bad := []quiz.Question{{Text: "Incomplete", Options: []string{"only one"}}}
	if _, err := p.CreateRoom(context.Background(), "Physics", "", bad, 20, 5); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCreateRoomRequiresName(t *testing.T) {
	_, c := newTestAPI(t)
	p := NewPresenter(c)

	if _, err := p.CreateRoom(context.Background(), "", "", nil, 20, 5); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestStartGameRequiresQuestions(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	if err := p.StartGame(context.Background(), room.ID); err == nil {
		t.Fatal("expected error starting a game without questions")
	}

	room.Questions = validQuestions(t)
	stub.setRooms([]quiz.Room{room})
	if err := p.StartGame(context.Background(), room.ID); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if rooms := stub.getRooms(); !rooms[0].GameStarted {
		t.Error("expected GameStarted to be set")
	}
}

func TestStopGameClearsTeamsAndHistory(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)

	room := quiz.NewRoom("Physics", "Velocity")
	room.GameStarted = true
	room.AddTeam("Alpha", false)
	room.AnswerHistory = map[string]map[int]*int{"alpha": {0: nil}}
	room.NextQuestionTrigger = 12345
	stub.setRooms([]quiz.Room{room})

	if err := p.StopGame(context.Background(), room.ID); err != nil {
		t.Fatalf("StopGame: %v", err)
	}

	got := stub.getRooms()[0]
	if got.GameStarted {
		t.Error("expected GameStarted cleared")
	}
	if len(got.Teams) != 0 {
		t.Errorf("teams = %+v, want none", got.Teams)
	}
	if got.AnswerHistory != nil {
		t.Errorf("answer history = %+v, want cleared", got.AnswerHistory)
	}
	if got.NextQuestionTrigger != 0 {
		t.Errorf("trigger = %d, want 0", got.NextQuestionTrigger)
	}
}

func TestNextQuestionWritesTrigger(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	if err := p.NextQuestion(context.Background(), room.ID); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if got := stub.getRooms()[0].NextQuestionTrigger; got == 0 {
		t.Error("expected a non-zero trigger timestamp")
	}
}

func TestJoinTeamRejectsDuplicates(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	if err := p.JoinTeam(context.Background(), room.ID, "Alpha"); err != nil {
		t.Fatalf("JoinTeam: %v", err)
	}
	err := p.JoinTeam(context.Background(), room.ID, "  alpha ")
	if !errors.Is(err, quiz.ErrDuplicateTeam) {
		t.Fatalf("err = %v, want ErrDuplicateTeam", err)
	}
	if rooms := stub.getRooms(); len(rooms[0].Teams) != 1 {
		t.Errorf("teams = %+v, want one", rooms[0].Teams)
	}
}

func TestVirtualTeamAndCredit(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	room.AddTeam("Alpha", false)
	stub.setRooms([]quiz.Room{room})

	if err := p.AddVirtualTeam(context.Background(), room.ID, "Chalkboard"); err != nil {
		t.Fatalf("AddVirtualTeam: %v", err)
	}
	if err := p.CreditTeams(context.Background(), room.ID, []string{"chalkboard"}, 10); err != nil {
		t.Fatalf("CreditTeams: %v", err)
	}

	teams := stub.getRooms()[0].Teams
	if len(teams) != 2 {
		t.Fatalf("teams = %+v, want two", teams)
	}
	if !teams[1].IsVirtual || teams[1].Score != 10 {
		t.Errorf("virtual team = %+v, want credited 10 points", teams[1])
	}
	if teams[0].Score != 0 {
		t.Errorf("unselected team was credited: %+v", teams[0])
	}
}

func TestRemoveTeam(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	room.AddTeam("Alpha", false)
	room.AddTeam("Beta", false)
	stub.setRooms([]quiz.Room{room})

	if err := p.RemoveTeam(context.Background(), room.ID, "ALPHA"); err != nil {
		t.Fatalf("RemoveTeam: %v", err)
	}
	teams := stub.getRooms()[0].Teams
	if len(teams) != 1 || teams[0].Name != "Beta" {
		t.Errorf("teams = %+v, want only Beta", teams)
	}

	if err := p.RemoveTeam(context.Background(), room.ID, "Gamma"); err == nil {
		t.Error("expected error removing an unknown team")
	}
}

func TestDeleteRoom(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	a := quiz.NewRoom("Physics", "Velocity")
	b := quiz.NewRoom("Chemistry", "Acids")
	stub.setRooms([]quiz.Room{a, b})

	if err := p.DeleteRoom(context.Background(), a.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	rooms := stub.getRooms()
	if len(rooms) != 1 || rooms[0].ID != b.ID {
		t.Errorf("rooms = %+v, want only the second room", rooms)
	}

	if err := p.DeleteRoom(context.Background(), a.ID); !errors.Is(err, quiz.ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestSetTimersRejectsNegative(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	if err := p.SetTimers(context.Background(), room.ID, -1, 5); err == nil {
		t.Fatal("expected error for negative timer")
	}
	if err := p.SetTimers(context.Background(), room.ID, 0, 0); err != nil {
		t.Fatalf("SetTimers: %v", err)
	}
	got := stub.getRooms()[0]
	if got.ThinkingTime != 0 || got.ResultTime != 0 {
		t.Errorf("timers = %d/%d, want 0/0", got.ThinkingTime, got.ResultTime)
	}
}

func TestUpdateQuestions(t *testing.T) {
	stub, c := newTestAPI(t)
	p := NewPresenter(c)
	room := quiz.NewRoom("Physics", "Velocity")
	stub.setRooms([]quiz.Room{room})

	bad := []quiz.Question{{Text: ""}}
	if err := p.UpdateQuestions(context.Background(), room.ID, bad); err == nil {
		t.Fatal("expected validation error")
	}

	if err := p.UpdateQuestions(context.Background(), room.ID, validQuestions(t)); err != nil {
		t.Fatalf("UpdateQuestions: %v", err)
	}
	if got := stub.getRooms()[0].Questions; len(got) != 2 {
		t.Errorf("questions = %d, want 2", len(got))
	}
}

func TestOperationsOnUnknownRoom(t *testing.T) {
	_, c := newTestAPI(t)
	p := NewPresenter(c)

	if err := p.StartGame(context.Background(), "missing"); !errors.Is(err, quiz.ErrRoomNotFound) {
		t.Errorf("StartGame err = %v, want ErrRoomNotFound", err)
	}
}
