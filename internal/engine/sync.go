package engine

import "github.com/lessonlab/quizroom/internal/quiz"

// ApplyRemote folds a freshly polled copy of the room into the local
// machine. Polling gives no read-your-writes guarantee, so the merge is
// defensive: scores take the per-team max, this client's own answer for
// the current question survives a stale history, and a presenter
// trigger newer than the last one processed advances the question.
func (e *Engine) ApplyRemote(remote quiz.Room) {
	// Game start/stop edges.
	if remote.GameStarted && !e.started {
		e.applyRoom(remote)
		e.Start()
		return
	}
	if !remote.GameStarted && e.started {
		e.reset(remote)
		return
	}

	// Presenter pressed "next question" while we sit in result phase.
	// A trigger is fresh if it differs from the last one we consumed;
	// consuming it also queues a push that clears the trigger so the
	// same timestamp is not replayed into other state.
	if e.phase == PhaseResult &&
		remote.NextQuestionTrigger != 0 &&
		remote.NextQuestionTrigger != e.lastTrigger {
		e.lastTrigger = remote.NextQuestionTrigger
		e.applyRoom(remote)
		e.room.NextQuestionTrigger = 0
		cleared := e.room
		e.pending = &cleared
		e.NextQuestion()
		return
	}

	e.applyRoom(remote)
}

// applyRoom adopts the remote room while preserving local knowledge:
// max-merged scores and this client's answer for the current question.
func (e *Engine) applyRoom(remote quiz.Room) {
	e.initScores(remote)
	e.scores = quiz.MergeScores(e.scores, remote.Scores())

	ownAnswer, ownAnswered := e.ownCurrentAnswer()

	e.room = remote
	quiz.ApplyScores(&e.room, e.scores)

	if ownAnswered {
		if e.room.AnswerHistory == nil {
			e.room.AnswerHistory = make(map[string]map[int]*int)
		}
		if e.room.AnswerHistory[e.team] == nil {
			e.room.AnswerHistory[e.team] = make(map[int]*int)
		}
		e.room.AnswerHistory[e.team][e.current] = ownAnswer
	}
}

func (e *Engine) ownCurrentAnswer() (*int, bool) {
	byTeam, ok := e.room.AnswerHistory[e.team]
	if !ok {
		return nil, false
	}
	answer, ok := byTeam[e.current]
	return answer, ok
}

// reset reacts to the presenter stopping the game mid-play: back to the
// idle waiting phase with all transient question state cleared. Scores
// and answer tallies survive for the end-of-game analytics view.
func (e *Engine) reset(remote quiz.Room) {
	e.started = false
	e.room = remote
	e.current = 0
	e.countdown = countdownTicks
	e.interstitial = 0
	e.timeLeft = 0
	e.selected = nil
	e.resultHandled = false
	e.lastTrigger = 0
	e.pending = nil
	e.setPhase(PhaseWaiting)
	e.publish(Event{Type: EventGameReset})
}
