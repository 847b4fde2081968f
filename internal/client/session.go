package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

const sessionFileName = "session.json"

// JoinedTeam remembers which team this device joined in a room, so a
// reload lands back in the game instead of the lobby.
type JoinedTeam struct {
	RoomID   string    `json:"roomId"`
	TeamName string    `json:"teamName"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the explicit client-local state object: the presenter
// auth flag, the cached room list with its fetch timestamp, and the
// per-room joined-team records. It is per device, never shared, and
// always passed in rather than read from ambient globals.
type Session struct {
	Authenticated bool                  `json:"authenticated"`
	LoginTime     time.Time             `json:"loginTime,omitzero"`
	CachedRooms   []quiz.Room           `json:"cachedRooms"`
	CachedAt      time.Time             `json:"cachedAt,omitzero"`
	Joined        map[string]JoinedTeam `json:"joined"`

	path string
}

// LoadSession reads the session file under dir, returning a fresh
// session when the file is missing or unreadable.
func LoadSession(dir string) (*Session, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	path := filepath.Join(dir, sessionFileName)

	s := &Session{
		Joined: make(map[string]JoinedTeam),
		path:   path,
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, nil
	}
	if err := json.Unmarshal(raw, s); err != nil {
		// Corrupt local state resets silently, same as the store.
		return &Session{Joined: make(map[string]JoinedTeam), path: path}, nil
	}
	if s.Joined == nil {
		s.Joined = make(map[string]JoinedTeam)
	}
	return s, nil
}

// Save persists the session to its file.
func (s *Session) Save() error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// CacheRooms mirrors a successful fetch into the session.
func (s *Session) CacheRooms(rooms []quiz.Room) {
	s.CachedRooms = rooms
	s.CachedAt = time.Now().UTC()
}

// JoinRoom records which team this device plays as in a room.
func (s *Session) JoinRoom(roomID, teamName string) {
	s.Joined[roomID] = JoinedTeam{
		RoomID:   roomID,
		TeamName: teamName,
		JoinedAt: time.Now().UTC(),
	}
}

// LeaveRoom forgets the joined-team record for a room.
func (s *Session) LeaveRoom(roomID string) {
	delete(s.Joined, roomID)
}

// JoinedTeam returns the team this device joined in a room, if any.
func (s *Session) JoinedTeam(roomID string) (JoinedTeam, bool) {
	jt, ok := s.Joined[roomID]
	return jt, ok
}
