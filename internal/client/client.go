// Package client implements the synchronization side of the quiz
// protocol: the HTTP API client, the client-local session state, the
// polling loop with its cache heuristics, the player game driver
// around the phase engine, and the presenter console operations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lessonlab/quizroom/internal/quiz"
)

// Client talks to the room repository API. Every mutation is a
// read-modify-write of the whole rooms array; there is no optimistic
// concurrency control, so a concurrent writer can be clobbered.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRooms reads the shared rooms list.
func (c *Client) FetchRooms(ctx context.Context) ([]quiz.Room, error) {
	var rooms []quiz.Room
	if err := c.get(ctx, "/api/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SaveRooms replaces the shared rooms list wholesale.
func (c *Client) SaveRooms(ctx context.Context, rooms []quiz.Room) error {
	if rooms == nil {
		rooms = []quiz.Room{}
	}
	return c.post(ctx, http.MethodPost, "/api/rooms", rooms)
}

// FetchDocument reads the whole persisted document.
func (c *Client) FetchDocument(ctx context.Context) (quiz.Document, error) {
	var doc quiz.Document
	err := c.get(ctx, "/api/data", &doc)
	return doc, err
}

// PushRoom folds one room back into the shared list: fetch, replace the
// entry with the same ID, save. The room must already exist.
func (c *Client) PushRoom(ctx context.Context, room quiz.Room) error {
	rooms, err := c.FetchRooms(ctx)
	if err != nil {
		return fmt.Errorf("fetching rooms before push: %w", err)
	}
	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = room
			return c.SaveRooms(ctx, rooms)
		}
	}
	return quiz.ErrRoomNotFound
}

// Login checks the presenter credential. The resulting session flag is
// the caller's to keep; nothing server-side is created.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.post(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, method, path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return nil
}
