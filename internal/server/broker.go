package server

import (
	"encoding/json"
	"sync"
	"time"
)

// ChangeEvent announces that the shared document was replaced. Clients
// on the SSE feed use it as a hint to poll immediately instead of
// waiting out their interval; the polling contract itself is unchanged.
type ChangeEvent struct {
	Type        string    `json:"type"`
	Rooms       int       `json:"rooms"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Broker is an in-process pub/sub for document change events. There is
// a single shared document, so there is a single topic.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan []byte]struct{})}
}

// Subscribe returns a channel receiving JSON-encoded change events.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish fans an event out to every subscriber.
func (b *Broker) Publish(event ChangeEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
