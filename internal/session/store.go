// Package session owns the conversation identity and ordered message history
// for one assistant instance. History lives in memory only and is never
// persisted across restarts.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

var ErrEmptyMessage = errors.New("message text is empty")

// Message is a single conversational turn. Immutable once appended.
type Message struct {
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps the session identifier and append-only message history.
type Store struct {
	mu      sync.RWMutex
	id      string
	history []Message
}

// NewStore creates a store with a fresh session identifier. The identifier
// combines a millisecond timestamp with a random suffix; uniqueness within
// the process is all that is required.
func NewStore() *Store {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return &Store{
		id: fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix),
	}
}

func (s *Store) ID() string {
	return s.id
}

// Append validates and adds a message to the end of the history. Validation
// happens before any mutation: a whitespace-only content fails with
// ErrEmptyMessage and leaves the history untouched.
func (s *Store) Append(sender, content string) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}

	msg := Message{
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
	return msg, nil
}

// RecentWindow returns the last n messages in original order. If the history
// holds fewer than n messages, all of them are returned.
func (s *Store) RecentWindow(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.history) == 0 {
		return nil
	}
	if n > len(s.history) {
		n = len(s.history)
	}
	out := make([]Message, n)
	copy(out, s.history[len(s.history)-n:])
	return out
}

// History returns a copy of the full message history in insertion order.
func (s *Store) History() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}
