package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewStoreGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := NewStore()
		if !strings.HasPrefix(s.ID(), "session_") {
			t.Fatalf("ID = %q, want session_ prefix", s.ID())
		}
		if seen[s.ID()] {
			t.Fatalf("duplicate session ID %q", s.ID())
		}
		seen[s.ID()] = true
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		if _, err := s.Append(SenderUser, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	history := s.History()
	if len(history) != 5 {
		t.Fatalf("len(history) = %d, want 5", len(history))
	}
	for i, msg := range history {
		if msg.Content != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("history[%d].Content = %q, want msg-%d", i, msg.Content, i)
		}
	}
}

func TestAppendRejectsWhitespaceOnly(t *testing.T) {
	s := NewStore()
	if _, err := s.Append(SenderUser, "привет"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := s.Append(SenderUser, content)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("Append(%q) error = %v, want ErrEmptyMessage", content, err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after rejected appends, want 1", s.Len())
	}
}

func TestRecentWindowReturnsLastNInOrder(t *testing.T) {
	s := NewStore()
	for i := 0; i < 15; i++ {
		if _, err := s.Append(SenderUser, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	window := s.RecentWindow(10)
	if len(window) != 10 {
		t.Fatalf("len(window) = %d, want 10", len(window))
	}
	for i, msg := range window {
		want := fmt.Sprintf("msg-%d", i+5)
		if msg.Content != want {
			t.Fatalf("window[%d].Content = %q, want %q", i, msg.Content, want)
		}
	}
}

func TestRecentWindowShorterHistory(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		if _, err := s.Append(SenderAssistant, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if got := len(s.RecentWindow(10)); got != 3 {
		t.Fatalf("len(RecentWindow(10)) = %d, want 3", got)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	if _, err := s.Append(SenderUser, "original"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	history := s.History()
	history[0].Content = "mutated"

	if got := s.History()[0].Content; got != "original" {
		t.Fatalf("History()[0].Content = %q, want %q", got, "original")
	}
}
