package notify

import (
	"context"
	"sync"
)

// RecordingSender captures messages instead of delivering them. Tests
// across packages use it to assert on notification side effects.
type RecordingSender struct {
	mu       sync.Mutex
	Err      error
	messages []Message
}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

func (s *RecordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *RecordingSender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
