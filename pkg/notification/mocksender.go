package notification

import (
	"context"
	"sync"
)

// MockSender records messages instead of delivering them. Test use only.
type MockSender struct {
	mu   sync.Mutex
	Err  error // returned by Send when non-nil
	Sent []Message
}

func (m *MockSender) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Last returns the most recently sent message, or false when nothing
// was sent.
func (m *MockSender) Last() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
