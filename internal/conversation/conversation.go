// Package conversation keeps the question/answer history of a chat session.
package conversation

import (
	"sync"

	"ragchat/internal/domain"
)

// Memory is an append-only, ordered list of turns. It lives for the process
// lifetime and is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	turns []domain.Turn
}

func New() *Memory {
	return &Memory{}
}

func (m *Memory) Append(question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, domain.Turn{Question: question, Answer: answer})
}

// Turns returns a copy of the history in arrival order.
func (m *Memory) Turns() []domain.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}
