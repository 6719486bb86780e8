package conversation

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoryKeepsArrivalOrder(t *testing.T) {
	m := New()
	const n = 25
	for i := 0; i < n; i++ {
		m.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}
	if m.Len() != n {
		t.Fatalf("Len = %d, want %d", m.Len(), n)
	}
	turns := m.Turns()
	for i, turn := range turns {
		if turn.Question != fmt.Sprintf("q%d", i) || turn.Answer != fmt.Sprintf("a%d", i) {
			t.Fatalf("turn %d = %+v", i, turn)
		}
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	m := New()
	m.Append("q", "a")
	snapshot := m.Turns()
	snapshot[0].Answer = "changed"
	m.Append("q2", "a2")

	turns := m.Turns()
	if turns[0].Answer != "a" {
		t.Errorf("earlier turn mutated: %+v", turns[0])
	}
	if len(snapshot) != 1 {
		t.Errorf("snapshot grew to %d", len(snapshot))
	}
}

func TestMemoryConcurrentAppend(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Append(fmt.Sprint(i), "")
			_ = m.Turns()
		}(i)
	}
	wg.Wait()
	if m.Len() != 50 {
		t.Fatalf("Len = %d", m.Len())
	}
}
