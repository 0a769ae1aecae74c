package testutil

import (
	"sync"
)

// Recorder is a visitor that remembers every value it was called with.
type Recorder struct {
	mu     sync.Mutex
	values []string
}

// Visit records name. Its signature matches ingredient.Visitor.
func (r *Recorder) Visit(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, name)
}

// Values returns a copy of the recorded values in call order.
func (r *Recorder) Values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Reset forgets all recorded values.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
}
