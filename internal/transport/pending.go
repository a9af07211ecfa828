package transport

import (
	"sync"

	"github.com/docustore/admin-console/internal/metrics"
)

// PendingCounter tracks in-flight API requests. Show marks a dispatch and
// Hide a completion; Loading is true while anything is outstanding. Hide is
// safe to call more often than Show; the counter floors at zero.
type PendingCounter struct {
	mu sync.Mutex
	n  int
}

// Show records the dispatch of a tracked request.
func (p *PendingCounter) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	metrics.RequestsInFlight.Inc()
}

// Hide records the completion of a tracked request, success or failure.
func (p *PendingCounter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.n == 0 {
		return
	}
	p.n--
	metrics.RequestsInFlight.Dec()
}

// Loading reports whether any tracked request is still in flight.
func (p *PendingCounter) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n > 0
}

// Count returns the current number of in-flight requests.
func (p *PendingCounter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}
