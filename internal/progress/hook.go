package progress

import (
	"log"
	"sync"
	"time"
)

// Status is the kind of event reported by the fetch engine.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusFinished    Status = "finished"
	StatusError       Status = "error"
)

// Event is one progress report from the fetch engine.
type Event struct {
	Status   Status
	Percent  float64
	Speed    string
	ETA      time.Duration
	Filename string
}

// Hook receives progress events. Implementations must tolerate being called
// at the engine's native tick rate; anything that talks to a rate-limited
// transport should sit behind Throttled.
type Hook interface {
	Update(Event)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(Event)

// Update calls f(e).
func (f HookFunc) Update(e Event) {
	f(e)
}

// LogHook logs finished and error events and drops downloading ticks.
// Editing a chat message on every tick risks transport rate limits, so the
// default reporter stays quiet during the download itself.
type LogHook struct {
	Logger *log.Logger
}

// Update handles one event.
func (h LogHook) Update(e Event) {
	logger := h.Logger
	if logger == nil {
		logger = log.Default()
	}

	switch e.Status {
	case StatusFinished:
		logger.Printf("Finished downloading %s, now post-processing or checking...", e.Filename)
	case StatusError:
		logger.Printf("Engine reported an error during download: %s", e.Filename)
	}
}

// Throttled forwards downloading events to the wrapped hook at most once per
// interval. Finished and error events always pass through. It lets a future
// hook edit a status message live without changing the engine call site.
type Throttled struct {
	next     Hook
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottled wraps next with a per-interval limit on downloading events.
func NewThrottled(next Hook, interval time.Duration) *Throttled {
	return &Throttled{next: next, interval: interval}
}

// Update forwards e, suppressing downloading ticks inside the interval.
func (t *Throttled) Update(e Event) {
	if e.Status != StatusDownloading {
		t.next.Update(e)
		return
	}

	t.mu.Lock()
	now := time.Now()
	if now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()

	t.next.Update(e)
}
