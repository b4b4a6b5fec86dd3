package pending

import (
	"errors"
	"sync"
	"time"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
)

// ErrNoPending is returned when a user has no stored request, e.g. a format
// button pressed without a prior link, or pressed twice.
var ErrNoPending = errors.New("pending: no request for user")

// Store keeps at most one pending request per user while the user decides on
// a format. A new Set replaces any previous entry (last write wins, no queue).
type Store struct {
	mu       sync.Mutex
	requests map[int64]models.PendingRequest
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		requests: make(map[int64]models.PendingRequest),
	}
}

// Set stores url for userID, replacing any existing entry.
func (s *Store) Set(userID int64, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests[userID] = models.PendingRequest{
		UserID:    userID,
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// TakeAndClear returns the stored url for userID and deletes it in one
// indivisible operation, so two concurrent format selections can never both
// observe the same request.
func (s *Store) TakeAndClear(userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[userID]
	if !ok {
		return "", ErrNoPending
	}
	delete(s.requests, userID)
	return req.URL, nil
}

// Len returns the number of users with a pending request.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
