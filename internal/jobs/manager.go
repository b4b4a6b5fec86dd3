package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/config"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/downloader"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/progress"
)

var (
	// ErrBusy is returned when no worker slot frees up in time.
	ErrBusy = errors.New("jobs: server busy")

	// ErrUnknown wraps an unanticipated fault inside a job.
	ErrUnknown = errors.New("jobs: unexpected failure")
)

// DeliverFunc sends a finished artifact to the user.
type DeliverFunc func(job *models.Job) error

// Manager runs download jobs on a bounded worker pool and guarantees that
// every job's artifact is removed exactly once, on every exit path.
type Manager struct {
	orc            *downloader.Orchestrator
	jobs           sync.Map
	queue          chan struct{}
	acquireTimeout time.Duration
}

// NewManager creates a manager bounded by cfg.MaxConcurrentJobs.
func NewManager(orc *downloader.Orchestrator, cfg *config.Config) *Manager {
	return &Manager{
		orc:            orc,
		queue:          make(chan struct{}, cfg.MaxConcurrentJobs),
		acquireTimeout: 10 * time.Second,
	}
}

// Get returns an active job by ID.
func (m *Manager) Get(id string) (*models.Job, bool) {
	val, ok := m.jobs.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*models.Job), true
}

// Run executes one job to a terminal state: fetch, size check, delivery,
// cleanup. It blocks until the job is done and returns the error that should
// be surfaced to the user, or nil on successful delivery. The artifact is
// removed before Run returns regardless of outcome, including a panic inside
// delivery.
func (m *Manager) Run(ctx context.Context, url string, format models.Format, hook progress.Hook, deliver DeliverFunc) (err error) {
	select {
	case m.queue <- struct{}{}:
		defer func() { <-m.queue }()
	case <-time.After(m.acquireTimeout):
		return ErrBusy
	}

	job, startErr := m.orc.Start(ctx, url, format, hook)
	m.jobs.Store(job.ID, job)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Job %s: recovered from panic: %v", job.ID, r)
			job.Status = models.StatusFailed
			err = fmt.Errorf("%w: %v", ErrUnknown, r)
		}
		m.cleanup(job)
	}()

	if startErr != nil {
		log.Printf("Job %s failed: %v", job.ID, startErr)
		return startErr
	}

	if deliverErr := deliver(job); deliverErr != nil {
		log.Printf("Job %s delivery failed: %v", job.ID, deliverErr)
		job.Status = models.StatusFailed
		return deliverErr
	}

	return nil
}

// cleanup removes the job's artifact and retires the in-memory record.
// Deletion failures are logged, never escalated; the job always reaches
// the cleaned state.
func (m *Manager) cleanup(job *models.Job) {
	defer m.jobs.Delete(job.ID)

	if job.Status == models.StatusCleaned {
		return
	}

	if job.ResolvedPath != "" {
		if err := os.Remove(job.ResolvedPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Error deleting file %s: %v", job.ResolvedPath, err)
		} else {
			log.Printf("🧹 Cleaned up file: %s", job.ResolvedPath)
		}
	}

	job.Status = models.StatusCleaned
}
