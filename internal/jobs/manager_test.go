package jobs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/config"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/downloader"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/progress"
)

type stubEngine struct {
	fetchAudio func(req downloader.AudioRequest) (*downloader.Result, error)
}

func (s *stubEngine) FetchAudio(_ context.Context, req downloader.AudioRequest, _ progress.Hook) (*downloader.Result, error) {
	return s.fetchAudio(req)
}

func (s *stubEngine) FetchVideo(_ context.Context, _ downloader.VideoRequest, _ progress.Hook) (*downloader.Result, error) {
	return nil, errors.New("unexpected video fetch")
}

func newTestManager(t *testing.T, engine downloader.Engine, maxSize int64) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		BotToken:          "test-token",
		DownloadDir:       dir,
		MaxFileSizeMB:     49,
		MaxConcurrentJobs: 1,
		CleanupAfter:      time.Hour,
	}
	orc := downloader.NewOrchestrator(engine, dir, maxSize)
	return NewManager(orc, cfg), dir
}

func artifactEngine(t *testing.T, title string, size int) *stubEngine {
	t.Helper()
	return &stubEngine{
		fetchAudio: func(req downloader.AudioRequest) (*downloader.Result, error) {
			require.NoError(t, os.WriteFile(req.OutputPath, make([]byte, size), 0644))
			return &downloader.Result{Title: title, Path: req.OutputPath}, nil
		},
	}
}

func TestRunDeliversOnceAndCleansUp(t *testing.T) {
	m, _ := newTestManager(t, artifactEngine(t, "Test Song", 2*1024*1024), 49*1024*1024)

	var delivered []*models.Job
	var statusAtDelivery models.Status
	var path string
	err := m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(job *models.Job) error {
		delivered = append(delivered, job)
		statusAtDelivery = job.Status
		path = job.ResolvedPath

		active, ok := m.Get(job.ID)
		assert.True(t, ok, "job must be registered while in flight")
		assert.Same(t, job, active)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "Test Song", delivered[0].Title)
	assert.Equal(t, models.StatusSizeOK, statusAtDelivery, "delivery must see a size-checked job")
	assert.Equal(t, models.StatusCleaned, delivered[0].Status)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "artifact must be removed after delivery")

	_, ok := m.Get(delivered[0].ID)
	assert.False(t, ok, "cleaned jobs leave the registry")
}

func TestRunSizeLimitSkipsDelivery(t *testing.T) {
	m, _ := newTestManager(t, artifactEngine(t, "Big One", 4096), 1024)

	deliveries := 0
	err := m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(job *models.Job) error {
		deliveries++
		return nil
	})

	assert.ErrorIs(t, err, downloader.ErrFileTooLarge)
	assert.Zero(t, deliveries, "oversize artifact must never reach delivery")
}

func TestRunAlwaysRemovesArtifact(t *testing.T) {
	tests := []struct {
		name    string
		ceiling int64
		deliver DeliverFunc
		wantErr error
	}{
		{
			name:    "delivery failure",
			ceiling: 49 * 1024 * 1024,
			deliver: func(job *models.Job) error { return errors.New("transport down") },
		},
		{
			name:    "size violation",
			ceiling: 16,
			deliver: func(job *models.Job) error { return nil },
			wantErr: downloader.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, dir := newTestManager(t, artifactEngine(t, "X", 1024), tt.ceiling)

			var seen *models.Job
			err := m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(job *models.Job) error {
				seen = job
				return tt.deliver(job)
			})

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if seen != nil {
				assert.Equal(t, models.StatusCleaned, seen.Status)
				_, statErr := os.Stat(seen.ResolvedPath)
				assert.True(t, os.IsNotExist(statErr))
			}

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "scratch directory must be empty after the job terminates")
		})
	}
}

func TestRunRecoversPanicInDelivery(t *testing.T) {
	m, _ := newTestManager(t, artifactEngine(t, "Boom", 1024), 49*1024*1024)

	var job *models.Job
	err := m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(j *models.Job) error {
		job = j
		panic("delivery exploded")
	})

	assert.ErrorIs(t, err, ErrUnknown)
	require.NotNil(t, job)
	assert.Equal(t, models.StatusCleaned, job.Status)
	_, statErr := os.Stat(job.ResolvedPath)
	assert.True(t, os.IsNotExist(statErr), "cleanup must survive a panic in delivery")
}

func TestRunReturnsBusyWhenPoolIsFull(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	engine := &stubEngine{
		fetchAudio: func(req downloader.AudioRequest) (*downloader.Result, error) {
			close(entered)
			<-release
			require.NoError(t, os.WriteFile(req.OutputPath, make([]byte, 16), 0644))
			return &downloader.Result{Path: req.OutputPath}, nil
		},
	}
	m, _ := newTestManager(t, engine, 49*1024*1024)
	m.acquireTimeout = 50 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(job *models.Job) error {
			return nil
		})
	}()
	<-entered

	err := m.Run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", models.FormatAudio, nil, func(job *models.Job) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := dir + "/stale.mp4"
	fresh := dir + "/fresh.mp4"
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed := sweep(dir, time.Hour)

	assert.Equal(t, 1, removed)
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
