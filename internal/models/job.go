package models

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Job holds the full state of one fetch-and-deliver request. The ID doubles
// as the filename stem for every artifact the job produces, so two jobs can
// never collide inside the shared scratch directory.
type Job struct {
	ID             string
	SourceURL      string
	Format         Format
	OutputDir      string
	OutputTemplate string
	PredictedPath  string
	ResolvedPath   string
	Size           int64
	Title          string
	Status         Status
	CreatedAt      time.Time
}

// NewJob creates a job with a fresh unique ID and output paths scoped to dir.
// Audio jobs get a fixed .mp3 output path (the transcode pins the extension);
// video jobs get an engine template plus the predicted .mp4 path.
func NewJob(url string, format Format, dir string) *Job {
	id := uuid.New().String()
	job := &Job{
		ID:        id,
		SourceURL: url,
		Format:    format,
		OutputDir: dir,
		Status:    StatusCreated,
		CreatedAt: time.Now(),
	}

	switch format {
	case FormatAudio:
		job.OutputTemplate = filepath.Join(dir, id+".mp3")
		job.PredictedPath = job.OutputTemplate
	default:
		job.OutputTemplate = filepath.Join(dir, id+".%(ext)s")
		job.PredictedPath = filepath.Join(dir, id+".mp4")
	}

	return job
}

// PendingRequest is a stored link awaiting the user's format choice.
// One per user; a new request replaces any previous one.
type PendingRequest struct {
	UserID    int64
	URL       string
	CreatedAt time.Time
}
