package downloader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/progress"
)

const (
	audioSelector = "bestaudio/best"
	audioCodec    = "mp3"
	audioBitrate  = "192K"

	videoContainer = "mp4"

	// DefaultTitle is used when the engine reports no title.
	DefaultTitle = "YouTube Download"
)

// Orchestrator turns a validated link and a format choice into a local
// artifact: it drives the fetch engine, resolves the real output path, and
// enforces the size ceiling. It never deletes artifacts itself; the jobs
// manager owns cleanup so the file survives until after delivery.
type Orchestrator struct {
	engine  Engine
	dir     string
	maxSize int64
}

// NewOrchestrator creates an orchestrator writing into dir with the given
// size ceiling in bytes.
func NewOrchestrator(engine Engine, dir string, maxSize int64) *Orchestrator {
	return &Orchestrator{
		engine:  engine,
		dir:     dir,
		maxSize: maxSize,
	}
}

// Start runs one fetch to completion. The returned job is always non-nil;
// on error it still carries whatever ResolvedPath was determined, so the
// caller can remove the file.
func (o *Orchestrator) Start(ctx context.Context, url string, format models.Format, hook progress.Hook) (*models.Job, error) {
	if err := os.MkdirAll(o.dir, 0755); err != nil {
		job := models.NewJob(url, format, o.dir)
		job.Status = models.StatusFailed
		return job, fmt.Errorf("prepare scratch directory: %w", err)
	}

	job := models.NewJob(url, format, o.dir)
	job.Status = models.StatusDownloading

	res, err := o.fetch(ctx, job, hook)
	if err != nil {
		job.Status = models.StatusFailed
		return job, classifyEngineError(err)
	}
	job.Status = models.StatusDownloaded

	resolved, err := o.resolveArtifact(job, res.Path)
	if err != nil {
		job.Status = models.StatusFailed
		return job, err
	}
	job.ResolvedPath = resolved
	log.Printf("Download finished. File tentatively at: %s", resolved)

	info, err := os.Stat(resolved)
	if err != nil {
		job.Status = models.StatusFailed
		return job, fmt.Errorf("%w: %s", ErrArtifactNotFound, resolved)
	}
	job.Size = info.Size()

	if job.Size > o.maxSize {
		job.Status = models.StatusTooLarge
		return job, fmt.Errorf("%w: %d bytes over a %d byte limit", ErrFileTooLarge, job.Size, o.maxSize)
	}
	job.Status = models.StatusSizeOK

	job.Title = res.Title
	if job.Title == "" {
		job.Title = DefaultTitle
	}

	return job, nil
}

func (o *Orchestrator) fetch(ctx context.Context, job *models.Job, hook progress.Hook) (*Result, error) {
	switch job.Format {
	case models.FormatAudio:
		return o.engine.FetchAudio(ctx, AudioRequest{
			URL:        job.SourceURL,
			OutputPath: job.OutputTemplate,
			Selector:   audioSelector,
			SizeHint:   o.maxSize,
			Codec:      audioCodec,
			Bitrate:    audioBitrate,
		}, hook)
	default:
		return o.engine.FetchVideo(ctx, VideoRequest{
			URL:            job.SourceURL,
			OutputTemplate: job.OutputTemplate,
			Selector:       videoSelector(o.maxSize),
			SizeHint:       o.maxSize,
			Container:      videoContainer,
		}, hook)
	}
}

// videoSelector builds the format ladder: merged mp4 streams under the
// ceiling, falling back to the best single mp4 stream under the ceiling.
// The filters are advisory; the merged result can still land over the limit.
func videoSelector(limit int64) string {
	return fmt.Sprintf(
		"bestvideo[ext=mp4][filesize<%d]+bestaudio[ext=m4a][filesize<%d]/best[ext=mp4][filesize<%d]/mp4[filesize<%d]",
		limit, limit, limit, limit)
}

// resolveArtifact locates the real output file. The engine's reported path
// can be stale after post-processing changes the extension, so it falls back
// to the predicted path and finally to a scratch-directory scan by job ID.
// The scan is a last resort, not a guarantee.
func (o *Orchestrator) resolveArtifact(job *models.Job, reported string) (string, error) {
	if reported != "" {
		if _, err := os.Stat(reported); err == nil {
			return reported, nil
		}
	}

	if _, err := os.Stat(job.PredictedPath); err == nil {
		return job.PredictedPath, nil
	}

	entries, err := os.ReadDir(o.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArtifactNotFound, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), job.ID) {
			return filepath.Join(o.dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("%w: no file for job %s", ErrArtifactNotFound, job.ID)
}
