package downloader

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/progress"
)

// AudioRequest configures an audio-only fetch: best available audio stream,
// transcoded to a fixed lossy codec at a fixed bitrate.
type AudioRequest struct {
	URL        string
	OutputPath string
	Selector   string
	SizeHint   int64
	Codec      string
	Bitrate    string
}

// VideoRequest configures a combined video+audio fetch merged into a single
// container. Selector carries the full format-selection expression; the
// engine treats it as opaque.
type VideoRequest struct {
	URL            string
	OutputTemplate string
	Selector       string
	SizeHint       int64
	Container      string
}

// Result is the metadata the engine reports after a successful fetch.
// Path may be empty or stale (post-processing can change the extension);
// callers must verify it against the filesystem.
type Result struct {
	Title     string
	Path      string
	Ext       string
	Thumbnail string
}

// Engine abstracts the external fetch engine. Calls are synchronous and may
// block from seconds to minutes.
type Engine interface {
	FetchAudio(ctx context.Context, req AudioRequest, hook progress.Hook) (*Result, error)
	FetchVideo(ctx context.Context, req VideoRequest, hook progress.Hook) (*Result, error)
}

// YTDLPEngine drives the yt-dlp binary through go-ytdlp.
type YTDLPEngine struct {
	progressInterval time.Duration
}

// NewYTDLPEngine creates an engine with the default progress tick rate.
func NewYTDLPEngine() *YTDLPEngine {
	return &YTDLPEngine{progressInterval: 500 * time.Millisecond}
}

// FetchAudio downloads the best audio stream and transcodes it.
func (e *YTDLPEngine) FetchAudio(ctx context.Context, req AudioRequest, hook progress.Hook) (*Result, error) {
	dl := ytdlp.New().
		NoPlaylist().
		Format(req.Selector).
		ExtractAudio().
		AudioFormat(req.Codec).
		AudioQuality(req.Bitrate).
		Output(req.OutputPath)

	if req.SizeHint > 0 {
		dl = dl.MaxFileSize(strconv.FormatInt(req.SizeHint, 10))
	}

	return e.run(ctx, dl, req.URL, hook)
}

// FetchVideo downloads and merges the selected streams into one container.
func (e *YTDLPEngine) FetchVideo(ctx context.Context, req VideoRequest, hook progress.Hook) (*Result, error) {
	dl := ytdlp.New().
		NoPlaylist().
		Format(req.Selector).
		MergeOutputFormat(req.Container).
		Output(req.OutputTemplate)

	if req.SizeHint > 0 {
		dl = dl.MaxFileSize(strconv.FormatInt(req.SizeHint, 10))
	}

	return e.run(ctx, dl, req.URL, hook)
}

func (e *YTDLPEngine) run(ctx context.Context, dl *ytdlp.Command, url string, hook progress.Hook) (*Result, error) {
	if hook != nil {
		dl.ProgressFunc(e.progressInterval, func(update ytdlp.ProgressUpdate) {
			hook.Update(toEvent(update))
		})
	}

	res, err := dl.Run(ctx, url)
	if err != nil {
		if hook != nil {
			hook.Update(progress.Event{Status: progress.StatusError, Filename: url})
		}
		return nil, err
	}

	out := &Result{}
	if res != nil {
		if infos, infoErr := res.GetExtractedInfo(); infoErr == nil && len(infos) > 0 {
			info := infos[0]
			if info.Title != nil {
				out.Title = *info.Title
			}
			if info.Filename != nil {
				out.Path = *info.Filename
			}
			if info.Extension != "" {
				out.Ext = info.Extension
			}
			if info.Thumbnail != nil {
				out.Thumbnail = *info.Thumbnail
			}
		}
	}

	if hook != nil {
		hook.Update(progress.Event{
			Status:   progress.StatusFinished,
			Percent:  100,
			Filename: out.Path,
		})
	}

	return out, nil
}

// toEvent converts a yt-dlp progress tick into a transport-agnostic event.
func toEvent(update ytdlp.ProgressUpdate) progress.Event {
	ev := progress.Event{
		Status:   progress.StatusDownloading,
		Filename: update.Filename,
	}

	if update.TotalBytes > 0 {
		ev.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}
	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			ev.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}
	if eta := update.ETA(); eta > 0 {
		ev.ETA = eta
	}

	return ev
}
