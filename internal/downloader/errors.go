package downloader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileTooLarge means the artifact exceeds the upload ceiling, either
	// reported by the engine mid-fetch or caught by the post-fetch check.
	ErrFileTooLarge = errors.New("file exceeds the maximum size")

	// ErrSourceUnavailable means the video cannot be fetched at all.
	ErrSourceUnavailable = errors.New("video unavailable")

	// ErrSourcePrivate means the video exists but is private.
	ErrSourcePrivate = errors.New("video is private")

	// ErrNotYetAvailable means a premiere or live stream has not finished.
	ErrNotYetAvailable = errors.New("premiere or live stream not finished yet")

	// ErrArtifactNotFound means the engine reported success but no output
	// file could be located in the scratch directory.
	ErrArtifactNotFound = errors.New("downloaded file not found")
)

// classifyEngineError maps raw engine output to one of the sentinel
// categories by matching known substrings of yt-dlp's error text. The
// wording coupling is fragile, which is why this is the single place the
// matching happens; swap it out if the engine ever exposes structured codes.
func classifyEngineError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "File is larger than max-filesize"):
		return fmt.Errorf("%w: %s", ErrFileTooLarge, msg)
	case strings.Contains(msg, "Video unavailable"):
		return fmt.Errorf("%w: %s", ErrSourceUnavailable, msg)
	case strings.Contains(msg, "Private video"):
		return fmt.Errorf("%w: %s", ErrSourcePrivate, msg)
	case strings.Contains(msg, "Premiere"), strings.Contains(msg, "live event"):
		return fmt.Errorf("%w: %s", ErrNotYetAvailable, msg)
	default:
		return fmt.Errorf("download failed: %w", err)
	}
}
