package models

import "fmt"

// Status represents the state of a download job.
type Status string

const (
	// StatusCreated means the job exists but the fetch has not started.
	StatusCreated Status = "created"

	// StatusDownloading means the fetch engine is running.
	StatusDownloading Status = "downloading"

	// StatusDownloaded means the engine finished and the artifact was resolved.
	StatusDownloaded Status = "downloaded"

	// StatusSizeOK means the artifact passed the post-fetch size check.
	StatusSizeOK Status = "size_ok"

	// StatusTooLarge means the artifact exceeded the size ceiling.
	StatusTooLarge Status = "too_large"

	// StatusUploading means the artifact is being sent through the transport.
	StatusUploading Status = "uploading"

	// StatusDelivered means the artifact reached the user.
	StatusDelivered Status = "delivered"

	// StatusFailed means the job terminated with an error.
	StatusFailed Status = "failed"

	// StatusCleaned means the artifact was removed; nothing further happens.
	StatusCleaned Status = "cleaned"
)

// String returns the string representation of Status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions occur from s,
// other than the final move to StatusCleaned.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCleaned
}

// Format selects what the user asked the engine to produce.
type Format string

const (
	// FormatVideo requests a merged video+audio file.
	FormatVideo Format = "video"

	// FormatAudio requests an audio-only file transcoded to mp3.
	FormatAudio Format = "audio"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatVideo:
		return FormatVideo, nil
	case FormatAudio:
		return FormatAudio, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Ext returns the expected file extension for the format.
func (f Format) Ext() string {
	if f == FormatAudio {
		return ".mp3"
	}
	return ".mp4"
}
