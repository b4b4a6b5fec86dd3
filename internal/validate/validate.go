package validate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/kkdai/youtube/v2"
)

// ErrInvalidURL is returned for links that are not recognized YouTube URLs.
var ErrInvalidURL = errors.New("validate: not a supported YouTube link")

// youtubeURL matches the common long- and short-form YouTube link patterns
// (watch, embed, v, youtu.be, nocookie) followed by an 11-character video ID.
var youtubeURL = regexp.MustCompile(
	`^(https?://)?(www\.)?` +
		`(youtube|youtu|youtube-nocookie)\.(com|be)/` +
		`(watch\?v=|embed/|v/|.+\?v=)?([^&=%?]{11})`)

// VideoID checks that rawURL points at a YouTube video and returns the
// canonical 11-character video ID.
func VideoID(rawURL string) (string, error) {
	if !youtubeURL.MatchString(rawURL) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return id, nil
}

// IsValid reports whether rawURL is a recognized YouTube link.
func IsValid(rawURL string) bool {
	_, err := VideoID(rawURL)
	return err == nil
}
