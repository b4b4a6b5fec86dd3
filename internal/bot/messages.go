package bot

import (
	"errors"
	"fmt"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/downloader"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/jobs"
)

const (
	msgChooseFormat = "Choose download format:"
	msgUploading    = "⬆️ Uploading to Telegram..."

	msgUsage = "Please provide a YouTube link after the command.\n" +
		"Example: `/download https://youtu.be/dQw4w9WgXcQ`"
	msgInvalidURL = "Hmm, that doesn't look like a valid YouTube URL. Please try again."
	msgNoPending  = "Error: Could not find the URL to download. Please try the /download command again."

	msgErrUnavailable  = "❌ Error: This video is unavailable."
	msgErrPrivate      = "❌ Error: This video is private."
	msgErrNotYet       = "❌ Error: Livestreams/premieres that haven't finished cannot be downloaded yet."
	msgErrFileNotFound = "❌ Error: Could not find the downloaded file on the server."
	msgErrBusy         = "❌ Error: The bot is busy right now. Please try again in a moment."
	msgErrDelivery     = "❌ Error: Could not upload the file to Telegram. Please try again."
	msgErrUnexpected   = "❌ An unexpected error occurred."
)

func helpText(maxSizeMB int) string {
	return fmt.Sprintf(
		"🤖 **YouTube Downloader Bot**\n\n"+
			"Send me a YouTube link and I'll help you download it!\n\n"+
			"**How to use:**\n"+
			"1. Use the command `/download <youtube_link>`\n"+
			"   Example: `/download https://www.youtube.com/watch?v=dQw4w9WgXcQ`\n"+
			"2. I will ask you to choose the format (MP4 Video or MP3 Audio).\n"+
			"3. Select the format and I'll start downloading.\n\n"+
			"**Note:**\n"+
			"🔹 Downloads are limited to **%d MB** due to Telegram restrictions.\n"+
			"🔹 Make sure `ffmpeg` is installed on the server for audio conversion.",
		maxSizeMB)
}

// errorText maps a job's terminal error to the short categorized message
// shown to the user. Internal detail stays in the logs.
func errorText(err error, maxSizeMB int) string {
	switch {
	case errors.Is(err, downloader.ErrFileTooLarge):
		return fmt.Sprintf("❌ Error: File is larger than the %d MB limit allowed by the bot.", maxSizeMB)
	case errors.Is(err, downloader.ErrSourceUnavailable):
		return msgErrUnavailable
	case errors.Is(err, downloader.ErrSourcePrivate):
		return msgErrPrivate
	case errors.Is(err, downloader.ErrNotYetAvailable):
		return msgErrNotYet
	case errors.Is(err, downloader.ErrArtifactNotFound):
		return msgErrFileNotFound
	case errors.Is(err, jobs.ErrBusy):
		return msgErrBusy
	case errors.Is(err, ErrDelivery):
		return msgErrDelivery
	default:
		return msgErrUnexpected
	}
}
