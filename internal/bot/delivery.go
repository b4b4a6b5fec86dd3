package bot

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
)

// ErrDelivery wraps any transport failure while uploading the artifact.
var ErrDelivery = errors.New("bot: attachment upload failed")

// Target identifies the chat and the transient status message a job reports
// into. It is created per job and passed explicitly, never captured from
// ambient handler state.
type Target struct {
	ChatID    int64
	MessageID int
}

// Pipeline uploads finished artifacts and manages the status-message
// transitions around the upload.
type Pipeline struct {
	api client
}

// NewPipeline creates a delivery pipeline on top of the chat transport.
func NewPipeline(api client) *Pipeline {
	return &Pipeline{api: api}
}

// Deliver streams the job's artifact into the chat as an audio or video
// attachment, then deletes the transient status message. The artifact file
// is left in place; cleanup belongs to the jobs manager. On failure the
// status message survives so the caller can edit it into an error report.
func (p *Pipeline) Deliver(job *models.Job, target Target) error {
	if job.Status != models.StatusSizeOK {
		return fmt.Errorf("%w: job %s not ready for upload (status %s)", ErrDelivery, job.ID, job.Status)
	}

	job.Status = models.StatusUploading
	if _, err := p.api.Send(tgbotapi.NewEditMessageText(target.ChatID, target.MessageID, msgUploading)); err != nil {
		// Expected when the text did not change; never worth failing the job.
		log.Printf("Could not edit status message: %v", err)
	}

	file, err := os.Open(job.ResolvedPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer file.Close()

	attachment := tgbotapi.FileReader{
		Name:   filepath.Base(job.ResolvedPath),
		Reader: file,
	}

	var upload tgbotapi.Chattable
	if job.Format == models.FormatAudio {
		audio := tgbotapi.NewAudio(target.ChatID, attachment)
		audio.Caption = job.Title
		upload = audio
	} else {
		video := tgbotapi.NewVideo(target.ChatID, attachment)
		video.Caption = job.Title
		upload = video
	}

	if _, err := p.api.Send(upload); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if _, err := p.api.Request(tgbotapi.NewDeleteMessage(target.ChatID, target.MessageID)); err != nil {
		log.Printf("Could not delete status message: %v", err)
	}

	job.Status = models.StatusDelivered
	return nil
}
