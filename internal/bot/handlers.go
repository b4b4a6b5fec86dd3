package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/config"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/jobs"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/models"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/pending"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/progress"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/validate"
)

const (
	callbackHelp  = "help_info"
	callbackVideo = "download_video"
	callbackAudio = "download_audio"
)

// client is the slice of the Telegram API the bot needs. *tgbotapi.BotAPI
// satisfies it.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot wires the chat transport to the pending store and the jobs manager.
type Bot struct {
	api      client
	cfg      *config.Config
	pending  *pending.Store
	manager  *jobs.Manager
	pipeline *Pipeline
}

// New creates the bot front end.
func New(api client, cfg *config.Config, store *pending.Store, manager *jobs.Manager) *Bot {
	return &Bot{
		api:      api,
		cfg:      cfg,
		pending:  store,
		manager:  manager,
		pipeline: NewPipeline(api),
	}
}

// Run consumes updates until the channel closes, one goroutine per update.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.reply(msg.Chat.ID, helpText(b.cfg.MaxFileSizeMB), tgbotapi.ModeMarkdown)
	case "download":
		b.handleDownload(msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	greeting := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Hi %s! 👋", msg.From.FirstName))
	greeting.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("How to use?", callbackHelp),
		),
	)
	if _, err := b.api.Send(greeting); err != nil {
		log.Printf("Could not send greeting: %v", err)
	}
	b.reply(msg.Chat.ID, helpText(b.cfg.MaxFileSizeMB), tgbotapi.ModeMarkdown)
}

// handleDownload validates the link and asks for a format. The URL is parked
// in the pending store until the user picks; a second /download before that
// simply overwrites it.
func (b *Bot) handleDownload(msg *tgbotapi.Message) {
	url := strings.TrimSpace(msg.CommandArguments())
	if url == "" {
		b.reply(msg.Chat.ID, msgUsage, tgbotapi.ModeMarkdown)
		return
	}

	if _, err := validate.VideoID(url); err != nil {
		b.reply(msg.Chat.ID, msgInvalidURL, "")
		return
	}

	b.pending.Set(msg.From.ID, url)

	prompt := tgbotapi.NewMessage(msg.Chat.ID, msgChooseFormat)
	prompt.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Video (MP4)", callbackVideo),
			tgbotapi.NewInlineKeyboardButtonData("🎵 Audio (MP3)", callbackAudio),
		),
	)
	if _, err := b.api.Send(prompt); err != nil {
		log.Printf("Could not send format prompt: %v", err)
	}
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Could not answer callback query: %v", err)
	}
	if query.Message == nil {
		return
	}

	target := Target{ChatID: query.Message.Chat.ID, MessageID: query.Message.MessageID}

	if query.Data == callbackHelp {
		edit := tgbotapi.NewEditMessageText(target.ChatID, target.MessageID, helpText(b.cfg.MaxFileSizeMB))
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("Could not edit message to help text: %v", err)
		}
		return
	}

	format, err := models.ParseFormat(strings.TrimPrefix(query.Data, "download_"))
	if err != nil {
		return
	}

	url, err := b.pending.TakeAndClear(query.From.ID)
	if err != nil {
		b.editOrSend(target, msgNoPending)
		return
	}

	status := fmt.Sprintf("⏳ Starting download for %s... Please wait.", format)
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(target.ChatID, target.MessageID, status)); err != nil {
		log.Printf("Could not edit message (might be the same content): %v", err)
	}

	b.process(url, format, target)
}

// process runs one job to its terminal state and reports the outcome into
// the status message.
func (b *Bot) process(url string, format models.Format, target Target) {
	hook := progress.LogHook{}

	err := b.manager.Run(context.Background(), url, format, hook, func(job *models.Job) error {
		return b.pipeline.Deliver(job, target)
	})
	if err != nil {
		b.editOrSend(target, errorText(err, b.cfg.MaxFileSizeMB))
	}
}

// editOrSend edits the status message, falling back to a fresh message when
// the edit fails (already deleted or unmodifiable).
func (b *Bot) editOrSend(target Target, text string) {
	_, err := b.api.Send(tgbotapi.NewEditMessageText(target.ChatID, target.MessageID, text))
	if err == nil {
		return
	}
	log.Printf("Could not edit message, sending a new one: %v", err)
	if _, err := b.api.Send(tgbotapi.NewMessage(target.ChatID, text)); err != nil {
		log.Printf("Could not send message: %v", err)
	}
}

func (b *Bot) reply(chatID int64, text, parseMode string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Could not send message: %v", err)
	}
}
