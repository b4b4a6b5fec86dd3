package main

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/bot"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/config"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/downloader"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/jobs"
	"github.com/frenkiofficial/YouTube-Downloader-Bot/internal/pending"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(">>> ❌ Error loading config: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf(">>> ❌ Error connecting to Telegram: %v", err)
	}

	engine := downloader.NewYTDLPEngine()
	orchestrator := downloader.NewOrchestrator(engine, cfg.DownloadDir, cfg.MaxFileSizeBytes())
	manager := jobs.NewManager(orchestrator, cfg)
	jobs.StartJanitor(cfg)

	b := bot.New(api, cfg, pending.NewStore(), manager)

	fmt.Println(">>> 🤖 YouTube Downloader Bot Started")
	fmt.Printf(">>> ⚡ Account: @%s\n", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	log.Println("Starting bot polling...")
	b.Run(api.GetUpdatesChan(updateConfig))
}
