package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/config"
	"github.com/thuuthuyy/wine-scanner-v2/internal/telegram"
)

func main() {
	cfg := config.LoadBot()

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logrus.WithError(err).Fatal("telegram auth")
	}
	api.Debug = false

	logrus.WithField("api", cfg.APIBaseURL).Info("bot started")
	bot := telegram.NewBot(api, cfg.APIBaseURL)
	if err := bot.Start(); err != nil {
		logrus.WithError(err).Fatal("bot stopped")
	}
}
