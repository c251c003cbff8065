package notify

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"linkedin-scraper/logger"
)

// Notifier sends a run summary over Telegram. It is entirely optional:
// without TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID in the environment,
// FromEnv returns nil and callers skip notification.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// FromEnv builds a Notifier from the environment, or nil when not
// configured
func FromEnv() *Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatIDStr == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		logger.Get().Warnf("Invalid TELEGRAM_CHAT_ID: %v", err)
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Get().Warnf("Failed to create Telegram bot: %v", err)
		return nil
	}

	return &Notifier{bot: bot, chatID: chatID}
}

// SendRunSummary posts a short completion message
func (n *Notifier) SendRunSummary(jobTitle string, collected, scanned int, csvPath string) error {
	text := fmt.Sprintf("Scrape finished: %q\nCollected: %d profiles (scanned %d)", jobTitle, collected, scanned)
	if csvPath != "" {
		text += fmt.Sprintf("\nCSV: %s", csvPath)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}
