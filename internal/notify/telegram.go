package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client delivers board-movement notifications through the Telegram Bot API.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     3,
		retryDelayBase: time.Second,
	}, nil
}

// SendBoardChanges sends one message summarizing the moved options on a
// board. Delivery is retried; notification loss is tolerable but cheap to
// avoid.
func (c *Client) SendBoardChanges(boardTitle string, changes []OptionChange) error {
	if len(changes) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(c.chatID, formatMessage(boardTitle, changes))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats board changes into a Telegram MarkdownV2 message.
func formatMessage(boardTitle string, changes []OptionChange) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 *%s*\n\n", escapeMarkdownV2(boardTitle)))
	for _, change := range changes {
		stake := fmt.Sprintf("stake %s → %s", orDash(change.OldAmount), orDash(change.NewAmount))
		odds := fmt.Sprintf("odds %s → %s", fmtOdds(change.OldOdds), fmtOdds(change.NewOdds))
		line := fmt.Sprintf("• %s: %s, %s\n",
			escapeMarkdownV2(change.Name),
			escapeMarkdownV2(stake),
			escapeMarkdownV2(odds),
		)
		b.WriteString(line)
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fmtOdds(odds *float64) string {
	if odds == nil {
		return "-"
	}
	return strconv.FormatFloat(*odds, 'f', 2, 64)
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
