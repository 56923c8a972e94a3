package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"metalcast/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type PriceReader interface {
	GetCurrentPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
}

type NewsReader interface {
	Cached(maxCount int) []domain.Article
}

type QueueReader interface {
	DequeueFront() (domain.CommentaryItem, bool)
}

var newBot = func(pref tele.Settings) (*tele.Bot, error) {
	return tele.NewBot(pref)
}

// TelegramBot answers price and headline queries and broadcasts
// high-priority commentary to a channel.
type TelegramBot struct {
	bot       *tele.Bot
	channelID int64
}

// StartTelegramBot wires the command handlers and starts long polling.
// Returns nil when no token is configured; the rest of the process runs
// without the bot.
func StartTelegramBot(token string, channelID int64, prices PriceReader, news NewsReader, queue QueueReader) *TelegramBot {
	if token == "" {
		log.Println("Telegram bot token not set, skipping Telegram bot startup")
		return nil
	}

	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := newBot(pref)
	if err != nil {
		log.Printf("Warning: failed to create Telegram bot, running without it: %v", err)
		return nil
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price XAU\nSupported: %s", strings.Join(domain.SupportedMetals, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		name, ok := domain.MetalName[symbol]
		if !ok {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(domain.SupportedMetals, ", ")))
		}
		snapshot, err := prices.GetCurrentPrice(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", symbol, err))
		}
		change := "n/a"
		if snapshot.Change24hPct != nil {
			change = fmt.Sprintf("%+.2f%%", *snapshot.Change24hPct)
		}
		return c.Send(fmt.Sprintf(
			"%s (%s)\nPrice: $%.2f per %s\n24h Change: %s",
			name, symbol, snapshot.PriceUSD, snapshot.Unit, change,
		))
	})

	b.Handle("/headlines", func(c tele.Context) error {
		articles := news.Cached(5)
		if len(articles) == 0 {
			return c.Send("No headlines available right now.")
		}
		lines := make([]string, 0, len(articles))
		for _, article := range articles {
			lines = append(lines, fmt.Sprintf("• %s (%s)", article.Title, article.Source))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/next", func(c tele.Context) error {
		item, ok := queue.DequeueFront()
		if !ok {
			return c.Send("No commentary queued.")
		}
		return c.Send(item.Text)
	})

	log.Println("Telegram bot started")
	go b.Start()
	return &TelegramBot{bot: b, channelID: channelID}
}

// Broadcast sends a commentary item's text to the configured channel. A nil
// bot or missing channel is a no-op so callers never need to guard.
func (t *TelegramBot) Broadcast(_ context.Context, item domain.CommentaryItem) error {
	if t == nil || t.bot == nil || t.channelID == 0 {
		return nil
	}
	_, err := t.bot.Send(tele.ChatID(t.channelID), item.Text)
	return err
}
