package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/osokin/shortly/internal/config"
)

// Bot is a Telegram front-end for the shortening API. It carries no business
// logic of its own: every URL-like message is forwarded to POST /shorten and
// the response is rendered back to the chat.
type Bot struct {
	api    *tgbotapi.BotAPI
	client *Client
	logger *slog.Logger
}

func New(cfg config.Bot) (*Bot, error) {
	const op = "bot.New"

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create bot api: %w", op, err)
	}

	return &Bot{
		api:    api,
		client: NewClient(cfg.APIBaseURL, cfg.Timeout),
		logger: slog.Default().With(slog.String("component", "bot")),
	}, nil
}

// Run polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started", slog.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		b.handleCommand(msg)
	case LooksLikeURL(msg.Text):
		b.handleShorten(ctx, msg)
	default:
		b.reply(msg, notURLMessage, "")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg, welcomeMessage, tgbotapi.ModeMarkdown)
	case "help":
		b.reply(msg, helpMessage, tgbotapi.ModeMarkdown)
	default:
		b.reply(msg, notURLMessage, "")
	}
}

func (b *Bot) handleShorten(ctx context.Context, msg *tgbotapi.Message) {
	res, err := b.client.Shorten(ctx, strings.TrimSpace(msg.Text))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			b.reply(msg, apiErr.Message, "")
			return
		}

		b.logger.Error("failed to shorten url", slog.Any("err", err))

		b.reply(msg, serverErrorMessage, "")
		return
	}

	b.reply(msg, successMessage(res), tgbotapi.ModeMarkdown)
}

func (b *Bot) reply(msg *tgbotapi.Message, text, parseMode string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = parseMode

	if _, err := b.api.Send(reply); err != nil {
		b.logger.Error("failed to send reply", slog.Any("err", err))
	}
}
