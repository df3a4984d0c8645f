// Package telegram связывает бота с Telegram Bot API.
//
// Client реализует отправку ответов для service.Dispatcher, регистрацию вебхука
// и цикл long polling. Типы библиотеки tgbotapi не выходят за пределы пакета,
// кроме tgbotapi.Update, который декодирует HTTP-обработчик вебхука.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

// ErrMissingToken возвращается, если токен бота не задан
var ErrMissingToken = errors.New("telegram: bot token is required")

// Options настраивает подключение к Bot API.
type Options struct {
	// Endpoint шаблон адреса API вида "https://host/bot%s/%s". Пустой означает api.telegram.org.
	Endpoint string
	// HTTPClient используется для запросов к API. nil означает http.DefaultClient.
	HTTPClient *http.Client
	// PollTimeout таймаут long polling в секундах.
	PollTimeout int
}

// Client обертка над *tgbotapi.BotAPI
type Client struct {
	bot         *tgbotapi.BotAPI
	pollTimeout int
	logger      *zap.Logger
}

// New создает Client и проверяет токен запросом getMe.
func New(token string, opts Options, logger *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	stdLog, err := zap.NewStdLogAt(logger.Named("tgbotapi"), zap.DebugLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api logger: %w", err)
	}
	if err := tgbotapi.SetLogger(stdLog); err != nil {
		return nil, fmt.Errorf("failed to set bot api logger: %w", err)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bot api: %w", err)
	}

	pollTimeout := opts.PollTimeout
	if pollTimeout < 0 {
		pollTimeout = 0
	}

	logger.Info("Authorized on Bot API", zap.String("username", bot.Self.UserName))
	return &Client{bot: bot, pollTimeout: pollTimeout, logger: logger}, nil
}

// Username возвращает имя бота, полученное при авторизации.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// SendText отправляет HTML-сообщение. replyTo == 0 отправляет без ответа на сообщение.
func (c *Client) SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyTo

	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

// SendPhoto отправляет изображение с HTML-подписью.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, name string, photo []byte, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: photo})
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// SendDocument отправляет готовый PDF ответом на исходное сообщение.
func (c *Client) SendDocument(ctx context.Context, chatID int64, replyTo int, doc *models.RenderedDocument, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: doc.FileName, Bytes: doc.Data})
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyTo

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// DeleteMessage удаляет сообщение бота.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// deleteMessage возвращает bool, поэтому Request, а не Send
	if _, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// EventFromUpdate извлекает событие из обновления Telegram.
// Возвращает false для обновлений без текстового сообщения.
func EventFromUpdate(u tgbotapi.Update) (models.Event, bool) {
	msg := u.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return models.Event{}, false
	}

	ev := models.Event{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
	if msg.IsCommand() {
		ev.Command = msg.Command()
	}
	return ev, true
}
