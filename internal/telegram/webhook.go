package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

// SetWebhook регистрирует публичный адрес вебхука.
// Непустой secret передается как secret_token и возвращается Telegram в заголовке каждой доставки.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secret)

	// setWebhook вызывается напрямую: WebhookConfig этой версии не знает secret_token
	if _, err := c.bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	c.logger.Info("Webhook registered", zap.String("url", url), zap.Bool("secret", secret != ""))
	return nil
}

// DeleteWebhook снимает вебхук, иначе getUpdates не работает.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	c.logger.Info("Webhook deleted")
	return nil
}

// Poll получает обновления через long polling до отмены ctx.
// Каждое событие обрабатывается полностью до получения следующего.
func (c *Client) Poll(ctx context.Context, handle func(context.Context, models.Event)) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeout

	updates := c.bot.GetUpdatesChan(u)
	defer c.bot.StopReceivingUpdates()

	c.logger.Info("Polling started", zap.Int("timeout", c.pollTimeout))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := EventFromUpdate(update)
			if !ok {
				c.logger.Debug("Skipping update without text message", zap.Int("update_id", update.UpdateID))
				continue
			}
			handle(ctx, ev)
		}
	}
}
