// Package handler содержит HTTP-обработчики бота: вебхук Telegram и проверку живости.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/buildinfo"
	"github.com/InQaaaaGit/label_bot.git/internal/middleware"
	"github.com/InQaaaaGit/label_bot.git/internal/models"
	"github.com/InQaaaaGit/label_bot.git/internal/telegram"
)

const (
	contentTypePlain = "text/plain; charset=utf-8"
	// maxUpdateSize ограничивает размер тела вебхука
	maxUpdateSize = 1 << 20
)

// EventDispatcher определяет интерфейс обработки входящих событий
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev models.Event) error
}

type Handler struct {
	dispatcher EventDispatcher
	build      *buildinfo.Info
	logger     *zap.Logger
}

func NewHandler(dispatcher EventDispatcher, build *buildinfo.Info, logger *zap.Logger) *Handler {
	if build == nil {
		build = buildinfo.DefaultInfo()
	}
	return &Handler{
		dispatcher: dispatcher,
		build:      build,
		logger:     logger,
	}
}

// HandleWebhook обрабатывает POST запрос Telegram с обновлением.
// Событие обрабатывается синхронно; 200 OK означает, что ответ пользователю отправлен.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateSize)).Decode(&update); err != nil {
		h.logger.Info("Invalid webhook payload",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ev, ok := telegram.EventFromUpdate(update)
	if !ok {
		h.logger.Debug("Ignoring update without text message", zap.Int("update_id", update.UpdateID))
		h.writeText(w, http.StatusOK, "OK")
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), ev); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			// Клиент закрыл соединение, ответ уже никто не прочитает
			status = http.StatusServiceUnavailable
		}
		h.writeText(w, status, "ERROR")
		return
	}

	h.writeText(w, http.StatusOK, "OK")
}

func (h *Handler) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypePlain)
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов и ID запроса
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет распаковку gzip-тела запроса
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}

// WithSecret добавляет проверку секрета вебхука
func (h *Handler) WithSecret(secret string) func(http.Handler) http.Handler {
	return middleware.WithSecretToken(secret, h.logger)
}
