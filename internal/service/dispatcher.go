// Package service содержит диспетчер входящих событий бота.
//
// Dispatcher реагирует на каждое событие независимо: команда /start получает
// приветствие, любой другой текст разбирается как пакет этикеток, по которому
// собирается PDF-документ. Все ошибки запроса обрабатываются здесь и
// превращаются в короткий ответ пользователю.
package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/middleware"
	"github.com/InQaaaaGit/label_bot.git/internal/models"
	"github.com/InQaaaaGit/label_bot.git/internal/parser"
)

// Sender определяет интерфейс доставки ответов в чат
type Sender interface {
	// SendText отправляет текст и возвращает идентификатор отправленного сообщения.
	SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error)
	SendPhoto(ctx context.Context, chatID int64, name string, photo []byte, caption string) error
	SendDocument(ctx context.Context, chatID int64, replyTo int, doc *models.RenderedDocument, caption string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// LabelParser определяет интерфейс разбора текста сообщения
type LabelParser interface {
	Parse(raw string) (models.LabelBatch, error)
}

// DocumentComposer определяет интерфейс сборки документа
type DocumentComposer interface {
	Compose(ctx context.Context, batch models.LabelBatch) (*models.RenderedDocument, error)
}

// Options настраивает Dispatcher.
type Options struct {
	// LogoPath изображение, прикладываемое к приветствию.
	LogoPath string
	// ShowProgress включает временное сообщение "генерация…", удаляемое после ответа.
	ShowProgress bool
}

// Dispatcher обрабатывает входящие события. Не хранит состояния между событиями.
type Dispatcher struct {
	parser   LabelParser
	composer DocumentComposer
	sender   Sender
	opts     Options
	logger   *zap.Logger
}

// NewDispatcher создает новый экземпляр Dispatcher
func NewDispatcher(p LabelParser, c DocumentComposer, s Sender, opts Options, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		parser:   p,
		composer: c,
		sender:   s,
		opts:     opts,
		logger:   logger,
	}
}

// Dispatch обрабатывает одно событие до конца.
// Ошибки формата и сборки документа превращаются в ответ пользователю;
// наружу возвращается только *TransportError.
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.Event) error {
	logger := d.logger.With(
		zap.Int64("chat_id", ev.ChatID),
		zap.Int("message_id", ev.MessageID),
	)
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(zap.String("request_id", requestID))
	}

	switch ev.Command {
	case "start", "help":
		return d.welcome(ctx, logger, ev)
	default:
		return d.labels(ctx, logger, ev)
	}
}

func (d *Dispatcher) welcome(ctx context.Context, logger *zap.Logger, ev models.Event) error {
	if d.opts.LogoPath != "" {
		logo, err := os.ReadFile(d.opts.LogoPath)
		if err == nil {
			err = d.sender.SendPhoto(ctx, ev.ChatID, filepath.Base(d.opts.LogoPath), logo, welcomeMessage)
			if err == nil {
				logger.Info("Welcome sent with logo")
				return nil
			}
		}
		logger.Warn("Welcome logo unavailable, falling back to text", zap.Error(err))
	}

	if _, err := d.sender.SendText(ctx, ev.ChatID, 0, welcomeMessage); err != nil {
		return d.transportError(logger, "sendWelcome", err)
	}
	logger.Info("Welcome sent")
	return nil
}

func (d *Dispatcher) labels(ctx context.Context, logger *zap.Logger, ev models.Event) error {
	batch, err := d.parser.Parse(ev.Text)
	if err != nil {
		var fe *parser.FormatError
		if !errors.As(err, &fe) {
			logger.Error("Unexpected parser error", zap.Error(err))
			return d.reply(ctx, logger, ev, renderErrorMessage)
		}
		logger.Info("Rejected malformed label request", zap.Error(err))
		return d.reply(ctx, logger, ev, formatErrorMessage(fe))
	}

	logger = logger.With(zap.Int("labels", len(batch)))
	statusID := d.showProgress(ctx, logger, ev)
	defer d.clearProgress(ctx, logger, ev.ChatID, statusID)

	doc, err := d.composer.Compose(ctx, batch)
	if err != nil {
		logger.Error("Failed to render labels", zap.Strings("codes", batch.Codes()), zap.Error(err))
		return d.reply(ctx, logger, ev, renderErrorMessage)
	}

	if err := d.sender.SendDocument(ctx, ev.ChatID, ev.MessageID, doc, documentCaption(doc)); err != nil {
		return d.transportError(logger, "sendDocument", err)
	}
	logger.Info("Labels sent", zap.String("file_name", doc.FileName), zap.Int("size", len(doc.Data)))
	return nil
}

func (d *Dispatcher) reply(ctx context.Context, logger *zap.Logger, ev models.Event, text string) error {
	if _, err := d.sender.SendText(ctx, ev.ChatID, ev.MessageID, text); err != nil {
		return d.transportError(logger, "sendMessage", err)
	}
	return nil
}

// showProgress отправляет статусное сообщение; возвращает 0, если оно не отправлено.
func (d *Dispatcher) showProgress(ctx context.Context, logger *zap.Logger, ev models.Event) int {
	if !d.opts.ShowProgress {
		return 0
	}
	id, err := d.sender.SendText(ctx, ev.ChatID, 0, progressMessage)
	if err != nil {
		logger.Warn("Failed to send progress message", zap.Error(err))
		return 0
	}
	return id
}

func (d *Dispatcher) clearProgress(ctx context.Context, logger *zap.Logger, chatID int64, statusID int) {
	if statusID == 0 {
		return
	}
	if err := d.sender.DeleteMessage(ctx, chatID, statusID); err != nil {
		logger.Warn("Failed to delete progress message", zap.Int("status_message_id", statusID), zap.Error(err))
	}
}

func (d *Dispatcher) transportError(logger *zap.Logger, op string, err error) error {
	terr := &TransportError{Op: op, Err: err}
	logger.Error("Failed to deliver reply", zap.String("op", op), zap.Error(err))
	return terr
}
