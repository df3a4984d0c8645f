// Package app содержит основную структуру приложения и логику инициализации.
// Связывает разбор сообщений, сборку PDF, диспетчер и транспорт Telegram
// и запускает бота в режиме вебхука или long polling.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/buildinfo"
	"github.com/InQaaaaGit/label_bot.git/internal/composer"
	"github.com/InQaaaaGit/label_bot.git/internal/config"
	"github.com/InQaaaaGit/label_bot.git/internal/handler"
	"github.com/InQaaaaGit/label_bot.git/internal/models"
	"github.com/InQaaaaGit/label_bot.git/internal/parser"
	"github.com/InQaaaaGit/label_bot.git/internal/server"
	"github.com/InQaaaaGit/label_bot.git/internal/service"
	"github.com/InQaaaaGit/label_bot.git/internal/symbol"
	"github.com/InQaaaaGit/label_bot.git/internal/telegram"
)

// Bot определяет интерфейс транспорта Telegram, нужный приложению
type Bot interface {
	service.Sender
	SetWebhook(ctx context.Context, url, secret string) error
	DeleteWebhook(ctx context.Context) error
	Poll(ctx context.Context, handle func(context.Context, models.Event))
}

// App представляет приложение бота.
// Создается один раз при старте; глобального состояния нет.
type App struct {
	config     *config.Config      // Конфигурация приложения
	router     *chi.Mux            // HTTP роутер для обработки запросов
	logger     *zap.Logger         // Логгер для записи событий приложения
	handler    *handler.Handler    // Обработчики HTTP запросов
	dispatcher *service.Dispatcher // Обработка событий бота
	bot        Bot
}

// NewApp создает приложение и подключается к Bot API.
func NewApp(cfg *config.Config, build *buildinfo.Info, logger *zap.Logger) (*App, error) {
	bot, err := telegram.New(cfg.APIToken, telegram.Options{PollTimeout: 60}, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating bot client: %w", err)
	}
	return newApp(cfg, bot, build, logger), nil
}

// newApp собирает все слои приложения вокруг готового транспорта.
func newApp(cfg *config.Config, bot Bot, build *buildinfo.Info, logger *zap.Logger) *App {
	labels := composer.New(symbol.NewDefaultRenderer(), composer.Options{
		LogoPath: cfg.LogoPath,
		Footer:   cfg.FooterText,
	}, logger.Named("composer"))

	dispatcher := service.NewDispatcher(parser.New(cfg.MaxLabels), labels, bot, service.Options{
		LogoPath:     cfg.LogoPath,
		ShowProgress: cfg.ShowProgress,
	}, logger.Named("dispatcher"))

	a := &App{
		config:     cfg,
		router:     chi.NewRouter(),
		logger:     logger,
		handler:    handler.NewHandler(dispatcher, build, logger.Named("http")),
		dispatcher: dispatcher,
		bot:        bot,
	}
	a.setupRoutes()
	return a
}

// setupRoutes настраивает HTTP маршруты и middleware приложения.
// Маршрут вебхука регистрируется только в режиме webhook.
func (a *App) setupRoutes() {
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)

	a.router.Get("/", a.handler.HandleHealth)
	a.router.Get("/ping", a.handler.HandleHealth)

	if a.config.RunMode == config.RunModeWebhook {
		a.router.With(a.handler.WithSecret(a.config.WebhookSecret)).
			Post(a.config.WebhookPath, a.handler.HandleWebhook)
	}
}

// Router возвращает HTTP обработчик приложения.
func (a *App) Router() http.Handler {
	return a.router
}

// GetServer создает и возвращает настроенный HTTP сервер.
// WriteTimeout учитывает синхронную сборку документа внутри запроса вебхука.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:              a.config.ListenAddress(),
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run запускает бота в настроенном режиме и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	srv := server.NewHTTPServer(a.GetServer(), a.config, a.logger)

	switch a.config.RunMode {
	case config.RunModePolling:
		return a.runPolling(ctx, srv)
	default:
		return a.runWebhook(ctx, srv)
	}
}

func (a *App) runWebhook(ctx context.Context, srv server.Starter) error {
	if a.config.WebhookURL != "" {
		if err := a.bot.SetWebhook(ctx, a.config.WebhookURL, a.config.WebhookSecret); err != nil {
			return fmt.Errorf("error registering webhook: %w", err)
		}
	} else {
		a.logger.Warn("WEBHOOK_URL is not set, expecting webhook to be registered externally")
	}

	a.logger.Info("Running in webhook mode", zap.String("path", a.config.WebhookPath))
	return srv.Start(ctx)
}

func (a *App) runPolling(ctx context.Context, srv server.Starter) error {
	if err := a.bot.DeleteWebhook(ctx); err != nil {
		return fmt.Errorf("error deleting webhook: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Сервер проверки живости работает и в режиме polling
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start(ctx)
		cancel()
	}()

	a.logger.Info("Running in polling mode")
	a.bot.Poll(ctx, a.handleEvent)
	cancel()
	return <-srvErr
}

// handleEvent обрабатывает событие из цикла polling.
// Ошибки доставки уже записаны в лог диспетчером.
func (a *App) handleEvent(ctx context.Context, ev models.Event) {
	_ = a.dispatcher.Dispatch(ctx, ev)
}
