// Команда labelbot запускает Telegram-бота, который превращает текстовые строки
// "<код>, <название>, <место>" в PDF с этикетками (штрихкод и QR-код).
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/app"
	"github.com/InQaaaaGit/label_bot.git/internal/buildinfo"
	"github.com/InQaaaaGit/label_bot.git/internal/config"
	"github.com/InQaaaaGit/label_bot.git/internal/server"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := buildinfo.NewInfo(buildVersion, buildDate, buildCommit)
	build.Print(os.Stdout)

	cfg, err := config.NewConfig()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatalf("Invalid configuration: %v", cfgErr)
		}
		log.Fatalf("Error loading config: %v", err)
	}

	if err := runUntilSignal(cfg, build); err != nil {
		log.Fatalf("Label bot stopped with error: %v", err)
	}
}

// runUntilSignal запускает бота до SIGINT или SIGTERM.
func runUntilSignal(cfg *config.Config, build *buildinfo.Info) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, cfg, build)
}

// run создает приложение и блокируется до отмены ctx.
func run(ctx context.Context, cfg *config.Config, build *buildinfo.Info) error {
	logger, syncLogger, err := server.InitLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer syncLogger()

	logger.Info("Starting label bot", append(build.Fields(),
		zap.String("run_mode", cfg.RunMode),
		zap.String("address", cfg.ListenAddress()),
	)...)

	application, err := app.NewApp(cfg, build, logger)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Label bot stopped")
	return nil
}
