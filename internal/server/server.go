// Package server запускает HTTP или HTTPS сервер бота и останавливает его по отмене контекста.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/InQaaaaGit/label_bot.git/internal/config"
)

// ShutdownTimeout время на завершение активных запросов при остановке
const ShutdownTimeout = 10 * time.Second

// Starter интерфейс для запуска сервера
type Starter interface {
	Start(ctx context.Context) error
}

// HTTPServer представляет HTTP сервер с общей логикой запуска
type HTTPServer struct {
	server *http.Server
	config *config.Config
	logger *zap.Logger
}

// NewHTTPServer создает новый HTTP сервер
func NewHTTPServer(server *http.Server, cfg *config.Config, logger *zap.Logger) *HTTPServer {
	return &HTTPServer{
		server: server,
		config: cfg,
		logger: logger,
	}
}

// Start запускает HTTP или HTTPS сервер в зависимости от конфигурации и блокируется до отмены ctx.
// После отмены сервер завершает активные запросы в пределах ShutdownTimeout.
func (s *HTTPServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve принимает соединения на ln до отмены ctx.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if s.config.IsHTTPSEnabled() {
			errCh <- s.serveHTTPS(ln)
			return
		}
		errCh <- s.serveHTTP(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

// serveHTTPS запускает HTTPS сервер
func (s *HTTPServer) serveHTTPS(ln net.Listener) error {
	s.logger.Info("Starting HTTPS server",
		zap.String("address", ln.Addr().String()),
		zap.String("cert", s.config.TLSCertFile),
		zap.String("key", s.config.TLSKeyFile))

	return s.server.ServeTLS(ln, s.config.TLSCertFile, s.config.TLSKeyFile)
}

// serveHTTP запускает HTTP сервер
func (s *HTTPServer) serveHTTP(ln net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("address", ln.Addr().String()))
	return s.server.Serve(ln)
}

// InitLogger инициализирует production логгер заданного уровня.
// Возвращает функцию синхронизации для defer.
func InitLogger(level string) (*zap.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logger: %w", err)
	}

	cleanup := func() {
		// Sync для stderr возвращает ошибку на некоторых платформах, она не важна
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}
