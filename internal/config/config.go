// Package config загружает конфигурацию бота.
//
// Источники в порядке возрастания приоритета: значения по умолчанию,
// JSON-файл (-c / CONFIG), флаги командной строки, переменные окружения.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"go.uber.org/zap/zapcore"
)

// Режимы получения обновлений
const (
	RunModeWebhook = "webhook"
	RunModePolling = "polling"
)

// Значения по умолчанию
const (
	DefaultServerAddress = ":5000"
	DefaultLogoPath      = "logo.png"
	DefaultWebhookPath   = "/webhook"
	DefaultLogLevel      = "info"
	DefaultFooterText    = "FUJITEC SA - JEDDAH WAREHOUSE"
	DefaultTLSCertFile   = "server.crt"
	DefaultTLSKeyFile    = "server.key"
)

// Config хранит конфигурацию приложения.
type Config struct {
	APIToken      string `env:"API_TOKEN"`      // Токен Bot API
	WebhookSecret string `env:"WEBHOOK_SECRET"` // Секрет заголовка X-Telegram-Bot-Api-Secret-Token
	LogoPath      string `env:"LOGO_PATH"`      // Логотип для этикеток и приветствия
	ServerAddress string `env:"SERVER_ADDRESS"` // Адрес для запуска HTTP-сервера
	Port          string `env:"PORT"`           // Порт от платформы хостинга
	RunMode       string `env:"RUN_MODE"`       // webhook или polling
	WebhookURL    string `env:"WEBHOOK_URL"`    // Публичный адрес вебхука
	WebhookPath   string `env:"WEBHOOK_PATH"`   // Путь маршрута вебхука
	LogLevel      string `env:"LOG_LEVEL"`
	FooterText    string `env:"FOOTER_TEXT"` // Подпись внизу этикетки
	MaxLabels     int    `env:"MAX_LABELS"`  // 0 - без ограничения
	ShowProgress  bool   `env:"SHOW_PROGRESS"`
	EnableHTTPS   string `env:"ENABLE_HTTPS"`
	TLSCertFile   string `env:"TLS_CERT_FILE"`
	TLSKeyFile    string `env:"TLS_KEY_FILE"`
	ConfigFile    string `env:"CONFIG"` // Путь к JSON-файлу конфигурации
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		LogoPath:      DefaultLogoPath,
		ServerAddress: DefaultServerAddress,
		RunMode:       RunModeWebhook,
		WebhookPath:   DefaultWebhookPath,
		LogLevel:      DefaultLogLevel,
		FooterText:    DefaultFooterText,
		ShowProgress:  true,
		TLSCertFile:   DefaultTLSCertFile,
		TLSKeyFile:    DefaultTLSKeyFile,
	}
}

// NewConfig инициализирует конфигурацию, читая флаги и переменные окружения.
func NewConfig() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load собирает конфигурацию из всех источников и проверяет ее.
// Ошибки проверки имеют тип *ConfigurationError.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := DefaultConfig()

	// 1. Определение флагов командной строки
	flags := *cfg
	fs.StringVar(&flags.APIToken, "t", flags.APIToken, "Токен Bot API (env: API_TOKEN)")
	fs.StringVar(&flags.WebhookSecret, "s", flags.WebhookSecret, "Секрет вебхука (env: WEBHOOK_SECRET)")
	fs.StringVar(&flags.LogoPath, "l", flags.LogoPath, "Путь к логотипу (env: LOGO_PATH)")
	fs.StringVar(&flags.ServerAddress, "a", flags.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	fs.StringVar(&flags.RunMode, "m", flags.RunMode, "Режим работы: webhook или polling (env: RUN_MODE)")
	fs.StringVar(&flags.WebhookURL, "w", flags.WebhookURL, "Публичный адрес вебхука (env: WEBHOOK_URL)")
	fs.StringVar(&flags.ConfigFile, "c", flags.ConfigFile, "Путь к JSON-файлу конфигурации (env: CONFIG)")

	// 2. Парсинг флагов командной строки
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 3. JSON-файл (низший приоритет после значений по умолчанию)
	configFile := flags.ConfigFile
	if v := os.Getenv("CONFIG"); v != "" {
		configFile = v
	}
	jsonConfig, err := loadJSONConfig(configFile)
	if err != nil {
		return nil, err
	}
	cfg.applyJSONConfig(jsonConfig)
	cfg.ConfigFile = configFile

	// 4. Явно заданные флаги
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.APIToken = flags.APIToken
		case "s":
			cfg.WebhookSecret = flags.WebhookSecret
		case "l":
			cfg.LogoPath = flags.LogoPath
		case "a":
			cfg.ServerAddress = flags.ServerAddress
		case "m":
			cfg.RunMode = flags.RunMode
		case "w":
			cfg.WebhookURL = flags.WebhookURL
		}
	})

	// 5. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIToken) == "" {
		return &ConfigurationError{Field: "API_TOKEN", Err: ErrMissingToken}
	}
	if c.RunMode != RunModeWebhook && c.RunMode != RunModePolling {
		return &ConfigurationError{Field: "RUN_MODE", Value: c.RunMode, Err: ErrInvalidRunMode}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &ConfigurationError{Field: "LOG_LEVEL", Value: c.LogLevel, Err: ErrInvalidLogLevel}
	}
	if c.IsHTTPSEnabled() && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return &ConfigurationError{Field: "TLS_CERT_FILE", Err: ErrMissingTLSFiles}
	}
	if !strings.HasPrefix(c.WebhookPath, "/") {
		return &ConfigurationError{Field: "WEBHOOK_PATH", Value: c.WebhookPath, Err: ErrInvalidWebhookPath}
	}
	return nil
}

// IsHTTPSEnabled сообщает, включен ли HTTPS.
// Любое непустое значение ENABLE_HTTPS, кроме "false" и "0", включает HTTPS.
func (c *Config) IsHTTPSEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.EnableHTTPS)) {
	case "", "false", "0":
		return false
	}
	return true
}

// ListenAddress возвращает адрес HTTP-сервера.
// PORT используется, только если адрес не задан явно.
func (c *Config) ListenAddress() string {
	if c.Port != "" && c.ServerAddress == DefaultServerAddress {
		return ":" + c.Port
	}
	return c.ServerAddress
}
