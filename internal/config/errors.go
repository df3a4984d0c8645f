package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken возвращается, когда не задан API_TOKEN
	ErrMissingToken = errors.New("bot token is not set")
	// ErrInvalidRunMode возвращается при неизвестном режиме работы
	ErrInvalidRunMode = errors.New("run mode must be webhook or polling")
	// ErrInvalidLogLevel возвращается при неизвестном уровне логирования
	ErrInvalidLogLevel = errors.New("unknown log level")
	// ErrMissingTLSFiles возвращается, когда HTTPS включен без сертификата или ключа
	ErrMissingTLSFiles = errors.New("tls certificate and key are required")
	// ErrInvalidWebhookPath возвращается, когда путь вебхука не начинается с "/"
	ErrInvalidWebhookPath = errors.New("webhook path must start with /")
)

// ConfigurationError описывает некорректную конфигурацию. Процесс с такой ошибкой не запускается.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
