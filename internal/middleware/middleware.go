// Package middleware содержит HTTP middleware вебхука бота:
// идентификатор запроса, журналирование, проверку секрета и распаковку gzip.
package middleware

import (
	"context"

	"github.com/google/uuid"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// RequestIDKey используется как ключ для хранения ID запроса в контексте
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader заголовок, в котором ID запроса возвращается клиенту
	RequestIDHeader = "X-Request-ID"
)

// GenerateRequestID генерирует уникальный ID запроса
func GenerateRequestID() string {
	return uuid.New().String()
}

// WithRequestID возвращает копию контекста с ID запроса
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext извлекает ID запроса из контекста.
// Возвращает пустую строку, если ID не установлен.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}
