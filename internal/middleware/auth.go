package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// SecretTokenHeader заголовок, которым Telegram подписывает доставку вебхука
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WithSecretToken middleware для проверки секрета вебхука.
// При пустом secret проверка отключена; при несовпадении возвращает 401
// и не передает запрос дальше.
func WithSecretToken(secret string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("Rejected webhook delivery with invalid secret token",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
