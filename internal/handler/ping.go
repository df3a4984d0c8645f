package handler

import (
	"net/http"
)

// HealthMessage текст ответа проверки живости
const HealthMessage = "🚀 Label bot is alive!"

// BuildVersionHeader заголовок с версией сборки
const BuildVersionHeader = "X-Build-Version"

// HandleHealth обрабатывает запрос на проверку живости сервиса
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set(BuildVersionHeader, h.build.Version)
	h.writeText(w, http.StatusOK, HealthMessage)
}
