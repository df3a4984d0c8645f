// Package models содержит типы данных, общие для всех слоёв бота:
// запрос на этикетку, пакет этикеток, готовый документ и входящее событие.
package models

import "strings"

// LabelRequest представляет одну строку пользовательского ввода:
// "<код>, <название>, <место хранения>".
type LabelRequest struct {
	Code     string `json:"code"`     // Содержимое штрихкода
	Name     string `json:"name"`     // Название детали
	Location string `json:"location"` // Стеллаж / место хранения
}

// QRPayload возвращает строку, которая кодируется в QR-код этикетки.
func (r LabelRequest) QRPayload() string {
	return strings.Join([]string{r.Code, r.Name, r.Location}, " | ")
}

// Event представляет входящее событие транспорта, не зависящее от API Telegram.
type Event struct {
	ChatID    int64
	MessageID int
	Text      string
	// Command содержит имя команды без "/" (например, "start"), если сообщение является командой.
	Command string
}

// IsCommand сообщает, является ли событие командой бота.
func (e Event) IsCommand() bool {
	return e.Command != ""
}
