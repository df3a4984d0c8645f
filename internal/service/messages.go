package service

import (
	"errors"
	"fmt"
	"html"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
	"github.com/InQaaaaGit/label_bot.git/internal/parser"
)

// Тексты ответов бота (HTML-разметка Telegram).
const (
	welcomeMessage = "👋 <b>Welcome to Fujitec Barcode Bot!</b>\n\n" +
		"🔹 Create professional barcode/QR stickers for your spare parts.\n\n" +
		"<b>📄 Manual Entry:</b>\n" +
		"Send text like:\n" +
		"<code>123456789012, Motor Gear, R12</code>\n" +
		"<code>987654321098, Brake Unit, R34</code>\n\n" +
		"✅ I’ll generate and send back a ready‑to‑print PDF, one page per line.\n\n" +
		"For support: @BDM_IT"

	formatHint         = "Use one label per line: <code>BARCODE, Part Name, Rack</code>"
	emptyInputMessage  = "Please send: <code>BARCODE, Part Name, Rack</code>"
	tooManyMessage     = "❌ Too many labels in one message. Please split them into several messages."
	renderErrorMessage = "❌ Error: could not generate your label PDF."
	progressMessage    = "⏳ Generating your labels…"
)

// formatErrorMessage строит ответ на некорректное сообщение с указанием проблемной строки.
func formatErrorMessage(fe *parser.FormatError) string {
	switch {
	case errors.Is(fe, parser.ErrEmptyInput):
		return emptyInputMessage
	case errors.Is(fe, parser.ErrTooManyLabels):
		return tooManyMessage
	}
	return fmt.Sprintf("❌ Format invalid on line %d: <code>%s</code>\n%s",
		fe.Line, html.EscapeString(fe.Content), formatHint)
}

func documentCaption(doc *models.RenderedDocument) string {
	return fmt.Sprintf("✅ Generated: <code>%s</code>", html.EscapeString(doc.FileName))
}
