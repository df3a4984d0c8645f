package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyInput возвращается, когда сообщение пустое или состоит только из пробелов
var ErrEmptyInput = errors.New("empty input")

// ErrTooManyLabels возвращается, когда количество строк превышает настроенный лимит
var ErrTooManyLabels = errors.New("too many labels")

// errFieldCount и errEmptyField описывают причину отказа для конкретной строки
var (
	errFieldCount = errors.New("wrong number of fields")
	errEmptyField = errors.New("empty field")
)

// FormatError описывает некорректный формат входного сообщения.
// Line и Content указывают на первую строку, не прошедшую проверку
// (Line == 0, если ошибка относится ко всему сообщению).
type FormatError struct {
	Line    int
	Content string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("format error: %v", e.Err)
	}
	return fmt.Sprintf("format error on line %d (%q): %v", e.Line, e.Content, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
