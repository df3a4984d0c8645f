package symbol

import (
	"errors"
	"fmt"
)

// ErrEmptyPayload возвращается при попытке закодировать пустую строку
var ErrEmptyPayload = errors.New("empty symbol payload")

// Kind обозначает тип символа, который не удалось построить
type Kind string

const (
	KindBarcode Kind = "barcode"
	KindQR      Kind = "qr"
)

// SymbolError описывает ошибку построения штрихкода или QR-кода.
type SymbolError struct {
	Kind    Kind
	Payload string
	Err     error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("render %s for %q: %v", e.Kind, e.Payload, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}
