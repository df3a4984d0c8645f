package composer

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch возвращается при попытке собрать документ из пустого пакета
var ErrEmptyBatch = errors.New("empty label batch")

// ErrPageCountMismatch возвращается, когда готовый документ содержит не то число страниц
var ErrPageCountMismatch = errors.New("page count mismatch")

// Этапы сборки документа для RenderError.
const (
	StageInput    = "input"
	StageFonts    = "fonts"
	StageBarcode  = "barcode"
	StageQR       = "qr"
	StageDraw     = "draw"
	StageFinalize = "finalize"
)

// RenderError описывает ошибку построения символов или сборки документа.
// Code содержит код этикетки, на которой произошла ошибка (пусто для ошибок всего документа).
type RenderError struct {
	Code  string
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("render %s for %q: %v", e.Stage, e.Code, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
