// Package symbol строит изображения машиночитаемых символов этикетки:
// линейный штрихкод Code128 и QR-код. Все изображения создаются в памяти.
package symbol

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

const (
	// Ширина штрихкода в пикселях, к которой стремится масштабирование модуля.
	barcodeTargetWidth = 600
	barcodeBarsHeight  = 160
	barcodeQuietZone   = 10 // в модулях
	barcodeTextHeight  = 44
	barcodeTextSize    = 28
	barcodeTopPadding  = 8

	defaultQRSize = 512
)

// Options настраивает Renderer.
type Options struct {
	// QRLevel задаёт уровень коррекции ошибок QR-кода. Нулевое значение соответствует qrcode.Low.
	QRLevel qrcode.RecoveryLevel
	// QRSize задаёт сторону QR-изображения в пикселях.
	QRSize int
	// HideText отключает печать кода под штрихами.
	HideText bool
}

// Renderer строит изображения символов. Безопасен для конкурентного использования.
type Renderer struct {
	qrLevel  qrcode.RecoveryLevel
	qrSize   int
	hideText bool
}

// NewRenderer создает Renderer с заданными опциями.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		qrLevel:  opts.QRLevel,
		qrSize:   opts.QRSize,
		hideText: opts.HideText,
	}
	if r.qrSize <= 0 {
		r.qrSize = defaultQRSize
	}
	return r
}

// NewDefaultRenderer создает Renderer с уровнем коррекции Medium.
func NewDefaultRenderer() *Renderer {
	return NewRenderer(Options{QRLevel: qrcode.Medium})
}

// Barcode строит изображение штрихкода Code128 для code с зонами покоя
// и человекочитаемой строкой под штрихами.
func (r *Renderer) Barcode(code string) (image.Image, error) {
	if code == "" {
		return nil, &SymbolError{Kind: KindBarcode, Err: ErrEmptyPayload}
	}

	bc, err := code128.Encode(code)
	if err != nil {
		return nil, &SymbolError{Kind: KindBarcode, Payload: code, Err: err}
	}

	modules := bc.Bounds().Dx()
	moduleWidth := barcodeTargetWidth / modules
	if moduleWidth < 2 {
		moduleWidth = 2
	}

	scaled, err := barcode.Scale(bc, modules*moduleWidth, barcodeBarsHeight)
	if err != nil {
		return nil, &SymbolError{Kind: KindBarcode, Payload: code, Err: fmt.Errorf("scale: %w", err)}
	}

	quiet := barcodeQuietZone * moduleWidth
	width := scaled.Bounds().Dx() + 2*quiet
	height := barcodeTopPadding + barcodeBarsHeight
	if !r.hideText {
		height += barcodeTextHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(scaled, quiet, barcodeTopPadding)

	if !r.hideText {
		face, err := newTextFace(barcodeTextSize)
		if err != nil {
			return nil, &SymbolError{Kind: KindBarcode, Payload: code, Err: fmt.Errorf("font: %w", err)}
		}
		defer face.Close()

		dc.SetFontFace(face)
		dc.SetColor(color.Black)
		textY := float64(barcodeTopPadding+barcodeBarsHeight) + float64(barcodeTextHeight)/2
		dc.DrawStringAnchored(code, float64(width)/2, textY, 0.5, 0.5)
	}

	return dc.Image(), nil
}

// QR строит изображение QR-кода для произвольной строки.
func (r *Renderer) QR(text string) (image.Image, error) {
	if text == "" {
		return nil, &SymbolError{Kind: KindQR, Err: ErrEmptyPayload}
	}

	q, err := qrcode.New(text, r.qrLevel)
	if err != nil {
		return nil, &SymbolError{Kind: KindQR, Payload: text, Err: err}
	}
	return q.Image(r.qrSize), nil
}

var monoFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gomono.TTF)
})

// newTextFace создает новый font.Face для каждого вызова: Face не безопасен для конкурентного использования.
func newTextFace(size float64) (font.Face, error) {
	f, err := monoFont()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
