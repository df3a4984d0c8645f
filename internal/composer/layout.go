package composer

import (
	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

// Cm один сантиметр в пунктах PDF.
const Cm = 72.0 / 2.54

// Геометрия страницы этикетки 10 × 15 см (книжная ориентация).
const (
	PageWidth  = 10 * Cm
	PageHeight = 15 * Cm

	borderInset     = 5.0
	borderLineWidth = 1.0

	margin        = 1 * Cm
	blockSpacing  = 0.7 * Cm
	logoHeight    = 2 * Cm
	barcodeHeight = 2.5 * Cm
	qrSide        = 3 * Cm
	qrOffset      = 2 * Cm
	lineAdvance   = 1.2 * Cm
	footerBottom  = 1 * Cm

	textFontSize   = 12.0
	footerFontSize = 8.0
)

// Box прямоугольник в координатах страницы с началом в левом верхнем углу.
type Box struct {
	X, Y, W, H float64
}

// FontStyle обозначает начертание шрифта строки.
type FontStyle string

const (
	FontBold   FontStyle = "bold"
	FontItalic FontStyle = "italic"
)

// TextLine строка текста, центрированная по горизонтали; Baseline отсчитывается от верха страницы.
type TextLine struct {
	Text     string
	Style    FontStyle
	Size     float64
	Baseline float64
}

// PagePlan описывает расположение всех элементов одной страницы.
type PagePlan struct {
	Border   Box
	Logo     *Box // nil, если логотип недоступен
	Barcode  Box
	QR       Box
	Name     TextLine
	Location TextLine
	Footer   TextLine

	BarcodePayload string
	QRPayload      string
}

// Plan рассчитывает раскладку страницы для одной этикетки.
// Результат зависит только от аргументов.
func Plan(req models.LabelRequest, withLogo bool, footer string) PagePlan {
	plan := PagePlan{
		Border: Box{
			X: borderInset,
			Y: borderInset,
			W: PageWidth - 2*borderInset,
			H: PageHeight - 2*borderInset,
		},
		BarcodePayload: req.Code,
		QRPayload:      req.QRPayload(),
	}

	y := margin
	contentWidth := PageWidth - 2*margin

	if withLogo {
		plan.Logo = &Box{X: margin, Y: y, W: contentWidth, H: logoHeight}
		y += logoHeight + blockSpacing
	}

	plan.Barcode = Box{X: margin, Y: y, W: contentWidth, H: barcodeHeight}
	y += barcodeHeight + blockSpacing

	plan.QR = Box{X: margin + qrOffset, Y: y, W: qrSide, H: qrSide}
	y += qrSide + blockSpacing

	plan.Name = TextLine{Text: "Part: " + req.Name, Style: FontBold, Size: textFontSize, Baseline: y}
	y += lineAdvance
	plan.Location = TextLine{Text: "Rack: " + req.Location, Style: FontBold, Size: textFontSize, Baseline: y}

	plan.Footer = TextLine{
		Text:     footer,
		Style:    FontItalic,
		Size:     footerFontSize,
		Baseline: PageHeight - footerBottom,
	}

	return plan
}

// PlanBatch рассчитывает раскладку всех страниц пакета в исходном порядке.
func PlanBatch(batch models.LabelBatch, withLogo bool, footer string) []PagePlan {
	plans := make([]PagePlan, 0, len(batch))
	for _, req := range batch {
		plans = append(plans, Plan(req, withLogo, footer))
	}
	return plans
}

// fitBox вписывает изображение размером iw × ih в box с сохранением пропорций,
// прижимая его к левому краю и центрируя по вертикали.
func fitBox(box Box, iw, ih int) Box {
	if iw <= 0 || ih <= 0 {
		return box
	}
	scale := box.W / float64(iw)
	if s := box.H / float64(ih); s < scale {
		scale = s
	}
	w := float64(iw) * scale
	h := float64(ih) * scale
	return Box{X: box.X, Y: box.Y + (box.H-h)/2, W: w, H: h}
}
