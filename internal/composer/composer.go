// Package composer собирает PDF-документ с этикетками: по одной странице
// 10 × 15 см на каждую запись пакета. Раскладка страницы фиксирована
// (см. Plan), символы строятся в памяти и не переиспользуются между запросами.
package composer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

// DefaultFooter подпись внизу каждой страницы по умолчанию.
const DefaultFooter = "FUJITEC SA - JEDDAH WAREHOUSE"

// SymbolRenderer строит изображения штрихкода и QR-кода.
type SymbolRenderer interface {
	Barcode(code string) (image.Image, error)
	QR(text string) (image.Image, error)
}

// Options настраивает Composer.
type Options struct {
	// LogoPath путь к логотипу; пустая строка отключает логотип.
	LogoPath string
	// Footer подпись внизу страницы.
	Footer string
	// SkipVerify отключает проверку числа страниц готового документа.
	SkipVerify bool
}

// Composer собирает документы. Не хранит изменяемого состояния между вызовами
// и безопасен для конкурентного использования.
type Composer struct {
	symbols    SymbolRenderer
	logoPath   string
	footer     string
	skipVerify bool
	logger     *zap.Logger
}

var disablePdfcpuConfigDir sync.Once

// New создает Composer.
func New(symbols SymbolRenderer, opts Options, logger *zap.Logger) *Composer {
	disablePdfcpuConfigDir.Do(api.DisableConfigDir)

	c := &Composer{
		symbols:    symbols,
		logoPath:   opts.LogoPath,
		footer:     opts.Footer,
		skipVerify: opts.SkipVerify,
		logger:     logger,
	}
	if c.footer == "" {
		c.footer = DefaultFooter
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Compose собирает документ из пакета: одна страница на запись, в исходном порядке.
// Возвращает *RenderError, если не удалось построить символ или собрать документ.
func (c *Composer) Compose(ctx context.Context, batch models.LabelBatch) (*models.RenderedDocument, error) {
	if len(batch) == 0 {
		return nil, &RenderError{Stage: StageInput, Err: ErrEmptyBatch}
	}

	logo := c.logo()

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: PageWidth, H: PageHeight},
		Unit:     gopdf.UnitPT,
	})
	if err := registerFonts(pdf); err != nil {
		return nil, &RenderError{Stage: StageFonts, Err: err}
	}

	for _, plan := range PlanBatch(batch, logo != nil, c.footer) {
		if err := ctx.Err(); err != nil {
			return nil, &RenderError{Code: plan.BarcodePayload, Stage: StageDraw, Err: err}
		}
		if err := c.drawPage(pdf, plan, logo); err != nil {
			return nil, err
		}
	}

	data, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, &RenderError{Stage: StageFinalize, Err: err}
	}

	if !c.skipVerify {
		if err := verifyPageCount(data, len(batch)); err != nil {
			return nil, &RenderError{Stage: StageFinalize, Err: err}
		}
	}

	doc := &models.RenderedDocument{
		FileName: batch.FileName(),
		Data:     data,
		Pages:    len(batch),
	}
	c.logger.Debug("Document composed",
		zap.String("file_name", doc.FileName),
		zap.Int("pages", doc.Pages),
		zap.Int("size", len(doc.Data)),
		zap.Bool("logo", logo != nil))

	return doc, nil
}

// logo загружает логотип для текущего документа. Ошибка загрузки не фатальна.
func (c *Composer) logo() image.Image {
	if c.logoPath == "" {
		return nil
	}
	img, err := loadLogo(c.logoPath)
	if err != nil {
		c.logger.Warn("Logo could not be loaded; continuing without it",
			zap.String("path", c.logoPath), zap.Error(err))
		return nil
	}
	return img
}

func (c *Composer) drawPage(pdf *gopdf.GoPdf, plan PagePlan, logo image.Image) error {
	code := plan.BarcodePayload

	barcodeImg, err := c.symbols.Barcode(code)
	if err != nil {
		return &RenderError{Code: code, Stage: StageBarcode, Err: err}
	}
	qrImg, err := c.symbols.QR(plan.QRPayload)
	if err != nil {
		return &RenderError{Code: code, Stage: StageQR, Err: err}
	}

	pdf.AddPage()

	pdf.SetLineWidth(borderLineWidth)
	pdf.RectFromUpperLeftWithStyle(plan.Border.X, plan.Border.Y, plan.Border.W, plan.Border.H, "D")

	if plan.Logo != nil && logo != nil {
		b := logo.Bounds()
		fitted := fitBox(*plan.Logo, b.Dx(), b.Dy())
		if err := drawImage(pdf, logo, fitted); err != nil {
			// Логотип декоративный: страница собирается и без него.
			c.logger.Warn("Logo could not be drawn; continuing", zap.String("code", code), zap.Error(err))
		}
	}

	if err := drawImage(pdf, barcodeImg, plan.Barcode); err != nil {
		return &RenderError{Code: code, Stage: StageBarcode, Err: err}
	}
	if err := drawImage(pdf, qrImg, plan.QR); err != nil {
		return &RenderError{Code: code, Stage: StageQR, Err: err}
	}

	for _, line := range []TextLine{plan.Name, plan.Location, plan.Footer} {
		if err := drawCentered(pdf, line); err != nil {
			return &RenderError{Code: code, Stage: StageDraw, Err: err}
		}
	}

	return nil
}

func drawImage(pdf *gopdf.GoPdf, img image.Image, box Box) error {
	return pdf.ImageFrom(img, box.X, box.Y, &gopdf.Rect{W: box.W, H: box.H})
}

// drawCentered выводит строку по центру страницы так, что её базовая линия проходит по line.Baseline.
func drawCentered(pdf *gopdf.GoPdf, line TextLine) error {
	if err := pdf.SetFont(string(line.Style), "", line.Size); err != nil {
		return fmt.Errorf("set font %s: %w", line.Style, err)
	}
	pdf.SetXY(0, line.Baseline-line.Size)
	return pdf.CellWithOption(
		&gopdf.Rect{W: PageWidth, H: line.Size},
		line.Text,
		gopdf.CellOption{Align: gopdf.Center | gopdf.Bottom},
	)
}

func verifyPageCount(data []byte, want int) error {
	got, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("read composed document: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: want %d, got %d", ErrPageCountMismatch, want, got)
	}
	return nil
}
