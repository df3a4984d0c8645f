package composer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
	"github.com/InQaaaaGit/label_bot.git/internal/symbol"
)

// mockSymbols реализует SymbolRenderer для тестов
type mockSymbols struct {
	barcodeFunc func(code string) (image.Image, error)
	qrFunc      func(text string) (image.Image, error)

	barcodes []string
	qrs      []string
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func (m *mockSymbols) Barcode(code string) (image.Image, error) {
	m.barcodes = append(m.barcodes, code)
	if m.barcodeFunc != nil {
		return m.barcodeFunc(code)
	}
	return solid(40, 10), nil
}

func (m *mockSymbols) QR(text string) (image.Image, error) {
	m.qrs = append(m.qrs, text)
	if m.qrFunc != nil {
		return m.qrFunc(text)
	}
	return solid(20, 20), nil
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err)
	return n
}

func writeLogo(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, solid(w, h)))
	return path
}

func TestComposeSingleLabel(t *testing.T) {
	symbols := &mockSymbols{}
	c := New(symbols, Options{}, zap.NewNop())

	batch := models.LabelBatch{{Code: "123456789012", Name: "Motor Gear", Location: "R12"}}
	doc, err := c.Compose(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, "123456789012_labels.pdf", doc.FileName)
	assert.Equal(t, 1, doc.Pages)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(t, doc.Data))

	assert.Equal(t, []string{"123456789012"}, symbols.barcodes)
	assert.Equal(t, []string{"123456789012 | Motor Gear | R12"}, symbols.qrs)
}

func TestComposeMultiplePages(t *testing.T) {
	symbols := &mockSymbols{}
	c := New(symbols, Options{}, zap.NewNop())

	batch := models.LabelBatch{
		{Code: "111", Name: "A", Location: "R1"},
		{Code: "222", Name: "B", Location: "R2"},
		{Code: "333", Name: "C", Location: "R3"},
	}
	doc, err := c.Compose(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, "111,222,333_labels.pdf", doc.FileName)
	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, 3, pageCount(t, doc.Data))
	assert.Equal(t, []string{"111", "222", "333"}, symbols.barcodes)
}

func TestComposeWithRealSymbols(t *testing.T) {
	c := New(symbol.NewDefaultRenderer(), Options{LogoPath: writeLogo(t, 300, 60)}, zap.NewNop())

	batch := models.LabelBatch{
		{Code: "123456789012", Name: "Motor Gear", Location: "R12"},
		{Code: "987654321098", Name: "Brake Unit", Location: "R34"},
	}
	doc, err := c.Compose(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, "123456789012,987654321098_labels.pdf", doc.FileName)
	assert.Equal(t, 2, pageCount(t, doc.Data))
}

func TestComposeMissingLogo(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(&mockSymbols{}, Options{LogoPath: filepath.Join(t.TempDir(), "missing.png")}, zap.New(core))

	doc, err := c.Compose(context.Background(), models.LabelBatch{{Code: "1", Name: "A", Location: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, doc.Data))
	assert.Equal(t, 1, logs.FilterMessageSnippet("Logo could not be loaded").Len())
}

func TestComposeCorruptLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	core, logs := observer.New(zapcore.WarnLevel)
	c := New(&mockSymbols{}, Options{LogoPath: path}, zap.New(core))

	_, err := c.Compose(context.Background(), models.LabelBatch{{Code: "1", Name: "A", Location: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Len())
}

func TestComposeErrors(t *testing.T) {
	symbolErr := errors.New("unsupported characters")

	tests := []struct {
		name      string
		symbols   *mockSymbols
		batch     models.LabelBatch
		wantStage string
		wantCode  string
		wantErr   error
	}{
		{
			name:      "Empty batch",
			symbols:   &mockSymbols{},
			batch:     models.LabelBatch{},
			wantStage: StageInput,
			wantErr:   ErrEmptyBatch,
		},
		{
			name: "Barcode failure",
			symbols: &mockSymbols{barcodeFunc: func(code string) (image.Image, error) {
				if code == "bad" {
					return nil, symbolErr
				}
				return solid(10, 10), nil
			}},
			batch: models.LabelBatch{
				{Code: "good", Name: "A", Location: "B"},
				{Code: "bad", Name: "C", Location: "D"},
			},
			wantStage: StageBarcode,
			wantCode:  "bad",
			wantErr:   symbolErr,
		},
		{
			name: "QR failure",
			symbols: &mockSymbols{qrFunc: func(string) (image.Image, error) {
				return nil, symbolErr
			}},
			batch:     models.LabelBatch{{Code: "1", Name: "A", Location: "B"}},
			wantStage: StageQR,
			wantCode:  "1",
			wantErr:   symbolErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.symbols, Options{}, zap.NewNop())

			doc, err := c.Compose(context.Background(), tt.batch)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.wantErr)

			var re *RenderError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantStage, re.Stage)
			assert.Equal(t, tt.wantCode, re.Code)
		})
	}
}

func TestComposeUnsupportedBarcodeCharacters(t *testing.T) {
	c := New(symbol.NewDefaultRenderer(), Options{}, zap.NewNop())

	_, err := c.Compose(context.Background(), models.LabelBatch{{Code: "ÄÖÜ€", Name: "A", Location: "B"}})

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, StageBarcode, re.Stage)

	var se *symbol.SymbolError
	assert.ErrorAs(t, err, &se)
}

func TestComposeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(&mockSymbols{}, Options{}, zap.NewNop())
	_, err := c.Compose(ctx, models.LabelBatch{{Code: "1", Name: "A", Location: "B"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComposeIsRepeatable(t *testing.T) {
	c := New(&mockSymbols{}, Options{}, zap.NewNop())
	batch := models.LabelBatch{{Code: "1", Name: "A", Location: "B"}, {Code: "2", Name: "C", Location: "D"}}

	first, err := c.Compose(context.Background(), batch)
	require.NoError(t, err)
	second, err := c.Compose(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first.FileName, second.FileName)
	assert.Equal(t, pageCount(t, first.Data), pageCount(t, second.Data))
}
