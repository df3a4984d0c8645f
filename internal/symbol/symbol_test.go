package symbol

import (
	"image/color"
	"sync"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestBarcode(t *testing.T) {
	r := NewDefaultRenderer()

	img, err := r.Barcode("123456789012")
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.GreaterOrEqual(t, bounds.Dx(), barcodeTargetWidth/2)
	assert.Equal(t, barcodeTopPadding+barcodeBarsHeight+barcodeTextHeight, bounds.Dy())

	// Зона покоя слева должна быть белой.
	assert.True(t, isWhite(img.At(bounds.Min.X+1, bounds.Min.Y+barcodeTopPadding+barcodeBarsHeight/2)))
}

func TestBarcodeWithoutText(t *testing.T) {
	r := NewRenderer(Options{QRLevel: qrcode.Medium, HideText: true})

	img, err := r.Barcode("ABC-123")
	require.NoError(t, err)
	assert.Equal(t, barcodeTopPadding+barcodeBarsHeight, img.Bounds().Dy())
}

func TestBarcodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "Empty code", code: "", wantErr: ErrEmptyPayload},
		{name: "Unsupported characters", code: "ÄÖÜ€"},
	}

	r := NewDefaultRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Barcode(tt.code)
			require.Error(t, err)
			assert.Nil(t, img)

			var se *SymbolError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindBarcode, se.Kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestQR(t *testing.T) {
	r := NewRenderer(Options{QRLevel: qrcode.Medium, QRSize: 256})

	img, err := r.QR("123456789012 | Motor Gear | R12")
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	// Граница QR-кода белая.
	assert.True(t, isWhite(img.At(0, 0)))
}

func TestQREmpty(t *testing.T) {
	_, err := NewDefaultRenderer().QR("")
	assert.ErrorIs(t, err, ErrEmptyPayload)

	var se *SymbolError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindQR, se.Kind)
}

func TestRendererConcurrentUse(t *testing.T) {
	r := NewDefaultRenderer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Barcode("123456789012")
			assert.NoError(t, err)
			_, err = r.QR("123456789012 | Motor Gear | R12")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
