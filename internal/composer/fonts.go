package composer

import (
	"fmt"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
)

// fontFamilies сопоставляет начертания с TTF-данными шрифтов Go.
var fontFamilies = map[FontStyle][]byte{
	FontBold:   gobold.TTF,
	FontItalic: goitalic.TTF,
}

func registerFonts(pdf *gopdf.GoPdf) error {
	for _, style := range []FontStyle{FontBold, FontItalic} {
		if err := pdf.AddTTFFontData(string(style), fontFamilies[style]); err != nil {
			return fmt.Errorf("add font %s: %w", style, err)
		}
	}
	return nil
}
