package composer

import (
	"fmt"
	"image"
	_ "image/jpeg" // декодеры для логотипа
	_ "image/png"
	"os"
)

// loadLogo читает и декодирует изображение логотипа.
func loadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return img, nil
}
