package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ErrEmptyImage: пустой массив байт вместо фото.
var ErrEmptyImage = errors.New("empty image")

const jpegQuality = 90

// Decode разбирает JPEG или PNG.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Downscale уменьшает фото так, чтобы большая сторона не превышала maxSide,
// и перекодирует его в JPEG. maxSide == 0 отключает уменьшение.
func Downscale(data []byte, maxSide uint) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if maxSide > 0 && (uint(b.Dx()) > maxSide || uint(b.Dy()) > maxSide) {
		img = resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit растягивает изображение точно до width x height (вход модели).
func Fit(img image.Image, width, height uint) image.Image {
	return resize.Resize(width, height, img, resize.Bilinear)
}
