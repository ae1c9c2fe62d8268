package store

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/timmy/photorama/internal/domain"
)

// decodeImage decodes data with every registered format.
func decodeImage(photoID string, data []byte) (domain.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Image{}, &domain.ImageDecodeError{PhotoID: photoID, Size: len(data), Err: err}
	}
	b := img.Bounds()
	return domain.Image{
		Data:    data,
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Decoded: img,
	}, nil
}
