package domain

import "image"

// Image is a decoded photo image together with its original encoded bytes.
type Image struct {
	Data    []byte
	Format  string // decoder name: jpeg, png, gif, webp, bmp, tiff
	Width   int
	Height  int
	Decoded image.Image
}

// ContentType returns the MIME type matching the decoded format.
func (i Image) ContentType() string {
	switch i.Format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
