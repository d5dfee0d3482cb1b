package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
)

type Encode func(io.Writer, image.Image) error

// GetEncoder returns the encoder matching the extension of a file name.
func GetEncoder(file string) (Encode, error) {
	outputExt := filepath.Ext(file)
	var encode Encode
	switch outputExt {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	default:
		return nil, fmt.Errorf("image: unsupported extension: %s", outputExt)
	}
	return encode, nil
}
