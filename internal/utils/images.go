package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"
)

// ResizeImage decodes an uploaded image, scales it to 500x500 and re-encodes
// it as JPEG at quality 90. All stored images share this shape.
func ResizeImage(file multipart.File) ([]byte, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Resize(img, 500, 500, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, resized, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}

// IsImageUpload checks the declared content type of a multipart file header.
func IsImageUpload(header *multipart.FileHeader) bool {
	return strings.HasPrefix(header.Header.Get("Content-Type"), "image")
}
