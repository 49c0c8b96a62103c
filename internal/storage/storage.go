package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// PhotoEncoder turns raw image bytes into an opaque handle that can be stored on an
// account and rendered directly later (a data URL or an object URL).
type PhotoEncoder interface {
	Encode(ctx context.Context, image []byte) (string, error)
}

// Error constants for storage layer
var (
	ErrEmptyImage    = errors.New("image is empty")
	ErrImageTooLarge = errors.New("image exceeds the configured size limit")
	ErrNotAnImage    = errors.New("content is not an image")
)

// detectImage sniffs the content type of image and enforces the size limit (0 = unlimited).
func detectImage(image []byte, maxBytes int64) (*mimetype.MIME, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if maxBytes > 0 && int64(len(image)) > maxBytes {
		return nil, ErrImageTooLarge
	}
	mime := mimetype.Detect(image)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, ErrNotAnImage
	}
	return mime, nil
}
