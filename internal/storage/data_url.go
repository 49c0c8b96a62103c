package storage

import (
	"context"
	"encoding/base64"
)

// dataURLEncoder embeds the image in a base64 data URL, so the handle is self-contained.
type dataURLEncoder struct {
	maxBytes int64
}

// NewDataURLEncoder creates an encoder producing "data:<mime>;base64,<payload>" handles.
func NewDataURLEncoder(maxBytes int64) PhotoEncoder {
	return &dataURLEncoder{maxBytes: maxBytes}
}

func (e *dataURLEncoder) Encode(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mime, err := detectImage(image, e.maxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(image), nil
}
