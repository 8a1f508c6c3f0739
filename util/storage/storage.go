package storage

import (
	"context"
	"io"
)

// PhotoStore saves an uploaded report photo and returns the URL
// it will be served from.
type PhotoStore interface {
	Save(ctx context.Context, file io.Reader, originalName string) (string, error)
}
