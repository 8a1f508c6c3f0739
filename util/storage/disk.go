package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/opencivic/civic-api/util"
)

// Disk writes photos to a directory served as static files
// (the frontend's public uploads path).
type Disk struct {
	Dir       string
	PublicURL string
}

func NewDisk(dir, publicURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &Disk{Dir: dir, PublicURL: publicURL}, nil
}

func (d *Disk) Save(_ context.Context, file io.Reader, originalName string) (string, error) {
	name := util.UploadFileName(originalName)

	dst, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return path.Join(d.PublicURL, name), nil
}
