package storage

import (
	"context"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores report photos in a Cloudinary folder and
// serves them from the returned secure URL.
type Cloudinary struct {
	CLD    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) *Cloudinary {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	return &Cloudinary{CLD: cld, Folder: folder}
}

func (c *Cloudinary) Save(ctx context.Context, file io.Reader, _ string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, file, uploader.UploadParams{Folder: c.Folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
