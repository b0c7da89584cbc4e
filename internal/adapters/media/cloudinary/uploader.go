package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"pet-adoption/internal/ports/media"
)

var ErrUpload = errors.New("cloudinary upload failed")

// Uploader implementa media.Uploader contra Cloudinary (CLOUDINARY_URL).
type Uploader struct {
	cld *cloudinary.Cloudinary
}

func New(cloudinaryURL string) (*Uploader, error) {
	cloudinaryURL = strings.TrimSpace(cloudinaryURL)
	if cloudinaryURL == "" {
		return nil, media.ErrNotConfigured
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Uploader{cld: cld}, nil
}

func (u *Uploader) Upload(ctx context.Context, in media.Upload) (string, error) {
	if in.Body == nil {
		return "", fmt.Errorf("%w: empty body", ErrUpload)
	}

	overwrite := true
	resp, err := u.cld.Upload.Upload(ctx, in.Body, uploader.UploadParams{
		Folder:       in.Folder,
		PublicID:     in.PublicID,
		Overwrite:    &overwrite,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrUpload, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("%w: empty secure_url", ErrUpload)
	}
	return resp.SecureURL, nil
}
