// Package storage adapts Cloudinary as the artifact storage collaborator:
// store a file, get back a public URL.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

const defaultUploadTimeout = 30 * time.Second

// Config captures the settings for the Cloudinary media store.
type Config struct {
	// URL is the cloudinary:// credential URL.
	URL string
	// Folder is the root folder stored assets are placed under.
	Folder string
	// Timeout bounds each upload call.
	Timeout time.Duration
}

// MediaStore uploads artifacts to Cloudinary and returns their public URLs.
type MediaStore struct {
	client  *cloudinary.Cloudinary
	folder  string
	timeout time.Duration
}

func NewMediaStore(cfg Config) (*MediaStore, error) {
	client, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	folder := cfg.Folder
	if folder == "" {
		folder = "klearnstudio"
	}

	return &MediaStore{client: client, folder: folder, timeout: timeout}, nil
}

// UploadImage stores a profile image and returns its public URL.
func (s *MediaStore) UploadImage(ctx context.Context, file ports.FileUpload) (string, error) {
	return s.upload(ctx, file, s.folder+"/profile_images", "image")
}

// UploadDocument stores an education proof document and returns its public URL.
func (s *MediaStore) UploadDocument(ctx context.Context, file ports.FileUpload) (string, error) {
	return s.upload(ctx, file, s.folder+"/education_proofs", "raw")
}

func (s *MediaStore) upload(ctx context.Context, file ports.FileUpload, folder, resourceType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUpload, file.Filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrUpload, file.Filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}
