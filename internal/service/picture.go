package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/templui/contacts/internal/storage"
	"github.com/templui/contacts/internal/validation"
)

// PictureService stores contact pictures under date-partitioned keys.
type PictureService struct {
	storage storage.Storage
	now     func() time.Time
}

func NewPictureService(storage storage.Storage) *PictureService {
	return &PictureService{
		storage: storage,
		now:     time.Now,
	}
}

// Validate checks an upload and returns its detected content type.
func (s *PictureService) Validate(header *multipart.FileHeader) (string, error) {
	return validation.ValidateImage(header, validation.PictureRules)
}

// Upload saves an already validated picture and returns its storage key,
// e.g. "pictures/2025/01/<uuid>.png".
func (s *PictureService) Upload(ctx context.Context, header *multipart.FileHeader, contentType string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	ext := validation.PictureRules.ContentTypes[contentType]
	now := s.now()
	key := path.Join("pictures", now.Format("2006"), now.Format("01"), uuid.New().String()+ext)

	err = s.storage.Save(ctx, key, file, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to save picture: %w", err)
	}

	return key, nil
}

func (s *PictureService) URL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	return s.storage.URL(ctx, key)
}

// Remove deletes a stored picture. Failures are logged, never returned.
func (s *PictureService) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	err := s.storage.Delete(ctx, key)
	if err != nil {
		slog.Error("failed to delete picture from storage", "error", err, "key", key)
	}
}
