package service

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/storage"
)

// StoredFile describes a persisted upload returned to the client.
type StoredFile struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// StorageService wraps the upload store with validation and cleanup policy.
type StorageService struct {
	uploads    *storage.UploadStorage
	logger     *zap.Logger
	cleanupTTL time.Duration
}

// StorageConfig tunes the upload retention policy.
type StorageConfig struct {
	CleanupTTL time.Duration
}

// NewStorageService constructs StorageService with sensible defaults.
func NewStorageService(uploads *storage.UploadStorage, logger *zap.Logger, config StorageConfig) *StorageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CleanupTTL <= 0 {
		config.CleanupTTL = 90 * 24 * time.Hour
	}
	return &StorageService{uploads: uploads, logger: logger, cleanupTTL: config.CleanupTTL}
}

// Store persists the upload under targetDir and returns its record.
func (s *StorageService) Store(ctx context.Context, file *multipart.FileHeader, targetDir string) (*StoredFile, error) {
	if file == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	relPath, err := s.uploads.SaveUpload(file, targetDir)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, http.StatusInternalServerError, "failed to store file")
	}
	s.logger.Info("file stored",
		zap.String("path", relPath),
		zap.Int64("size", file.Size),
	)
	return &StoredFile{
		Path:       relPath,
		Name:       file.Filename,
		Size:       file.Size,
		UploadedAt: time.Now(),
	}, nil
}

// Remove deletes a stored file. Missing files are treated as already removed.
func (s *StorageService) Remove(ctx context.Context, relPath string) error {
	if relPath == "" {
		return appErrors.Clone(appErrors.ErrValidation, "path is required")
	}
	if err := s.uploads.Delete(relPath); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, http.StatusInternalServerError, "failed to delete file")
	}
	return nil
}

// RunCleanup removes files past the retention window. Intended to run on a
// ticker from main.
func (s *StorageService) RunCleanup(ctx context.Context) {
	deleted, err := s.uploads.CleanupOlderThan(s.cleanupTTL)
	if err != nil {
		s.logger.Warn("upload cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("upload cleanup completed", zap.Int("deleted", len(deleted)))
	}
}
