package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type directoryRepository interface {
	ExistsByName(ctx context.Context, dirType models.DirectoryType, name string) (bool, error)
	Create(ctx context.Context, dirType models.DirectoryType, entry *models.DirectoryEntry) error
	List(ctx context.Context, dirType models.DirectoryType) ([]models.DirectoryEntry, error)
	FindByID(ctx context.Context, dirType models.DirectoryType, id int64) (*models.DirectoryEntry, error)
	Update(ctx context.Context, dirType models.DirectoryType, entry *models.DirectoryEntry) error
	Delete(ctx context.Context, dirType models.DirectoryType, id int64) (int64, error)
}

type directoryCache interface {
	Enabled() bool
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// DirectoryCacheConfig tunes list caching for directory reads.
type DirectoryCacheConfig struct {
	TTL time.Duration
}

// DirectoryService manages the internal vendor, university and
// ex-employment organization directories. Directory lists are read far more
// often than they change, so List results are cached in Redis and the cache
// is invalidated on every write.
type DirectoryService struct {
	repo      directoryRepository
	cache     directoryCache
	validator *validator.Validate
	logger    *zap.Logger
	config    DirectoryCacheConfig
}

// NewDirectoryService constructs a DirectoryService instance.
func NewDirectoryService(repo directoryRepository, cache directoryCache, validate *validator.Validate, logger *zap.Logger, config DirectoryCacheConfig) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &DirectoryService{repo: repo, cache: cache, validator: validate, logger: logger, config: config}
}

// Create adds a directory entry. Names are unique within each directory.
func (s *DirectoryService) Create(ctx context.Context, dirType models.DirectoryType, req models.DirectoryEntryRequest) (*models.DirectoryEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid directory payload")
	}

	exists, err := s.repo.ExistsByName(ctx, dirType, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check name uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, dirType.Label()+" name already in use")
	}

	entry := &models.DirectoryEntry{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		State:         req.State,
		Remarks:       req.Remarks,
	}
	if err := s.repo.Create(ctx, dirType, entry); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, dirType.Label()+" name already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create "+string(dirType))
	}

	s.invalidate(ctx, dirType)
	return entry, nil
}

// List returns the directory, served from cache when warm.
func (s *DirectoryService) List(ctx context.Context, dirType models.DirectoryType) ([]models.DirectoryEntry, error) {
	key := s.cacheKey(dirType)
	if s.cacheEnabled() {
		var cached []models.DirectoryEntry
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	entries, err := s.repo.List(ctx, dirType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list "+string(dirType))
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, entries, s.config.TTL); err != nil {
			s.logger.Warn("directory cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return entries, nil
}

// Get fetches a single directory entry.
func (s *DirectoryService) Get(ctx context.Context, dirType models.DirectoryType, id int64) (*models.DirectoryEntry, error) {
	entry, err := s.repo.FindByID(ctx, dirType, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, dirType.Label()+" not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch "+string(dirType))
	}
	return entry, nil
}

// Update modifies a directory entry.
func (s *DirectoryService) Update(ctx context.Context, dirType models.DirectoryType, id int64, req models.DirectoryEntryRequest) (*models.DirectoryEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid directory payload")
	}

	entry, err := s.repo.FindByID(ctx, dirType, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, dirType.Label()+" not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch "+string(dirType))
	}

	entry.Name = req.Name
	entry.ContactPerson = req.ContactPerson
	entry.Phone = req.Phone
	entry.Email = req.Email
	entry.Address = req.Address
	entry.State = req.State
	entry.Remarks = req.Remarks

	if err := s.repo.Update(ctx, dirType, entry); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, dirType.Label()+" name already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update "+string(dirType))
	}

	s.invalidate(ctx, dirType)
	return entry, nil
}

// Delete removes a directory entry. Deleting an unknown id is not an error.
func (s *DirectoryService) Delete(ctx context.Context, dirType models.DirectoryType, id int64) error {
	affected, err := s.repo.Delete(ctx, dirType, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete "+string(dirType))
	}
	if affected == 0 {
		s.logger.Debug("delete directory entry matched no rows", zap.String("type", string(dirType)), zap.Int64("id", id))
	}
	s.invalidate(ctx, dirType)
	return nil
}

func (s *DirectoryService) cacheEnabled() bool {
	return s.cache != nil && s.cache.Enabled()
}

func (s *DirectoryService) cacheKey(dirType models.DirectoryType) string {
	return fmt.Sprintf("directory:%s:list", dirType)
}

func (s *DirectoryService) invalidate(ctx context.Context, dirType models.DirectoryType) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("directory:%s:*", dirType)); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.String("type", string(dirType)), zap.Error(err))
	}
}
