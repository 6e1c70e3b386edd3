package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type holidayRepository interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	List(ctx context.Context) ([]models.Holiday, error)
	FindByID(ctx context.Context, id int64) (*models.Holiday, error)
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id int64) (int64, error)
	CreateActivity(ctx context.Context, activity *models.DailyActivity) error
	ListActivities(ctx context.Context, adminID int64) ([]models.DailyActivity, error)
	FindActivityByID(ctx context.Context, id int64) (*models.DailyActivity, error)
	UpdateActivity(ctx context.Context, activity *models.DailyActivity) error
	DeleteActivity(ctx context.Context, id int64) (int64, error)
}

// HolidayService manages the holiday calendar and per-admin daily activity
// logs.
type HolidayService struct {
	repo      holidayRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs a HolidayService instance.
func NewHolidayService(repo holidayRepository, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &HolidayService{repo: repo, validator: validate, logger: logger}
}

// Create adds a holiday. Titles are unique.
func (s *HolidayService) Create(ctx context.Context, req models.HolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}

	exists, err := s.repo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check holiday title")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "holiday title already exists")
	}

	holiday := &models.Holiday{Title: req.Title, Date: req.Date}
	if err := s.repo.Create(ctx, holiday); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "holiday title already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create holiday")
	}
	return holiday, nil
}

// List returns the holiday calendar.
func (s *HolidayService) List(ctx context.Context) ([]models.Holiday, error) {
	holidays, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list holidays")
	}
	return holidays, nil
}

// Update modifies a holiday.
func (s *HolidayService) Update(ctx context.Context, id int64, req models.HolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}

	holiday, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "holiday not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch holiday")
	}

	holiday.Title = req.Title
	holiday.Date = req.Date
	holiday.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, holiday); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "holiday title already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update holiday")
	}
	return holiday, nil
}

// Delete removes a holiday. Deleting an unknown id is not an error.
func (s *HolidayService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete holiday")
	}
	if affected == 0 {
		s.logger.Debug("delete holiday matched no rows", zap.Int64("holiday_id", id))
	}
	return nil
}

// CreateActivity records a daily activity row for the acting admin.
func (s *HolidayService) CreateActivity(ctx context.Context, adminID int64, req models.DailyActivityRequest) (*models.DailyActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid daily activity payload")
	}

	activity := &models.DailyActivity{
		AdminID:    adminID,
		Date:       req.Date,
		ClientName: req.ClientName,
		Task:       req.Task,
		Remarks:    req.Remarks,
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create daily activity")
	}
	return activity, nil
}

// ListActivities returns daily activity rows, optionally for one admin.
func (s *HolidayService) ListActivities(ctx context.Context, adminID int64) ([]models.DailyActivity, error) {
	activities, err := s.repo.ListActivities(ctx, adminID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list daily activities")
	}
	return activities, nil
}

// UpdateActivity modifies a daily activity row.
func (s *HolidayService) UpdateActivity(ctx context.Context, id int64, req models.DailyActivityRequest) (*models.DailyActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid daily activity payload")
	}

	activity, err := s.repo.FindActivityByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "daily activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch daily activity")
	}

	activity.Date = req.Date
	activity.ClientName = req.ClientName
	activity.Task = req.Task
	activity.Remarks = req.Remarks
	activity.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateActivity(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update daily activity")
	}
	return activity, nil
}

// DeleteActivity removes a daily activity row.
func (s *HolidayService) DeleteActivity(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteActivity(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete daily activity")
	}
	if affected == 0 {
		s.logger.Debug("delete daily activity matched no rows", zap.Int64("activity_id", id))
	}
	return nil
}
