package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type trackerRepository interface {
	Create(ctx context.Context, submission *models.TrackerSubmission) error
	List(ctx context.Context, customerID int64) ([]models.TrackerSubmission, error)
	FindByID(ctx context.Context, id int64) (*models.TrackerSubmission, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type trackerCustomerLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// annexureKey marks the subtrees that are split out of the main flattened
// form into their own map.
const annexureKey = "annexure"

// TrackerService accepts nested client-master-tracker forms, flattens them,
// and persists both the raw form and its flat projections.
type TrackerService struct {
	repo      trackerRepository
	customers trackerCustomerLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrackerService constructs a TrackerService instance.
func NewTrackerService(repo trackerRepository, customers trackerCustomerLookup, validate *validator.Validate, logger *zap.Logger) *TrackerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TrackerService{repo: repo, customers: customers, validator: validate, logger: logger}
}

// Submit flattens and stores a tracker form for a customer.
func (s *TrackerService) Submit(ctx context.Context, adminID int64, req models.TrackerSubmitRequest) (*models.TrackerSubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tracker payload")
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	fields, annexures := FlattenForm(req.Form)

	rawForm, err := json.Marshal(req.Form)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode form")
	}
	flatFields, err := json.Marshal(fields)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode flattened fields")
	}
	flatAnnexures, err := json.Marshal(annexures)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode flattened annexures")
	}

	submission := &models.TrackerSubmission{
		CustomerID:    req.CustomerID,
		SubmittedBy:   adminID,
		RawForm:       rawForm,
		FlatFields:    flatFields,
		FlatAnnexures: flatAnnexures,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store tracker submission")
	}
	return submission, nil
}

// List returns tracker submissions, optionally for one customer.
func (s *TrackerService) List(ctx context.Context, customerID int64) ([]models.TrackerSubmission, error) {
	submissions, err := s.repo.List(ctx, customerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list tracker submissions")
	}
	return submissions, nil
}

// Get fetches a tracker submission by id.
func (s *TrackerService) Get(ctx context.Context, id int64) (*models.TrackerSubmission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tracker submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch tracker submission")
	}
	return submission, nil
}

// Delete removes a tracker submission.
func (s *TrackerService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete tracker submission")
	}
	if affected == 0 {
		s.logger.Debug("delete tracker submission matched no rows", zap.Int64("submission_id", id))
	}
	return nil
}

// FlattenForm walks a nested tracker form and produces two flat maps: the
// regular fields and the annexure subtrees. Nested keys are joined with
// underscores; array elements get their index as a path segment. A subtree
// under an "annexure" key lands in the annexure map keyed relative to that
// subtree, so annexure columns stay stable no matter where in the form the
// annexure block sits.
func FlattenForm(form map[string]interface{}) (fields, annexures map[string]interface{}) {
	fields = make(map[string]interface{})
	annexures = make(map[string]interface{})
	for key, value := range form {
		if key == annexureKey {
			flattenInto(annexures, "", value)
			continue
		}
		flattenSplit(fields, annexures, key, value)
	}
	return fields, annexures
}

// flattenSplit flattens value under prefix into fields, diverting any
// "annexure" subtree it encounters into annexures.
func flattenSplit(fields, annexures map[string]interface{}, prefix string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			if key == annexureKey {
				flattenInto(annexures, "", child)
				continue
			}
			flattenSplit(fields, annexures, joinKey(prefix, key), child)
		}
	case []interface{}:
		for i, child := range v {
			flattenSplit(fields, annexures, joinKey(prefix, strconv.Itoa(i)), child)
		}
	default:
		fields[prefix] = v
	}
}

// flattenInto flattens value under prefix into a single map with no
// annexure special-casing.
func flattenInto(dest map[string]interface{}, prefix string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			flattenInto(dest, joinKey(prefix, key), child)
		}
	case []interface{}:
		for i, child := range v {
			flattenInto(dest, joinKey(prefix, strconv.Itoa(i)), child)
		}
	default:
		if prefix == "" {
			// Scalar directly under an annexure key.
			prefix = annexureKey
		}
		dest[prefix] = v
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}
