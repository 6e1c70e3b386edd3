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

type billingContactRepository interface {
	Create(ctx context.Context, contactType models.BillingContactType, contact *models.BillingContact) error
	List(ctx context.Context, contactType models.BillingContactType, customerID int64) ([]models.BillingContact, error)
	FindByID(ctx context.Context, contactType models.BillingContactType, id int64) (*models.BillingContact, error)
	Update(ctx context.Context, contactType models.BillingContactType, contact *models.BillingContact) error
	Delete(ctx context.Context, contactType models.BillingContactType, id int64) (int64, error)
}

type billingCustomerLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// BillingService manages the per-customer billing contact rosters.
type BillingService struct {
	repo      billingContactRepository
	customers billingCustomerLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBillingService constructs a BillingService instance.
func NewBillingService(repo billingContactRepository, customers billingCustomerLookup, validate *validator.Validate, logger *zap.Logger) *BillingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BillingService{repo: repo, customers: customers, validator: validate, logger: logger}
}

// Create adds a contact of the given type to a customer.
func (s *BillingService) Create(ctx context.Context, contactType models.BillingContactType, req models.BillingContactRequest) (*models.BillingContact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	contact := &models.BillingContact{
		CustomerID:  req.CustomerID,
		Name:        req.Name,
		Designation: req.Designation,
		Phone:       req.Phone,
		Email:       req.Email,
	}
	if err := s.repo.Create(ctx, contactType, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create "+contactType.Label())
	}
	return contact, nil
}

// List returns contacts of the given type, optionally for one customer.
func (s *BillingService) List(ctx context.Context, contactType models.BillingContactType, customerID int64) ([]models.BillingContact, error) {
	contacts, err := s.repo.List(ctx, contactType, customerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list "+contactType.Label())
	}
	return contacts, nil
}

// Update modifies a contact.
func (s *BillingService) Update(ctx context.Context, contactType models.BillingContactType, id int64, req models.BillingContactRequest) (*models.BillingContact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	contact, err := s.repo.FindByID(ctx, contactType, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, contactType.Label()+" not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch "+contactType.Label())
	}

	contact.Name = req.Name
	contact.Designation = req.Designation
	contact.Phone = req.Phone
	contact.Email = req.Email
	contact.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, contactType, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update "+contactType.Label())
	}
	return contact, nil
}

// Delete removes a contact. Deleting an unknown id is not an error.
func (s *BillingService) Delete(ctx context.Context, contactType models.BillingContactType, id int64) error {
	affected, err := s.repo.Delete(ctx, contactType, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete "+contactType.Label())
	}
	if affected == 0 {
		s.logger.Debug("delete billing contact matched no rows", zap.String("type", string(contactType)), zap.Int64("id", id))
	}
	return nil
}
