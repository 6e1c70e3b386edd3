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

type customerRepository interface {
	ExistsByClientCode(ctx context.Context, clientCode string) (bool, error)
	Create(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) (int64, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
	ListBranches(ctx context.Context, customerID int64) ([]models.Branch, error)
	FindBranchByID(ctx context.Context, id int64) (*models.Branch, error)
	UpdateBranch(ctx context.Context, branch *models.Branch) error
	DeleteBranch(ctx context.Context, id int64) (int64, error)
}

// CustomerService manages BGV client companies and their branches.
type CustomerService struct {
	repo      customerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCustomerService constructs a CustomerService instance.
func NewCustomerService(repo customerRepository, validate *validator.Validate, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CustomerService{repo: repo, validator: validate, logger: logger}
}

// Create onboards a customer. Client codes are unique portal-wide; the head
// branch is created alongside the customer from the head branch email.
func (s *CustomerService) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid customer payload")
	}

	exists, err := s.repo.ExistsByClientCode(ctx, req.ClientCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check client code uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "client code already in use")
	}

	customer := &models.Customer{
		CompanyName:     req.CompanyName,
		ClientCode:      req.ClientCode,
		Address:         req.Address,
		State:           req.State,
		StateCode:       req.StateCode,
		GSTNumber:       req.GSTNumber,
		ContactPerson:   req.ContactPerson,
		Mobile:          req.Mobile,
		TATDays:         req.TATDays,
		AgreementDate:   req.AgreementDate,
		HeadBranchEmail: req.HeadBranchEmail,
		Status:          models.CustomerStatusActive,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "client code already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create customer")
	}

	headBranch := &models.Branch{
		CustomerID:   customer.ID,
		Name:         customer.CompanyName,
		Email:        customer.HeadBranchEmail,
		IsHeadBranch: true,
		Status:       models.CustomerStatusActive,
	}
	if err := s.repo.CreateBranch(ctx, headBranch); err != nil {
		s.logger.Error("failed to create head branch", zap.Int64("customer_id", customer.ID), zap.Error(err))
	}

	return customer, nil
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list customers")
	}
	return customers, nil
}

// Get fetches a customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}
	return customer, nil
}

// Update modifies a customer. The client code is immutable after creation.
func (s *CustomerService) Update(ctx context.Context, id int64, req models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid customer payload")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	customer.CompanyName = req.CompanyName
	customer.Address = req.Address
	customer.State = req.State
	customer.StateCode = req.StateCode
	customer.GSTNumber = req.GSTNumber
	customer.ContactPerson = req.ContactPerson
	customer.Mobile = req.Mobile
	customer.TATDays = req.TATDays
	customer.AgreementDate = req.AgreementDate
	customer.HeadBranchEmail = req.HeadBranchEmail
	customer.Status = req.Status
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update customer")
	}
	return customer, nil
}

// Delete removes a customer. Deleting an unknown id is not an error.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete customer")
	}
	if affected == 0 {
		s.logger.Debug("delete customer matched no rows", zap.Int64("customer_id", id))
	}
	return nil
}

// CreateBranch adds a branch to an existing customer. Branch emails are
// unique portal-wide.
func (s *CustomerService) CreateBranch(ctx context.Context, req models.CreateBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	if _, err := s.repo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch customer")
	}

	branch := &models.Branch{
		CustomerID:   req.CustomerID,
		Name:         req.Name,
		Email:        req.Email,
		IsHeadBranch: req.IsHeadBranch,
		Status:       models.CustomerStatusActive,
	}
	if err := s.repo.CreateBranch(ctx, branch); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "branch email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create branch")
	}
	return branch, nil
}

// ListBranches returns branches, optionally filtered by customer.
func (s *CustomerService) ListBranches(ctx context.Context, customerID int64) ([]models.Branch, error) {
	branches, err := s.repo.ListBranches(ctx, customerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list branches")
	}
	return branches, nil
}

// UpdateBranch modifies a branch.
func (s *CustomerService) UpdateBranch(ctx context.Context, id int64, req models.UpdateBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	branch, err := s.repo.FindBranchByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "branch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch branch")
	}

	branch.Name = req.Name
	branch.Email = req.Email
	branch.IsHeadBranch = req.IsHeadBranch
	branch.Status = req.Status
	branch.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBranch(ctx, branch); err != nil {
		if isUniqueViolationErr(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "branch email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update branch")
	}
	return branch, nil
}

// DeleteBranch removes a branch. Deleting an unknown id is not an error.
func (s *CustomerService) DeleteBranch(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteBranch(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete branch")
	}
	if affected == 0 {
		s.logger.Debug("delete branch matched no rows", zap.Int64("branch_id", id))
	}
	return nil
}
