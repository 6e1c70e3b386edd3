package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
)

const customerColumns = `id, company_name, client_code, address, state, state_code, gst_number, contact_person, mobile, tat_days, agreement_date, head_branch_email, status, created_at, updated_at`

// CustomerRepository manages persistence for customers and their branches.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository constructs a CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ExistsByClientCode reports whether a customer already uses the client code.
func (r *CustomerRepository) ExistsByClientCode(ctx context.Context, clientCode string) (bool, error) {
	const query = `SELECT COUNT(*) FROM customers WHERE client_code = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, clientCode); err != nil {
		return false, fmt.Errorf("check client code uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new customer and returns the generated id.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	const query = `INSERT INTO customers (company_name, client_code, address, state, state_code, gst_number, contact_person, mobile, tat_days, agreement_date, head_branch_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		customer.CompanyName, customer.ClientCode, customer.Address, customer.State,
		customer.StateCode, customer.GSTNumber, customer.ContactPerson, customer.Mobile,
		customer.TATDays, customer.AgreementDate, customer.HeadBranchEmail, customer.Status,
		customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// List returns all customers in storage order.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers`, customerColumns)
	var customers []models.Customer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// FindByID fetches a customer by id.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1 LIMIT 1`, customerColumns)
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find customer by id: %w", err)
	}
	return &customer, nil
}

// Update updates mutable customer fields.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE customers SET company_name = :company_name, address = :address, state = :state, state_code = :state_code, gst_number = :gst_number, contact_person = :contact_person, mobile = :mobile, tat_days = :tat_days, agreement_date = :agreement_date, head_branch_email = :head_branch_email, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer row and reports the affected count.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM customers WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete customer affected rows: %w", err)
	}
	return affected, nil
}

// CreateBranch inserts a branch for a customer.
func (r *CustomerRepository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	now := time.Now().UTC()
	branch.CreatedAt = now
	branch.UpdatedAt = now
	const query = `INSERT INTO branches (customer_id, name, email, is_head_branch, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		branch.CustomerID, branch.Name, branch.Email, branch.IsHeadBranch,
		branch.Status, branch.CreatedAt, branch.UpdatedAt,
	).Scan(&branch.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// ListBranches returns branches, optionally filtered by customer.
func (r *CustomerRepository) ListBranches(ctx context.Context, customerID int64) ([]models.Branch, error) {
	var branches []models.Branch
	if customerID > 0 {
		const query = `SELECT id, customer_id, name, email, is_head_branch, status, created_at, updated_at FROM branches WHERE customer_id = $1`
		if err := r.db.SelectContext(ctx, &branches, query, customerID); err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}
		return branches, nil
	}
	const query = `SELECT id, customer_id, name, email, is_head_branch, status, created_at, updated_at FROM branches`
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// FindBranchByID fetches a branch by id.
func (r *CustomerRepository) FindBranchByID(ctx context.Context, id int64) (*models.Branch, error) {
	const query = `SELECT id, customer_id, name, email, is_head_branch, status, created_at, updated_at FROM branches WHERE id = $1 LIMIT 1`
	var branch models.Branch
	if err := r.db.GetContext(ctx, &branch, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find branch by id: %w", err)
	}
	return &branch, nil
}

// UpdateBranch updates mutable branch fields.
func (r *CustomerRepository) UpdateBranch(ctx context.Context, branch *models.Branch) error {
	branch.UpdatedAt = time.Now().UTC()
	const query = `UPDATE branches SET name = :name, email = :email, is_head_branch = :is_head_branch, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, branch); err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// DeleteBranch removes a branch row and reports the affected count.
func (r *CustomerRepository) DeleteBranch(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM branches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete branch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete branch affected rows: %w", err)
	}
	return affected, nil
}
