package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decomly/lead-broker/internal/entity"
)

type VendorRepository struct {
	DB *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{DB: db}
}

const vendorColumns = `id, user_id, company_name, contact_name, phone, service_states,
	status, is_active, leads_purchased, leads_closed, created_at, updated_at`

func (r *VendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (
			id, user_id, company_name, contact_name, phone, service_states,
			status, is_active, leads_purchased, leads_closed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		vendor.ID,
		vendor.UserID,
		vendor.CompanyName,
		nullString(vendor.ContactName),
		nullString(vendor.Phone),
		nullString(vendor.ServiceStates),
		vendor.Status,
		vendor.IsActive,
		vendor.LeadsPurchased,
		vendor.LeadsClosed,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}

	return nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *VendorRepository) FindByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *VendorRepository) FindApprovedByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE user_id = $1 AND status = 'approved'`
	return r.findOne(ctx, query, userID)
}

func (r *VendorRepository) List(ctx context.Context, p entity.Pagination) ([]*entity.Vendor, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vendors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	query := `SELECT ` + vendorColumns + ` FROM vendors ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []*entity.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, vendor)
	}

	return vendors, total, rows.Err()
}

// UpdateStatus writes status and the derived is_active flag in one
// statement so the two can never disagree.
func (r *VendorRepository) UpdateStatus(ctx context.Context, id string, status entity.VendorStatus, isActive bool) error {
	query := `UPDATE vendors SET status = $1, is_active = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.DB.ExecContext(ctx, query, status, isActive, id)
	if err != nil {
		return fmt.Errorf("update vendor status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrVendorNotFound
	}

	return nil
}

func (r *VendorRepository) IncrementLeadsPurchased(ctx context.Context, id string) error {
	query := `UPDATE vendors SET leads_purchased = leads_purchased + 1, updated_at = NOW() WHERE id = $1`

	_, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment leads purchased: %w", err)
	}
	return nil
}

func (r *VendorRepository) IncrementLeadsClosed(ctx context.Context, id string) error {
	query := `UPDATE vendors SET leads_closed = leads_closed + 1, updated_at = NOW() WHERE id = $1`

	_, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment leads closed: %w", err)
	}
	return nil
}

func (r *VendorRepository) findOne(ctx context.Context, query string, arg any) (*entity.Vendor, error) {
	vendor, err := scanVendor(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrVendorNotFound
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return vendor, nil
}

func scanVendor(row rowScanner) (*entity.Vendor, error) {
	var vendor entity.Vendor
	var contactName, phone, serviceStates sql.NullString

	err := row.Scan(
		&vendor.ID,
		&vendor.UserID,
		&vendor.CompanyName,
		&contactName,
		&phone,
		&serviceStates,
		&vendor.Status,
		&vendor.IsActive,
		&vendor.LeadsPurchased,
		&vendor.LeadsClosed,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	vendor.ContactName = contactName.String
	vendor.Phone = phone.String
	vendor.ServiceStates = serviceStates.String

	return &vendor, nil
}
