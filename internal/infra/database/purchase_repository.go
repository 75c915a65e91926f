package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/decomly/lead-broker/internal/entity"
)

type PurchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

const purchaseColumns = `id, lead_id, vendor_id, status, payment_intent_id, price,
	outcome, outcome_value, outcome_notes, outcome_updated_at, created_at`

func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.LeadPurchase) error {
	query := `
		INSERT INTO lead_purchases (
			id, lead_id, vendor_id, status, payment_intent_id, price, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		purchase.ID,
		purchase.LeadID,
		purchase.VendorID,
		purchase.Status,
		purchase.PaymentIntentID,
		purchase.Price,
		purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	return nil
}

func (r *PurchaseRepository) FindPending(ctx context.Context, leadID, vendorID string) (*entity.LeadPurchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM lead_purchases
		WHERE lead_id = $1 AND vendor_id = $2 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.findOne(ctx, query, leadID, vendorID)
}

func (r *PurchaseRepository) FindActiveByLeadAndVendor(ctx context.Context, leadID, vendorID string) (*entity.LeadPurchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM lead_purchases
		WHERE lead_id = $1 AND vendor_id = $2 AND status IN ('pending', 'completed')
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.findOne(ctx, query, leadID, vendorID)
}

func (r *PurchaseRepository) FindByIDAndVendor(ctx context.Context, id, vendorID string) (*entity.LeadPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM lead_purchases WHERE id = $1 AND vendor_id = $2`
	return r.findOne(ctx, query, id, vendorID)
}

func (r *PurchaseRepository) ListByVendor(ctx context.Context, vendorID string, p entity.Pagination) ([]*entity.PurchaseWithLead, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM lead_purchases WHERE vendor_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, vendorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	query := `
		SELECT
			p.id, p.lead_id, p.vendor_id, p.status, p.payment_intent_id, p.price,
			p.outcome, p.outcome_value, p.outcome_notes, p.outcome_updated_at, p.created_at,
			l.id, l.job_type, l.origin_state, l.destination_state, l.timeline,
			l.contact_name, l.contact_email, l.contact_phone, l.company_name,
			l.price, l.tier, l.max_sales, l.sold_count, l.status, l.created_at, l.updated_at
		FROM lead_purchases p
		JOIN leads l ON l.id = p.lead_id
		WHERE p.vendor_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, vendorID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []*entity.PurchaseWithLead{}
	for rows.Next() {
		item, err := scanPurchaseWithLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, item)
	}

	return purchases, total, rows.Err()
}

// CompletePending is the idempotency gate for webhook reconciliation:
// the update is conditioned on status still being pending, so a
// redelivered completion event affects zero rows and changes nothing.
func (r *PurchaseRepository) CompletePending(ctx context.Context, id string) (bool, error) {
	query := `UPDATE lead_purchases SET status = 'completed' WHERE id = $1 AND status = 'pending'`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("complete purchase: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *PurchaseRepository) MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentID string) error {
	query := `UPDATE lead_purchases SET status = 'refunded' WHERE payment_intent_id = $1`

	result, err := r.DB.ExecContext(ctx, query, paymentIntentID)
	if err != nil {
		return fmt.Errorf("mark purchase refunded: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPurchaseNotFound
	}

	return nil
}

func (r *PurchaseRepository) UpdateOutcome(ctx context.Context, id string, outcome entity.PurchaseOutcome, value *decimal.Decimal, notes *string, at time.Time) error {
	query := `
		UPDATE lead_purchases
		SET outcome = $1, outcome_value = $2, outcome_notes = $3, outcome_updated_at = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(ctx, query, outcome, value, notes, at, id)
	if err != nil {
		return fmt.Errorf("update purchase outcome: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPurchaseNotFound
	}

	return nil
}

func (r *PurchaseRepository) findOne(ctx context.Context, query string, args ...any) (*entity.LeadPurchase, error) {
	purchase, err := scanPurchase(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return purchase, nil
}

func scanPurchase(row rowScanner) (*entity.LeadPurchase, error) {
	var purchase entity.LeadPurchase
	var outcome, notes sql.NullString
	var value decimal.NullDecimal
	var updatedAt sql.NullTime

	err := row.Scan(
		&purchase.ID,
		&purchase.LeadID,
		&purchase.VendorID,
		&purchase.Status,
		&purchase.PaymentIntentID,
		&purchase.Price,
		&outcome,
		&value,
		&notes,
		&updatedAt,
		&purchase.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyOutcomeFields(&purchase, outcome, value, notes, updatedAt)

	return &purchase, nil
}

func scanPurchaseWithLead(rows *sql.Rows) (*entity.PurchaseWithLead, error) {
	var item entity.PurchaseWithLead
	var outcome, notes sql.NullString
	var value decimal.NullDecimal
	var updatedAt sql.NullTime
	var destinationState, timeline sql.NullString

	err := rows.Scan(
		&item.ID,
		&item.LeadID,
		&item.VendorID,
		&item.Status,
		&item.PaymentIntentID,
		&item.Price,
		&outcome,
		&value,
		&notes,
		&updatedAt,
		&item.CreatedAt,
		&item.Lead.ID,
		&item.Lead.JobType,
		&item.Lead.OriginState,
		&destinationState,
		&timeline,
		&item.Lead.ContactName,
		&item.Lead.ContactEmail,
		&item.Lead.ContactPhone,
		&item.Lead.CompanyName,
		&item.Lead.Price,
		&item.Lead.Tier,
		&item.Lead.MaxSales,
		&item.Lead.SoldCount,
		&item.Lead.Status,
		&item.Lead.CreatedAt,
		&item.Lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyOutcomeFields(&item.LeadPurchase, outcome, value, notes, updatedAt)
	item.Lead.DestinationState = destinationState.String
	item.Lead.Timeline = timeline.String

	return &item, nil
}

func applyOutcomeFields(p *entity.LeadPurchase, outcome sql.NullString, value decimal.NullDecimal, notes sql.NullString, updatedAt sql.NullTime) {
	if outcome.Valid {
		o := entity.PurchaseOutcome(outcome.String)
		p.Outcome = &o
	}
	if value.Valid {
		p.OutcomeValue = &value.Decimal
	}
	if notes.Valid {
		p.OutcomeNotes = &notes.String
	}
	if updatedAt.Valid {
		p.OutcomeUpdatedAt = &updatedAt.Time
	}
}
