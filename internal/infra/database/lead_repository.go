package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/decomly/lead-broker/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, job_type, origin_state, destination_state, timeline,
	contact_name, contact_email, contact_phone, company_name,
	price, tier, max_sales, sold_count, status, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, job_type, origin_state, destination_state, timeline,
			contact_name, contact_email, contact_phone, company_name,
			price, tier, max_sales, sold_count, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.JobType,
		lead.OriginState,
		nullString(lead.DestinationState),
		nullString(lead.Timeline),
		lead.ContactName,
		lead.ContactEmail,
		lead.ContactPhone,
		lead.CompanyName,
		lead.Price,
		lead.Tier,
		lead.MaxSales,
		lead.SoldCount,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}

	return lead, nil
}

// ListAvailable pages through leads that still have capacity left. The
// availability predicate lives in SQL so a concurrently sold lead never
// punches a hole in the page a vendor is looking at.
func (r *LeadRepository) ListAvailable(ctx context.Context, filter entity.LeadFilter, p entity.Pagination) ([]*entity.Lead, int, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{sq.Expr("sold_count < max_sales")}
	if filter.JobType != "" {
		where = append(where, sq.Eq{"job_type": filter.JobType})
	}
	if filter.OriginState != "" {
		where = append(where, sq.Eq{"origin_state": filter.OriginState})
	}

	countSQL, countArgs, err := builder.Select("COUNT(*)").From("leads").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count available leads: %w", err)
	}

	listSQL, listArgs, err := builder.
		Select(leadColumns).
		From("leads").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit())).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list available leads: %w", err)
	}
	defer rows.Close()

	leads, err := collectLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *LeadRepository) List(ctx context.Context, p entity.Pagination) ([]*entity.Lead, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := collectLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	query := `UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

// IncrementSoldCount bumps sold_count server-side. The sold_count <
// max_sales guard keeps the capacity invariant even when two purchases
// of the same lead complete at once.
func (r *LeadRepository) IncrementSoldCount(ctx context.Context, id string) error {
	query := `
		UPDATE leads
		SET sold_count = sold_count + 1, updated_at = NOW()
		WHERE id = $1 AND sold_count < max_sales
	`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment sold count: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("lead %s has no capacity left or does not exist", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var destinationState, timeline sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.JobType,
		&lead.OriginState,
		&destinationState,
		&timeline,
		&lead.ContactName,
		&lead.ContactEmail,
		&lead.ContactPhone,
		&lead.CompanyName,
		&lead.Price,
		&lead.Tier,
		&lead.MaxSales,
		&lead.SoldCount,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.DestinationState = destinationState.String
	lead.Timeline = timeline.String

	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
