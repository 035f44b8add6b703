package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"softwaresur_backend/platform/apperr"
)

const quoteNotFoundMsg = "quote request not found"

// QuoteRequest is the persisted shape of a customer quote request.
type QuoteRequest struct {
	ID              uuid.UUID
	TrackingID      string
	Name            string
	Email           string
	ServiceInterest *string
	Message         string
	SubmittedAt     time.Time
	Status          string
	AdminResponse   *string
	QuotedAmount    *float64
	AttachmentName  *string
	RespondedAt     *time.Time
	InternalNotes   *string
}

// ResponseTemplate is a canned admin reply stored in the database.
type ResponseTemplate struct {
	ID      string
	Title   string
	Content string
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextTrackingNumber atomically increments and returns the quote counter.
// The upsert keeps the first allocation working on an empty table.
func (r *Repository) NextTrackingNumber(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO quote_counters (id, last_number)
		VALUES ('quote_requests', 1)
		ON CONFLICT (id)
		DO UPDATE SET last_number = quote_counters.last_number + 1
		RETURNING last_number`

	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to increment quote counter: %w", err)
	}
	return n, nil
}

func (r *Repository) Create(ctx context.Context, q *QuoteRequest) error {
	query := `
		INSERT INTO quote_requests (
			id, tracking_id, name, email, service_interest, message,
			submitted_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		q.ID, q.TrackingID, q.Name, q.Email, q.ServiceInterest, q.Message,
		q.SubmittedAt, q.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote request: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*QuoteRequest, error) {
	query := selectColumns + ` WHERE id = $1`

	q, err := scanQuoteRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	return q, nil
}

// ListAll returns every quote request, newest submission first.
func (r *Repository) ListAll(ctx context.Context) ([]QuoteRequest, error) {
	query := selectColumns + ` ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	defer rows.Close()

	var out []QuoteRequest
	for rows.Next() {
		q, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote request: %w", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote requests: %w", err)
	}
	return out, nil
}

// Update writes back every mutable column; the service merges partial
// input into the loaded record before calling this.
func (r *Repository) Update(ctx context.Context, q *QuoteRequest) error {
	query := `
		UPDATE quote_requests
		SET status = $2,
		    admin_response = $3,
		    quoted_amount = $4,
		    attachment_name = $5,
		    internal_notes = $6,
		    responded_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		q.ID, q.Status, q.AdminResponse, q.QuotedAmount, q.AttachmentName,
		q.InternalNotes, q.RespondedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// Delete removes a quote request. Deleting an unknown ID is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM quote_requests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete quote request: %w", err)
	}
	return nil
}

func (r *Repository) ListResponseTemplates(ctx context.Context) ([]ResponseTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, content FROM response_templates ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list response templates: %w", err)
	}
	defer rows.Close()

	var out []ResponseTemplate
	for rows.Next() {
		var t ResponseTemplate
		if err := rows.Scan(&t.ID, &t.Title, &t.Content); err != nil {
			return nil, fmt.Errorf("failed to scan response template: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate response templates: %w", err)
	}
	return out, nil
}

const selectColumns = `
	SELECT id, tracking_id, name, email, service_interest, message,
	       submitted_at, status, admin_response, quoted_amount,
	       attachment_name, responded_at, internal_notes
	FROM quote_requests`

func scanQuoteRequest(row pgx.Row) (*QuoteRequest, error) {
	var q QuoteRequest
	err := row.Scan(
		&q.ID, &q.TrackingID, &q.Name, &q.Email, &q.ServiceInterest,
		&q.Message, &q.SubmittedAt, &q.Status, &q.AdminResponse,
		&q.QuotedAmount, &q.AttachmentName, &q.RespondedAt, &q.InternalNotes,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
