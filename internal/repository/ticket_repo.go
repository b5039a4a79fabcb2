package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

type TicketRepo struct {
	pool *pgxpool.Pool
}

func NewTicketRepo(pool *pgxpool.Pool) *TicketRepo {
	return &TicketRepo{pool: pool}
}

// Create inserts a ticket with one pending entry per solicited driver.
// The UNIQUE constraint on request_id guarantees exactly one ticket per
// request even if two evaluators cross the threshold concurrently;
// created=false means another writer already opened it.
func (r *TicketRepo) Create(ctx context.Context, ticket *model.Ticket, driverIDs []string) (created bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO tickets (id, request_id, status, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (request_id) DO NOTHING`,
		ticket.ID, ticket.RequestID, ticket.Status, ticket.Deadline, ticket.CreatedAt)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	for _, driverID := range driverIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO ticket_responses (ticket_id, driver_id, response)
			VALUES ($1, $2, $3)`,
			ticket.ID, driverID, model.ResponsePending)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit(ctx)
}

// FindByRequest returns the ticket for a request, or pgx.ErrNoRows when
// the request never reached solicitation.
func (r *TicketRepo) FindByRequest(ctx context.Context, requestID string) (*model.Ticket, error) {
	var t model.Ticket
	err := r.pool.QueryRow(ctx, `
		SELECT id, request_id, status, deadline, accepted_driver_id, created_at
		FROM tickets WHERE request_id = $1`, requestID).Scan(
		&t.ID, &t.RequestID, &t.Status, &t.Deadline, &t.AcceptedDriverID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Responses returns all driver entries on a ticket.
func (r *TicketRepo) Responses(ctx context.Context, ticketID string) ([]model.TicketResponse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticket_id, driver_id, response, responded_at
		FROM ticket_responses WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TicketResponse
	for rows.Next() {
		var tr model.TicketResponse
		if err := rows.Scan(&tr.TicketID, &tr.DriverID, &tr.Response, &tr.RespondedAt); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// MarkResponse records a driver's decision, conditionally on the entry
// still being pending. Returns false for duplicate submissions.
func (r *TicketRepo) MarkResponse(ctx context.Context, ticketID, driverID, response string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE ticket_responses SET response = $3, responded_at = NOW()
		WHERE ticket_id = $1 AND driver_id = $2 AND response = $4`,
		ticketID, driverID, response, model.ResponsePending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CloseIfOpen retires the ticket, conditionally on it still being open.
// This single conditional write is what resolves the first-accept-wins
// race: of two concurrent accepts, exactly one sees closed=true.
func (r *TicketRepo) CloseIfOpen(ctx context.Context, ticketID, toStatus string, acceptedDriverID *string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tickets SET status = $2, accepted_driver_id = $3
		WHERE id = $1 AND status = $4`,
		ticketID, toStatus, acceptedDriverID, model.TicketOpen)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListExpiredOpen returns open tickets whose deadline has passed, for
// the periodic escalation sweep.
func (r *TicketRepo) ListExpiredOpen(ctx context.Context, now time.Time) ([]model.Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, request_id, status, deadline, accepted_driver_id, created_at
		FROM tickets WHERE status = $1 AND deadline < $2`,
		model.TicketOpen, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.RequestID, &t.Status, &t.Deadline, &t.AcceptedDriverID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
