package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

type RequestRepo struct {
	pool *pgxpool.Pool
}

func NewRequestRepo(pool *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{pool: pool}
}

const requestColumns = `id, title, description, region, status, created_by, created_at,
	deadline, assigned_bus_id, assigned_driver_id, departure_time, rejection_reason`

// Create inserts a new request in status 'active'.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO requests (id, title, description, region, status, created_by, created_at, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		req.ID, req.Title, req.Description, req.Region, req.Status,
		req.CreatedBy, req.CreatedAt, req.Deadline)
	return err
}

// Find returns a single request by id. Returns pgx.ErrNoRows when absent.
func (r *RequestRepo) Find(ctx context.Context, requestID string) (*model.Request, error) {
	var req model.Request
	err := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, requestID).Scan(
		&req.ID, &req.Title, &req.Description, &req.Region, &req.Status,
		&req.CreatedBy, &req.CreatedAt, &req.Deadline,
		&req.BusID, &req.DriverID, &req.DepartureTime, &req.RejectReason,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListOpen returns all requests still awaiting an outcome, newest first.
func (r *RequestRepo) ListOpen(ctx context.Context) ([]model.Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE status IN ('active', 'threshold_reached', 'driver_assigned')
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(
			&req.ID, &req.Title, &req.Description, &req.Region, &req.Status,
			&req.CreatedBy, &req.CreatedAt, &req.Deadline,
			&req.BusID, &req.DriverID, &req.DepartureTime, &req.RejectReason,
		); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// TransitionStatus performs the conditional status write that serializes
// all lifecycle transitions: the update applies only if the row still
// holds the status the caller read. Returns false when another actor got
// there first.
func (r *RequestRepo) TransitionStatus(ctx context.Context, requestID, from, to string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests SET status = $3 WHERE id = $1 AND status = $2`,
		requestID, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkExpired closes out an active request whose voting deadline passed.
func (r *RequestRepo) MarkExpired(ctx context.Context, requestID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests SET status = $2, rejection_reason = $3
		WHERE id = $1 AND status = $4`,
		requestID, model.StatusExpired, model.ExpiredReason, model.StatusActive)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AssignDriver binds the accepting driver and moves threshold_reached
// to driver_assigned, conditionally.
func (r *RequestRepo) AssignDriver(ctx context.Context, requestID, driverID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests SET status = $3, assigned_driver_id = $2
		WHERE id = $1 AND status = $4`,
		requestID, driverID, model.StatusDriverAssigned, model.StatusThresholdReached)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Approve binds bus, driver, and departure time and sets 'approved',
// conditionally on the status the caller last read.
func (r *RequestRepo) Approve(ctx context.Context, requestID, from, busID, driverID string, departure time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests
		SET status = $3, assigned_bus_id = $4, assigned_driver_id = $5, departure_time = $6
		WHERE id = $1 AND status = $2`,
		requestID, from, model.StatusApproved, busID, driverID, departure)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Reject sets 'rejected' with a reason, conditionally on the status the
// caller last read.
func (r *RequestRepo) Reject(ctx context.Context, requestID, from, reason string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests SET status = $3, rejection_reason = $4
		WHERE id = $1 AND status = $2`,
		requestID, from, model.StatusRejected, reason)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
