package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

// ProfileRepo is the read-only boundary to the externally managed user
// directory. The workflow never writes profiles.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Find returns a single profile by id.
func (r *ProfileRepo) Find(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, role, region, status, phone, bus_id
		FROM profiles WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Role, &p.Region, &p.Status, &p.Phone, &p.BusID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByRole returns all holders of a role, optionally restricted to
// those marked available. Used for solicitation and role fanout.
func (r *ProfileRepo) ListByRole(ctx context.Context, role string, onlyAvailable bool) ([]model.Profile, error) {
	query := `
		SELECT id, name, role, region, status, phone, bus_id
		FROM profiles WHERE role = $1`
	if onlyAvailable {
		query += ` AND status = 'available'`
	}

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Region, &p.Status, &p.Phone, &p.BusID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Phones returns the stored phone numbers for the given profile ids,
// skipping profiles without one. Used by the SMS side channel.
func (r *ProfileRepo) Phones(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT phone FROM profiles WHERE id = ANY($1) AND phone <> ''`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, err
		}
		out = append(out, phone)
	}
	return out, rows.Err()
}
