package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Insert records a vote. The UNIQUE (request_id, voter_id) constraint
// makes double voting a no-op insert; inserted=false tells the caller
// to surface AlreadyVoted. A pg_notify on the request id wakes the
// evaluation worker in the same transaction as the vote itself.
func (r *VoteRepo) Insert(ctx context.Context, vote *model.Vote) (inserted bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO votes (id, request_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (request_id, voter_id) DO NOTHING`,
		vote.ID, vote.RequestID, vote.VoterID, vote.CreatedAt)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('request_votes', $1)`, vote.RequestID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

// VoterRegions returns each voter on a request together with that
// voter's home region. The aggregator derives weights from these rows;
// nothing is precomputed or stored.
func (r *VoteRepo) VoterRegions(ctx context.Context, requestID string) ([]model.VoterRegion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.voter_id, COALESCE(p.region, '')
		FROM votes v
		LEFT JOIN profiles p ON p.id = v.voter_id
		WHERE v.request_id = $1`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VoterRegion
	for rows.Next() {
		var vr model.VoterRegion
		if err := rows.Scan(&vr.VoterID, &vr.Region); err != nil {
			return nil, err
		}
		out = append(out, vr)
	}
	return out, rows.Err()
}

// VoterIDs returns the distinct voters on a request, for fanout targeting.
func (r *VoteRepo) VoterIDs(ctx context.Context, requestID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT voter_id FROM votes WHERE request_id = $1`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
