package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates all tables needed by the workflow.
// Safe to call multiple times - uses IF NOT EXISTS.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Voter / driver / coordinator profiles. Read-only from the workflow's
-- perspective; account management lives elsewhere.
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL CHECK (role IN ('student', 'driver', 'coordinator')),
    region TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'unavailable')),
    phone TEXT NOT NULL DEFAULT '',
    bus_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_profiles_role_status ON profiles(role, status);

-- Bus requests (voting topics). Never deleted, only transitioned.
CREATE TABLE IF NOT EXISTS requests (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN
        ('active', 'threshold_reached', 'driver_assigned', 'approved', 'rejected', 'expired')),
    created_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deadline TIMESTAMPTZ NOT NULL,
    assigned_bus_id TEXT,
    assigned_driver_id TEXT,
    departure_time TIMESTAMPTZ,
    rejection_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);
CREATE INDEX IF NOT EXISTS idx_requests_region ON requests(region);

-- Votes are append-only. The UNIQUE constraint enforces one vote per
-- voter per request; weight is derived at aggregation time, never stored.
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL REFERENCES requests(id),
    voter_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (request_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_request_id ON votes(request_id);

-- Driver solicitation tickets, one per request.
CREATE TABLE IF NOT EXISTS tickets (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL UNIQUE REFERENCES requests(id),
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'accepted', 'escalated')),
    deadline TIMESTAMPTZ NOT NULL,
    accepted_driver_id TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);

CREATE TABLE IF NOT EXISTS ticket_responses (
    ticket_id TEXT NOT NULL REFERENCES tickets(id),
    driver_id TEXT NOT NULL,
    response TEXT NOT NULL DEFAULT 'pending' CHECK (response IN ('pending', 'accepted', 'declined')),
    responded_at TIMESTAMPTZ,
    PRIMARY KEY (ticket_id, driver_id)
);

-- In-app notification inbox. Append-only plus the read flag.
CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    recipient_id TEXT NOT NULL,
    title TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    severity TEXT NOT NULL DEFAULT 'info' CHECK (severity IN ('info', 'warning', 'critical')),
    request_id TEXT,
    action TEXT NOT NULL DEFAULT '',
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, read);
`
