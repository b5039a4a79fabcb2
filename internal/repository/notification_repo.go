package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// InsertBatch persists one notification row per recipient in a single
// transaction. This write is the durability guarantee for fanout; the
// secondary channel runs only after it commits.
func (r *NotificationRepo) InsertBatch(ctx context.Context, notifications []model.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, n := range notifications {
		_, err = tx.Exec(ctx, `
			INSERT INTO notifications (id, recipient_id, title, message, severity, request_id, action, read, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)`,
			n.ID, n.RecipientID, n.Title, n.Message, n.Severity,
			nullable(n.RequestID), n.Action, n.CreatedAt, n.ExpiresAt)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(notifications), nil
}

// ListForRecipient returns a recipient's inbox, unread first, newest first.
func (r *NotificationRepo) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, recipient_id, title, message, severity, COALESCE(request_id, ''), action, read, created_at, expires_at
		FROM notifications
		WHERE recipient_id = $1 AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY read ASC, created_at DESC
		LIMIT $2`,
		recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Severity,
			&n.RequestID, &n.Action, &n.Read, &n.CreatedAt, &n.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread returns a recipient's unread notification count.
func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND read = FALSE AND (expires_at IS NULL OR expires_at > NOW())`,
		recipientID).Scan(&count)
	return count, err
}

// MarkRead flags a notification as read. Scoped to the recipient so
// one user cannot mark another's inbox.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, recipientID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1 AND recipient_id = $2`,
		notificationID, recipientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
