package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

// Target describes who a notification goes to: one user, every current
// holder of a role, or an explicit list (e.g. everyone who voted on a
// request).
type Target struct {
	UserID string
	Role   string
	Users  []string
}

func TargetUser(id string) Target     { return Target{UserID: id} }
func TargetRole(role string) Target   { return Target{Role: role} }
func TargetUsers(ids []string) Target { return Target{Users: ids} }

// Meta carries the structured correlation fields attached to every
// notification in a fanout.
type Meta struct {
	RequestID string
	Action    string
	ExpiresAt *time.Time
}

// NotifyService is the single fanout point for role-targeted messages.
// It always persists one inbox row per recipient before attempting the
// secondary SMS channel; SMS failures are logged and swallowed.
type NotifyService struct {
	repo     *repository.NotificationRepo
	profiles *repository.ProfileRepo
	sms      *SMSSender
}

func NewNotifyService(repo *repository.NotificationRepo, profiles *repository.ProfileRepo, sms *SMSSender) *NotifyService {
	return &NotifyService{repo: repo, profiles: profiles, sms: sms}
}

// Notify resolves the target to recipient ids, persists a notification
// per recipient, then fires the SMS side channel for critical messages.
// Returns the delivered (persisted) count.
func (s *NotifyService) Notify(ctx context.Context, target Target, title, message, severity string, meta Meta) (int, error) {
	recipients, err := s.resolve(ctx, target)
	if err != nil {
		return 0, err
	}
	recipients = DedupeRecipients(recipients)
	if len(recipients) == 0 {
		return 0, nil
	}

	now := time.Now()
	notifications := make([]model.Notification, 0, len(recipients))
	for _, id := range recipients {
		notifications = append(notifications, model.Notification{
			ID:          uuid.NewString(),
			RecipientID: id,
			Title:       title,
			Message:     message,
			Severity:    severity,
			RequestID:   meta.RequestID,
			Action:      meta.Action,
			CreatedAt:   now,
			ExpiresAt:   meta.ExpiresAt,
		})
	}

	delivered, err := s.repo.InsertBatch(ctx, notifications)
	if err != nil {
		return 0, err
	}

	// Secondary channel after the primary write committed. Critical
	// messages page people; everything else stays in-app.
	if severity == model.SeverityCritical && s.sms.Enabled() {
		phones, err := s.profiles.Phones(ctx, recipients)
		if err != nil {
			log.Printf("notify: phone lookup error: %v", err)
		} else if err := s.sms.Send(phones, title+": "+message); err != nil {
			log.Printf("notify: sms delivery error (in-app records persisted): %v", err)
		}
	}

	return delivered, nil
}

func (s *NotifyService) resolve(ctx context.Context, target Target) ([]string, error) {
	switch {
	case target.UserID != "":
		return []string{target.UserID}, nil
	case target.Role != "":
		profiles, err := s.profiles.ListByRole(ctx, target.Role, false)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(profiles))
		for _, p := range profiles {
			ids = append(ids, p.ID)
		}
		return ids, nil
	default:
		return target.Users, nil
	}
}

// DedupeRecipients drops duplicate ids while keeping first-seen order,
// so a voter who is also a coordinator gets one row per fanout.
func DedupeRecipients(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
