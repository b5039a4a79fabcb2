package model

import "time"

// Notification severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Notification action types, kept stable for client-side correlation.
const (
	ActionSolicited = "driver_solicited"
	ActionAssigned  = "driver_assigned"
	ActionApproved  = "request_approved"
	ActionRejected  = "request_rejected"
	ActionExpired   = "request_expired"
	ActionEscalated = "request_escalated"
)

// Notification is one recipient's in-app inbox record. The persisted row
// is the durability guarantee; SMS is best-effort on top of it.
type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipientId"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Severity    string     `json:"severity"`
	RequestID   string     `json:"requestId,omitempty"`
	Action      string     `json:"action,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// InboxResponse is the API response for an actor's notification inbox.
type InboxResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}
