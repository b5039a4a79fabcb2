package model

import "time"

// Solicitation ticket statuses.
const (
	TicketOpen      = "open"
	TicketAccepted  = "accepted"
	TicketEscalated = "escalated"
)

// Per-driver responses on a ticket.
const (
	ResponsePending  = "pending"
	ResponseAccepted = "accepted"
	ResponseDeclined = "declined"
)

// Ticket tracks the outstanding driver accept/decline responses for
// one request. Created exactly once, at the threshold_reached
// transition; retired on first acceptance or on escalation.
type Ticket struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"requestId"`
	Status           string    `json:"status"`
	Deadline         time.Time `json:"deadline"`
	AcceptedDriverID *string   `json:"acceptedDriverId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TicketResponse is one driver's entry on a ticket.
type TicketResponse struct {
	TicketID    string     `json:"ticketId"`
	DriverID    string     `json:"driverId"`
	Response    string     `json:"response"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// Driver decisions accepted by the respond endpoint.
const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"
)

// RespondBody is the API request body for a driver's accept/decline.
type RespondBody struct {
	Decision string `json:"decision"`
}

// RespondOutcome is the API response after a driver responds. A late or
// duplicate response is a neutral no-effect acknowledgement, never an error.
type RespondOutcome struct {
	Accepted bool   `json:"accepted"`
	NoEffect bool   `json:"noEffect,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
