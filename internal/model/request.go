package model

import "time"

// Request statuses.
const (
	StatusActive           = "active"
	StatusThresholdReached = "threshold_reached"
	StatusDriverAssigned   = "driver_assigned"
	StatusApproved         = "approved"
	StatusRejected         = "rejected"
	StatusExpired          = "expired"
)

// ExpiredReason is the user-facing text for requests whose voting
// period lapsed before reaching the threshold.
const ExpiredReason = "Voting period expired"

// IsTerminal reports whether a request status permits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Request is a student-initiated proposal for an extra bus.
type Request struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Region        string     `json:"region"`
	Status        string     `json:"status"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	Deadline      time.Time  `json:"deadline"`
	BusID         *string    `json:"busId,omitempty"`
	DriverID      *string    `json:"driverId,omitempty"`
	DepartureTime *time.Time `json:"departureTime,omitempty"`
	RejectReason  *string    `json:"rejectionReason,omitempty"`
}

// CreateRequestBody is the API request body for creating a bus request.
type CreateRequestBody struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Region          string `json:"region"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// CreateRequestResponse is the API response after creating a request.
type CreateRequestResponse struct {
	RequestID string    `json:"requestId"`
	Deadline  time.Time `json:"deadline"`
}

// RequestView is the API response for request lookups. Reading a view
// triggers lazy expiry/threshold evaluation first, so the status here
// is always current.
type RequestView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Region        string     `json:"region"`
	Status        string     `json:"status"`
	WeightedVotes float64    `json:"weightedVotes"`
	RequiredVotes float64    `json:"requiredVotes"`
	VoterCount    int        `json:"voterCount"`
	SameRegion    int        `json:"sameRegionVoters"`
	OtherRegion   int        `json:"otherRegionVoters"`
	AverageWeight float64    `json:"averageWeight"`
	Deadline      time.Time  `json:"deadline"`
	BusID         *string    `json:"busId,omitempty"`
	DriverID      *string    `json:"driverId,omitempty"`
	DepartureTime *time.Time `json:"departureTime,omitempty"`
	RejectReason  *string    `json:"rejectionReason,omitempty"`
}
