package model

// Roles known to the workflow.
const (
	RoleStudent     = "student"
	RoleDriver      = "driver"
	RoleCoordinator = "coordinator"
)

// Profile availability statuses (drivers only; students and
// coordinators are always 'available').
const (
	ProfileAvailable   = "available"
	ProfileUnavailable = "unavailable"
)

// Profile is a read-only view of a user record. Account management is
// external; the workflow only reads regions, roles, and availability.
type Profile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Role   string  `json:"role"`
	Region string  `json:"region"`
	Status string  `json:"status"`
	Phone  string  `json:"-"`
	BusID  *string `json:"busId,omitempty"`
}

// Actor is the authenticated caller of a workflow operation, resolved
// once per request by middleware from the trusted identity headers.
type Actor struct {
	ID   string
	Role string
}
