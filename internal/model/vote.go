package model

import "time"

// Vote represents an individual vote record. Weight is not stored;
// it is derived from voter region vs. request region at aggregation
// time so that weighting rule changes never leave stale weights behind.
type Vote struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	VoterID   string    `json:"voterId"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteOutcome is the API response after attempting to cast a vote.
type VoteOutcome struct {
	Accepted      bool    `json:"accepted"`
	Reason        string  `json:"reason,omitempty"`
	WeightedVotes float64 `json:"weightedVotes"`
	Status        string  `json:"status"`
}

// VoterRegion pairs a voter id with that voter's home region, as read
// from the profile directory during aggregation.
type VoterRegion struct {
	VoterID string
	Region  string
}
