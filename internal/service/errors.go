package service

import "errors"

// State-conflict errors surfaced to callers. Each maps to a stable API
// error code in the handler layer.
var (
	// ErrAlreadyVoted: the voter already has a vote on this request.
	ErrAlreadyVoted = errors.New("voter has already voted on this request")

	// ErrRequestClosed: the request is no longer accepting votes.
	ErrRequestClosed = errors.New("request is not open for voting")

	// ErrNotSolicited: the responding driver was never on the ticket.
	ErrNotSolicited = errors.New("driver was not solicited for this request")

	// ErrStateChanged: a conditional write lost twice in a row; the
	// caller should refresh and re-decide.
	ErrStateChanged = errors.New("request state changed, please refresh")
)
