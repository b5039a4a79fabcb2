package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

// DefaultRejectReason is used when a coordinator rejects without a reason.
const DefaultRejectReason = "Request rejected by the transit coordinator"

// DecisionOutcome reports whether a coordinator action took effect.
// NoEffect covers already-terminal requests so double submissions from
// UI retries stay safe.
type DecisionOutcome struct {
	Applied  bool   `json:"applied"`
	NoEffect bool   `json:"noEffect,omitempty"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// ApproveBody is the API request body for a coordinator approval.
type ApproveBody struct {
	BusID         string    `json:"busId"`
	DriverID      string    `json:"driverId"`
	DepartureTime time.Time `json:"departureTime"`
}

// RejectBody is the API request body for a coordinator rejection.
type RejectBody struct {
	Reason string `json:"reason,omitempty"`
}

// DecisionService is the coordinator's manual override point: direct
// approval or rejection of any request that has not already closed.
type DecisionService struct {
	requests  *repository.RequestRepo
	votes     *repository.VoteRepo
	lifecycle *LifecycleService
	notify    *NotifyService
	cache     *CacheService
}

func NewDecisionService(
	requests *repository.RequestRepo,
	votes *repository.VoteRepo,
	lifecycle *LifecycleService,
	notify *NotifyService,
	cache *CacheService,
) *DecisionService {
	return &DecisionService{
		requests:  requests,
		votes:     votes,
		lifecycle: lifecycle,
		notify:    notify,
		cache:     cache,
	}
}

// Approve sets the request approved with the given bus, driver, and
// departure time. The deadline is re-checked first (via lazy
// evaluation), so approving an already-lapsed request is a no-effect.
func (s *DecisionService) Approve(ctx context.Context, actor model.Actor, requestID string, body ApproveBody) (*DecisionOutcome, error) {
	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req, _, err = s.lifecycle.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if model.IsTerminal(req.Status) {
		return noEffect(req), nil
	}

	won, err := s.requests.Approve(ctx, requestID, req.Status, body.BusID, body.DriverID, body.DepartureTime)
	if err != nil {
		return nil, err
	}
	if !won {
		// One automatic retry: re-read, re-evaluate, try once more.
		req, _, err = s.reEvaluate(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if model.IsTerminal(req.Status) {
			return noEffect(req), nil
		}
		won, err = s.requests.Approve(ctx, requestID, req.Status, body.BusID, body.DriverID, body.DepartureTime)
		if err != nil {
			return nil, err
		}
		if !won {
			return nil, ErrStateChanged
		}
	}

	s.invalidate(ctx, requestID)
	log.Printf("decision: coordinator %s approved request %s (bus=%s driver=%s)",
		actor.ID, requestID, body.BusID, body.DriverID)

	s.notifyVoters(ctx, req,
		"Bus request approved",
		fmt.Sprintf("Your bus request \"%s\" was approved. Bus %s departs %s from %s.",
			req.Title, body.BusID, body.DepartureTime.Format(time.Kitchen), req.Region),
		model.ActionApproved)

	return &DecisionOutcome{Applied: true, Status: model.StatusApproved}, nil
}

// Reject closes the request with a reason, defaulting to a generic
// message. Terminal requests come back as no-effect with no duplicate
// notifications.
func (s *DecisionService) Reject(ctx context.Context, actor model.Actor, requestID, reason string) (*DecisionOutcome, error) {
	if reason == "" {
		reason = DefaultRejectReason
	}

	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req, _, err = s.lifecycle.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if model.IsTerminal(req.Status) {
		return noEffect(req), nil
	}

	won, err := s.requests.Reject(ctx, requestID, req.Status, reason)
	if err != nil {
		return nil, err
	}
	if !won {
		req, _, err = s.reEvaluate(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if model.IsTerminal(req.Status) {
			return noEffect(req), nil
		}
		won, err = s.requests.Reject(ctx, requestID, req.Status, reason)
		if err != nil {
			return nil, err
		}
		if !won {
			return nil, ErrStateChanged
		}
	}

	s.invalidate(ctx, requestID)
	log.Printf("decision: coordinator %s rejected request %s: %s", actor.ID, requestID, reason)

	s.notifyVoters(ctx, req,
		"Bus request rejected",
		fmt.Sprintf("Your bus request \"%s\" was rejected: %s", req.Title, reason),
		model.ActionRejected)

	return &DecisionOutcome{Applied: true, Status: model.StatusRejected, Reason: reason}, nil
}

func (s *DecisionService) reEvaluate(ctx context.Context, requestID string) (*model.Request, *VoteAggregate, error) {
	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	return s.lifecycle.Evaluate(ctx, req)
}

func (s *DecisionService) notifyVoters(ctx context.Context, req *model.Request, title, message, action string) {
	voterIDs, err := s.votes.VoterIDs(ctx, req.ID)
	if err != nil {
		log.Printf("decision: voter lookup error for %s: %v", req.ID, err)
		return
	}
	if _, err := s.notify.Notify(ctx, TargetUsers(voterIDs), title, message, model.SeverityInfo,
		Meta{RequestID: req.ID, Action: action}); err != nil {
		log.Printf("decision: voter fanout error for %s: %v", req.ID, err)
	}
}

func (s *DecisionService) invalidate(ctx context.Context, requestID string) {
	if err := s.cache.InvalidateRequest(ctx, requestID); err != nil {
		log.Printf("decision: cache invalidate error for %s: %v", requestID, err)
	}
}

func noEffect(req *model.Request) *DecisionOutcome {
	return &DecisionOutcome{
		NoEffect: true,
		Status:   req.Status,
		Reason:   "this request has already been resolved",
	}
}
