package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

// Decision is the outcome of evaluating a request's state against its
// votes and deadline.
type Decision int

const (
	DecideNone Decision = iota
	DecideExpire
	DecideThreshold
)

// Decide is the pure evaluation step run by every read/write entry
// point before acting on a request. Expiry is checked before the
// threshold so a late surge of votes cannot resurrect a lapsed request.
func Decide(status string, totalWeighted float64, deadline, now time.Time, threshold float64) Decision {
	if status != model.StatusActive {
		return DecideNone
	}
	if now.After(deadline) {
		return DecideExpire
	}
	if totalWeighted >= threshold {
		return DecideThreshold
	}
	return DecideNone
}

// LifecycleService owns the request state machine: creation, vote
// casting, and the lazy expiry/threshold evaluation that runs as a
// side effect of every read.
type LifecycleService struct {
	requests *repository.RequestRepo
	votes    *repository.VoteRepo
	agg      *AggregateService
	solicit  *SolicitService
	notify   *NotifyService
	cache    *CacheService

	threshold  float64
	voteWindow time.Duration
}

func NewLifecycleService(
	requests *repository.RequestRepo,
	votes *repository.VoteRepo,
	agg *AggregateService,
	solicit *SolicitService,
	notify *NotifyService,
	cache *CacheService,
	threshold float64,
	voteWindow time.Duration,
) *LifecycleService {
	return &LifecycleService{
		requests:   requests,
		votes:      votes,
		agg:        agg,
		solicit:    solicit,
		notify:     notify,
		cache:      cache,
		threshold:  threshold,
		voteWindow: voteWindow,
	}
}

// Threshold returns the configured weighted-vote threshold.
func (s *LifecycleService) Threshold() float64 {
	return s.threshold
}

// CreateRequest opens a new voting topic in status 'active'.
func (s *LifecycleService) CreateRequest(ctx context.Context, actor model.Actor, body model.CreateRequestBody) (*model.Request, error) {
	window := s.voteWindow
	if body.DurationMinutes > 0 {
		window = time.Duration(body.DurationMinutes) * time.Minute
	}

	now := time.Now()
	req := &model.Request{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		Region:      body.Region,
		Status:      model.StatusActive,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		Deadline:    now.Add(window),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("lifecycle: request %s created (region=%s deadline=%s)",
		req.ID, req.Region, req.Deadline.Format(time.RFC3339))
	return req, nil
}

// Evaluate aggregates current votes and applies at most one lazy
// transition (expiry or threshold). It returns the request as it stands
// after evaluation together with the aggregate used to decide.
//
// Losing the conditional write is not an error: it means another reader
// performed the same transition first, so we re-read and carry on.
func (s *LifecycleService) Evaluate(ctx context.Context, req *model.Request) (*model.Request, *VoteAggregate, error) {
	agg, err := s.agg.Aggregate(ctx, req.ID, req.Region)
	if err != nil {
		return nil, nil, err
	}

	switch Decide(req.Status, agg.TotalWeighted, req.Deadline, time.Now(), s.threshold) {
	case DecideExpire:
		won, err := s.requests.MarkExpired(ctx, req.ID)
		if err != nil {
			return nil, nil, err
		}
		if !won {
			return s.reread(ctx, req.ID, agg)
		}
		req.Status = model.StatusExpired
		reason := model.ExpiredReason
		req.RejectReason = &reason
		s.invalidate(ctx, req.ID)
		s.notifyVoters(ctx, req, "Bus request expired",
			"Voting on \""+req.Title+"\" closed without reaching the required votes. "+model.ExpiredReason+".",
			model.SeverityInfo, model.ActionExpired)
		log.Printf("lifecycle: request %s expired (weighted=%.1f)", req.ID, agg.TotalWeighted)

	case DecideThreshold:
		won, err := s.requests.TransitionStatus(ctx, req.ID, model.StatusActive, model.StatusThresholdReached)
		if err != nil {
			return nil, nil, err
		}
		if !won {
			return s.reread(ctx, req.ID, agg)
		}
		req.Status = model.StatusThresholdReached
		s.invalidate(ctx, req.ID)
		log.Printf("lifecycle: request %s reached threshold (weighted=%.1f, required=%.1f)",
			req.ID, agg.TotalWeighted, s.threshold)
		if err := s.solicit.OpenTicket(ctx, req); err != nil {
			// The request stays threshold_reached; a coordinator can still
			// approve or reject it directly.
			log.Printf("lifecycle: solicitation open failed for %s: %v", req.ID, err)
		}
	}

	return req, agg, nil
}

// CastVote records one student's vote. Duplicate votes surface
// ErrAlreadyVoted; votes against non-active requests surface
// ErrRequestClosed. A successful vote immediately re-evaluates the
// request so a threshold crossing solicits drivers on this call, not
// on some later read.
func (s *LifecycleService) CastVote(ctx context.Context, requestID, voterID string) (*model.VoteOutcome, error) {
	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req, _, err = s.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Status != model.StatusActive {
		return nil, ErrRequestClosed
	}

	inserted, err := s.votes.Insert(ctx, &model.Vote{
		ID:        uuid.NewString(),
		RequestID: requestID,
		VoterID:   voterID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrAlreadyVoted
	}

	s.invalidate(ctx, requestID)

	req, agg, err := s.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &model.VoteOutcome{
		Accepted:      true,
		WeightedVotes: agg.TotalWeighted,
		Status:        req.Status,
	}, nil
}

// GetRequestView returns the caller-facing view of a request,
// evaluating lazy transitions first. Terminal views are immutable and
// served from cache when present; fromCache reports which path ran.
func (s *LifecycleService) GetRequestView(ctx context.Context, requestID string) (*model.RequestView, bool, error) {
	if data, err := s.cache.GetRequestView(ctx, requestID); err == nil && data != nil {
		var view model.RequestView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, true, nil
		}
	}

	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, false, err
	}

	req, agg, err := s.Evaluate(ctx, req)
	if err != nil {
		return nil, false, err
	}

	view := buildView(req, agg, s.threshold)

	if model.IsTerminal(req.Status) {
		if err := s.cache.SetRequestView(ctx, requestID, view); err != nil {
			log.Printf("lifecycle: cache set error for %s: %v", requestID, err)
		}
	}

	return view, false, nil
}

// ListOpenViews returns every request still awaiting an outcome,
// evaluating each one on the way out so the listing never shows an
// 'active' request past its deadline.
func (s *LifecycleService) ListOpenViews(ctx context.Context) ([]model.RequestView, error) {
	requests, err := s.requests.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.RequestView, 0, len(requests))
	for i := range requests {
		req, agg, err := s.Evaluate(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *buildView(req, agg, s.threshold))
	}
	return views, nil
}

func (s *LifecycleService) reread(ctx context.Context, requestID string, agg *VoteAggregate) (*model.Request, *VoteAggregate, error) {
	req, err := s.requests.Find(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	return req, agg, nil
}

func (s *LifecycleService) invalidate(ctx context.Context, requestID string) {
	if err := s.cache.InvalidateRequest(ctx, requestID); err != nil {
		log.Printf("lifecycle: cache invalidate error for %s: %v", requestID, err)
	}
}

func (s *LifecycleService) notifyVoters(ctx context.Context, req *model.Request, title, message, severity, action string) {
	voterIDs, err := s.votes.VoterIDs(ctx, req.ID)
	if err != nil {
		log.Printf("lifecycle: voter lookup error for %s: %v", req.ID, err)
		return
	}
	if _, err := s.notify.Notify(ctx, TargetUsers(voterIDs), title, message, severity,
		Meta{RequestID: req.ID, Action: action}); err != nil {
		log.Printf("lifecycle: voter fanout error for %s: %v", req.ID, err)
	}
}

func buildView(req *model.Request, agg *VoteAggregate, threshold float64) *model.RequestView {
	return &model.RequestView{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		Region:        req.Region,
		Status:        req.Status,
		WeightedVotes: agg.TotalWeighted,
		RequiredVotes: threshold,
		VoterCount:    agg.VoterCount,
		SameRegion:    agg.SameRegion,
		OtherRegion:   agg.OtherRegion,
		AverageWeight: agg.AverageWeight,
		Deadline:      req.Deadline,
		BusID:         req.BusID,
		DriverID:      req.DriverID,
		DepartureTime: req.DepartureTime,
		RejectReason:  req.RejectReason,
	}
}
