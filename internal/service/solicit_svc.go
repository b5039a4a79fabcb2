package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

const routeTakenReason = "route already taken by another driver"

// SolicitService coordinates driver solicitation: it opens the ticket
// when a request crosses the threshold, takes accept/decline responses,
// resolves the first-accept-wins race, and escalates exhausted tickets
// to coordinators.
type SolicitService struct {
	tickets  *repository.TicketRepo
	requests *repository.RequestRepo
	profiles *repository.ProfileRepo
	votes    *repository.VoteRepo
	notify   *NotifyService
	cache    *CacheService

	window time.Duration
}

func NewSolicitService(
	tickets *repository.TicketRepo,
	requests *repository.RequestRepo,
	profiles *repository.ProfileRepo,
	votes *repository.VoteRepo,
	notify *NotifyService,
	cache *CacheService,
	window time.Duration,
) *SolicitService {
	return &SolicitService{
		tickets:  tickets,
		requests: requests,
		profiles: profiles,
		votes:    votes,
		notify:   notify,
		cache:    cache,
		window:   window,
	}
}

// OpenTicket creates the solicitation ticket for a request that just
// reached its threshold and fans a notification out to every available
// driver. Ticket uniqueness makes this idempotent under duplicate
// threshold events.
func (s *SolicitService) OpenTicket(ctx context.Context, req *model.Request) error {
	drivers, err := s.profiles.ListByRole(ctx, model.RoleDriver, true)
	if err != nil {
		return err
	}

	driverIDs := make([]string, 0, len(drivers))
	for _, d := range drivers {
		driverIDs = append(driverIDs, d.ID)
	}

	ticket := &model.Ticket{
		ID:        uuid.NewString(),
		RequestID: req.ID,
		Status:    model.TicketOpen,
		Deadline:  time.Now().Add(s.window),
		CreatedAt: time.Now(),
	}

	created, err := s.tickets.Create(ctx, ticket, driverIDs)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	log.Printf("solicit: ticket %s opened for request %s (%d drivers, deadline=%s)",
		ticket.ID, req.ID, len(driverIDs), ticket.Deadline.Format(time.RFC3339))

	if len(driverIDs) == 0 {
		// Nobody to ask: escalate straight to the coordinators.
		return s.escalate(ctx, ticket, req, "No drivers are currently available")
	}

	deadline := ticket.Deadline
	_, err = s.notify.Notify(ctx, TargetUsers(driverIDs),
		"Extra bus requested: "+req.Region,
		fmt.Sprintf("Students in %s have requested an extra bus (\"%s\"). Accept or decline by %s.",
			req.Region, req.Title, deadline.Format(time.Kitchen)),
		model.SeverityInfo,
		Meta{RequestID: req.ID, Action: model.ActionSolicited, ExpiresAt: &deadline})
	if err != nil {
		// Drivers who miss the in-app notice can still respond; the
		// ticket and its deadline are already persisted.
		log.Printf("solicit: driver fanout error for %s: %v", req.ID, err)
	}
	return nil
}

// Respond processes one driver's accept or decline. Late or duplicate
// responses after the ticket closed come back as neutral no-effect
// acknowledgements rather than errors, so UI retries are harmless.
func (s *SolicitService) Respond(ctx context.Context, requestID, driverID, decision string) (*model.RespondOutcome, error) {
	ticket, err := s.tickets.FindByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotSolicited
		}
		return nil, err
	}

	responses, err := s.tickets.Responses(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	if !Solicited(responses, driverID) {
		return nil, ErrNotSolicited
	}

	// Lazy deadline check on the respond path: an open ticket past its
	// deadline escalates now, and this response arrives too late.
	if ticket.Status == model.TicketOpen && time.Now().After(ticket.Deadline) {
		req, err := s.requests.Find(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if err := s.escalate(ctx, ticket, req, "No driver responded before the deadline"); err != nil {
			return nil, err
		}
		return &model.RespondOutcome{NoEffect: true, Reason: "response window has closed"}, nil
	}

	if ticket.Status != model.TicketOpen {
		reason := "ticket already resolved"
		if decision == model.DecisionAccept {
			reason = routeTakenReason
		}
		return &model.RespondOutcome{NoEffect: true, Reason: reason}, nil
	}

	switch decision {
	case model.DecisionAccept:
		return s.accept(ctx, ticket, driverID)
	case model.DecisionDecline:
		return s.decline(ctx, ticket, driverID, responses)
	default:
		return nil, fmt.Errorf("invalid decision: %s", decision)
	}
}

func (s *SolicitService) accept(ctx context.Context, ticket *model.Ticket, driverID string) (*model.RespondOutcome, error) {
	// First accepted wins: the conditional close is the arbiter. The
	// losing driver gets a no-op telling them the route is taken.
	won, err := s.tickets.CloseIfOpen(ctx, ticket.ID, model.TicketAccepted, &driverID)
	if err != nil {
		return nil, err
	}
	if !won {
		return &model.RespondOutcome{NoEffect: true, Reason: routeTakenReason}, nil
	}

	if _, err := s.tickets.MarkResponse(ctx, ticket.ID, driverID, model.ResponseAccepted); err != nil {
		return nil, err
	}

	assigned, err := s.requests.AssignDriver(ctx, ticket.RequestID, driverID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		// A coordinator resolved the request while the driver was
		// deciding. The ticket stays closed; nothing else to do.
		log.Printf("solicit: request %s no longer assignable after accept by %s", ticket.RequestID, driverID)
		return &model.RespondOutcome{NoEffect: true, Reason: "request already resolved"}, nil
	}

	s.invalidate(ctx, ticket.RequestID)
	log.Printf("solicit: driver %s accepted request %s", driverID, ticket.RequestID)

	req, err := s.requests.Find(ctx, ticket.RequestID)
	if err != nil {
		return nil, err
	}

	// A driver who already owns a bus confirms everything at once: the
	// assignment promotes straight to approved, departing at the
	// requested deadline.
	driver, err := s.profiles.Find(ctx, driverID)
	if err == nil && driver.BusID != nil {
		approved, err := s.requests.Approve(ctx, req.ID, model.StatusDriverAssigned, *driver.BusID, driverID, req.Deadline)
		if err != nil {
			return nil, err
		}
		if approved {
			req.Status = model.StatusApproved
			s.invalidate(ctx, req.ID)
		}
	}

	s.fanoutAssigned(ctx, req, driverID)
	return &model.RespondOutcome{Accepted: true}, nil
}

func (s *SolicitService) decline(ctx context.Context, ticket *model.Ticket, driverID string, responses []model.TicketResponse) (*model.RespondOutcome, error) {
	marked, err := s.tickets.MarkResponse(ctx, ticket.ID, driverID, model.ResponseDeclined)
	if err != nil {
		return nil, err
	}
	if !marked {
		return &model.RespondOutcome{NoEffect: true, Reason: "response already recorded"}, nil
	}

	log.Printf("solicit: driver %s declined request %s", driverID, ticket.RequestID)

	if AllDeclined(responses, driverID) {
		req, err := s.requests.Find(ctx, ticket.RequestID)
		if err != nil {
			return nil, err
		}
		if err := s.escalate(ctx, ticket, req, "Every solicited driver declined"); err != nil {
			return nil, err
		}
	}

	return &model.RespondOutcome{Accepted: true}, nil
}

// EscalateExpired is the sweep entry point for open tickets whose
// deadline passed with no acceptance.
func (s *SolicitService) EscalateExpired(ctx context.Context, ticket *model.Ticket) error {
	req, err := s.requests.Find(ctx, ticket.RequestID)
	if err != nil {
		return err
	}
	return s.escalate(ctx, ticket, req, "No driver responded before the deadline")
}

// escalate retires the ticket and pages the coordinators exactly once.
// The request itself stays threshold_reached so a coordinator can still
// resolve it through the decision gateway.
func (s *SolicitService) escalate(ctx context.Context, ticket *model.Ticket, req *model.Request, cause string) error {
	won, err := s.tickets.CloseIfOpen(ctx, ticket.ID, model.TicketEscalated, nil)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	s.invalidate(ctx, req.ID)
	log.Printf("solicit: ticket %s escalated for request %s: %s", ticket.ID, req.ID, cause)

	_, err = s.notify.Notify(ctx, TargetRole(model.RoleCoordinator),
		"Driver assignment needed: "+req.Region,
		fmt.Sprintf("%s for \"%s\" (%s). Please assign a driver manually.", cause, req.Title, req.Region),
		model.SeverityCritical,
		Meta{RequestID: req.ID, Action: model.ActionEscalated})
	return err
}

func (s *SolicitService) fanoutAssigned(ctx context.Context, req *model.Request, driverID string) {
	voterIDs, err := s.votes.VoterIDs(ctx, req.ID)
	if err != nil {
		log.Printf("solicit: voter lookup error for %s: %v", req.ID, err)
	} else {
		if _, err := s.notify.Notify(ctx, TargetUsers(voterIDs),
			"Bus request approved",
			fmt.Sprintf("A driver accepted your bus request \"%s\" for %s.", req.Title, req.Region),
			model.SeverityInfo,
			Meta{RequestID: req.ID, Action: model.ActionApproved}); err != nil {
			log.Printf("solicit: voter fanout error for %s: %v", req.ID, err)
		}
	}

	if _, err := s.notify.Notify(ctx, TargetRole(model.RoleCoordinator),
		"Driver assigned",
		fmt.Sprintf("Driver %s accepted the bus request for %s.", driverID, req.Region),
		model.SeverityInfo,
		Meta{RequestID: req.ID, Action: model.ActionAssigned}); err != nil {
		log.Printf("solicit: coordinator notice error for %s: %v", req.ID, err)
	}
}

func (s *SolicitService) invalidate(ctx context.Context, requestID string) {
	if err := s.cache.InvalidateRequest(ctx, requestID); err != nil {
		log.Printf("solicit: cache invalidate error for %s: %v", requestID, err)
	}
}

// Solicited reports whether a driver holds an entry on the ticket.
func Solicited(responses []model.TicketResponse, driverID string) bool {
	for _, r := range responses {
		if r.DriverID == driverID {
			return true
		}
	}
	return false
}

// AllDeclined reports whether every entry is declined once decliningID
// is counted. The caller passes the pre-update response set, so the
// driver currently declining is treated as declined here.
func AllDeclined(responses []model.TicketResponse, decliningID string) bool {
	for _, r := range responses {
		if r.DriverID == decliningID {
			continue
		}
		if r.Response != model.ResponseDeclined {
			return false
		}
	}
	return true
}
