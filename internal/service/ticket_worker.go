package service

import (
	"context"
	"log"
	"time"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

// TicketWorker is a periodic background job that escalates open
// solicitation tickets whose deadline passed with no acceptance. The
// respond path performs the same check lazily; the sweep covers tickets
// nobody touches after the window closes. The conditional open →
// escalated ticket write keeps the coordinator page exactly-once
// between the two paths.
type TicketWorker struct {
	tickets  *repository.TicketRepo
	solicit  *SolicitService
	interval time.Duration
	stopCh   chan struct{}
}

// NewTicketWorker creates a worker that ticks every interval.
func NewTicketWorker(tickets *repository.TicketRepo, solicit *SolicitService, interval time.Duration) *TicketWorker {
	return &TicketWorker{
		tickets:  tickets,
		solicit:  solicit,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic escalation sweep.
// It runs one tick immediately, then every interval.
func (w *TicketWorker) Start(ctx context.Context) {
	log.Printf("ticket-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("ticket-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("ticket-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *TicketWorker) Stop() {
	close(w.stopCh)
}

// tick runs one sweep over expired open tickets.
func (w *TicketWorker) tick(ctx context.Context) {
	start := time.Now()

	expired, err := w.tickets.ListExpiredOpen(ctx, start)
	if err != nil {
		log.Printf("ticket-worker: error: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	escalated := 0
	for i := range expired {
		if err := w.solicit.EscalateExpired(ctx, &expired[i]); err != nil {
			log.Printf("ticket-worker: escalate error for ticket %s: %v", expired[i].ID, err)
			continue
		}
		escalated++
	}

	log.Printf("ticket-worker: tick complete, %d of %d expired tickets escalated (%s)",
		escalated, len(expired), time.Since(start).Round(time.Millisecond))
}
