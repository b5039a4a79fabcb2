package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EvaluateWorker listens for PostgreSQL NOTIFY on the 'request_votes'
// channel and batches request re-evaluations. Every read path already
// evaluates lazily; the worker only shortens the gap between a vote
// burst crossing the threshold and drivers hearing about it. If 50
// votes hit request X in 5 seconds, it evaluates once.
type EvaluateWorker struct {
	pool      *pgxpool.Pool
	lifecycle *LifecycleService
	batchMs   time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // request IDs waiting for evaluation
}

// NewEvaluateWorker creates a request evaluation worker.
func NewEvaluateWorker(pool *pgxpool.Pool, lifecycle *LifecycleService) *EvaluateWorker {
	return &EvaluateWorker{
		pool:      pool,
		lifecycle: lifecycle,
		batchMs:   5 * time.Second,
		pending:   make(map[string]struct{}),
	}
}

// Start begins listening for request_votes notifications and processing batches.
func (w *EvaluateWorker) Start(ctx context.Context) {
	log.Printf("evaluate-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("evaluate-worker: stopping (context cancelled)")
				return
			}
			log.Printf("evaluate-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("evaluate-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on request_votes,
// and processes notifications in batched windows.
func (w *EvaluateWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN request_votes")
	if err != nil {
		return err
	}
	log.Println("evaluate-worker: listening on request_votes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		requestID := notification.Payload
		if requestID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[requestID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and evaluates requests.
func (w *EvaluateWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and re-evaluates each request.
func (w *EvaluateWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	evaluated := 0
	for requestID := range batch {
		req, err := w.lifecycle.requests.Find(ctx, requestID)
		if err != nil {
			log.Printf("evaluate-worker: read error for %s: %v", requestID, err)
			continue
		}
		if _, _, err := w.lifecycle.Evaluate(ctx, req); err != nil {
			log.Printf("evaluate-worker: evaluate error for %s: %v", requestID, err)
			continue
		}
		evaluated++
	}

	if evaluated > 0 {
		log.Printf("evaluate-worker: batch complete, %d requests evaluated (from %d notifications)",
			evaluated, len(batch))
	}
}
