// Package outbox delivers queued emails. The worker polls the email_outbox
// table for due rows and hands them to a mail.Dispatcher; services nudge it
// after enqueueing so invites go out without waiting for the next tick.
//
// Delivery is at-least-once: a crash between a successful send and MarkSent
// re-sends the row on restart. For invitation email that is an acceptable
// trade against losing mail.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/mail"
	"github.com/plannerhq/planner-api/internal/metrics"
)

// Store defines the outbox persistence operations the worker depends on.
// Satisfied by repo.OutboxRepo; tests inject a fake.
type Store interface {
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxEmail, error)
	MarkSent(ctx context.Context, id uuid.UUID, receipt string) error
	Reschedule(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// Config tunes the worker. Zero values fall back to the defaults below.
type Config struct {
	// FromName and FromAddress are the fixed sender identity applied to
	// every outgoing message.
	FromName    string
	FromAddress string

	// Interval is the polling period. Default 15s.
	Interval time.Duration

	// BatchSize caps the rows processed per pass. Default 25.
	BatchSize int

	// MaxAttempts is the number of delivery passes before a row is marked
	// failed. In-pass SMTP retries do not count. Default 5.
	MaxAttempts int

	Logger *slog.Logger
}

// Worker drains the email outbox.
type Worker struct {
	store      Store
	dispatcher mail.Dispatcher
	cfg        Config
	nudge      chan struct{}
}

// New constructs a Worker. Call Run to start it.
func New(store Store, dispatcher mail.Dispatcher, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Worker{
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		// Buffer of one: a nudge during a pass schedules exactly one more.
		nudge: make(chan struct{}, 1),
	}
}

// Nudge asks the worker to run a pass soon. Never blocks; redundant nudges
// while one is already queued are dropped.
func (w *Worker) Nudge() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Run processes the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		if n, err := w.ProcessDue(ctx); err != nil {
			w.cfg.Logger.Error("outbox pass failed", "error", err)
		} else if n > 0 {
			w.cfg.Logger.Debug("outbox pass complete", "processed", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-w.nudge:
		}
	}
}

// ProcessDue runs a single delivery pass and returns the number of rows
// processed. Exported so tests (and server startup) can drive the worker
// synchronously.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	due, err := w.store.ListDue(ctx, time.Now().UTC(), w.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	for _, email := range due {
		w.deliver(ctx, email)
	}
	return len(due), nil
}

// deliver attempts one outbox row. SMTP errors inside the attempt are retried
// with fibonacci backoff; if the row still fails it is rescheduled (or marked
// failed once MaxAttempts passes are spent). Bookkeeping errors are logged
// and never abort the pass.
func (w *Worker) deliver(ctx context.Context, email domain.OutboxEmail) {
	msg := mail.Message{
		FromName:    w.cfg.FromName,
		FromAddress: w.cfg.FromAddress,
		To:          email.Recipient,
		Subject:     email.Subject,
		BodyHTML:    email.BodyHTML,
	}

	var receipt string
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var dispatchErr error
		receipt, dispatchErr = w.dispatcher.Dispatch(ctx, msg)
		if dispatchErr != nil {
			return retry.RetryableError(dispatchErr)
		}
		return nil
	})

	if err != nil {
		attempts := email.AttemptCount + 1
		if attempts >= w.cfg.MaxAttempts {
			metrics.EmailsFailed.Inc()
			w.cfg.Logger.Error("email delivery abandoned",
				"email_id", email.ID, "recipient", email.Recipient, "attempts", attempts, "error", err)
			if markErr := w.store.MarkFailed(ctx, email.ID); markErr != nil {
				w.cfg.Logger.Error("mark failed", "email_id", email.ID, "error", markErr)
			}
			return
		}

		next := time.Now().UTC().Add(rescheduleDelay(attempts))
		w.cfg.Logger.Warn("email delivery failed, rescheduling",
			"email_id", email.ID, "recipient", email.Recipient, "attempt", attempts, "next_attempt_at", next, "error", err)
		if schedErr := w.store.Reschedule(ctx, email.ID, next); schedErr != nil {
			w.cfg.Logger.Error("reschedule", "email_id", email.ID, "error", schedErr)
		}
		return
	}

	metrics.EmailsSent.Inc()
	// The receipt log line is the operational trace for "did the invite go
	// out". Best effort, delivery already happened.
	w.cfg.Logger.Info("email sent",
		"email_id", email.ID, "recipient", email.Recipient, "receipt", receipt)
	if markErr := w.store.MarkSent(ctx, email.ID, receipt); markErr != nil {
		w.cfg.Logger.Error("mark sent", "email_id", email.ID, "error", markErr)
	}
}

// rescheduleDelay spaces delivery passes exponentially: 1m, 2m, 4m... capped
// at one hour.
func rescheduleDelay(attempt int) time.Duration {
	d := time.Minute << (attempt - 1)
	if d > time.Hour {
		return time.Hour
	}
	return d
}
