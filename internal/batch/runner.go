package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"snackspace/internal/logging"
	"snackspace/internal/mysql"
	"snackspace/internal/telemetry"
)

// State is the batch driver's position in a run.
type State string

const (
	StateStart              State = "START"
	StatePrepared           State = "PREPARED"
	StateGeneratingInvoices State = "GENERATING_INVOICES"
	StateGenerated          State = "GENERATED"
	StateSending            State = "SENDING"
	StateDone               State = "DONE"
	StateAborted            State = "ABORTED"
)

// Options selects which stages a run executes.
type Options struct {
	// Send dispatches the outbox after generation.
	Send bool
	// SendOnly skips prepare/generate and only dispatches.
	SendOnly bool
}

// Store begins the generation transaction.
type Store interface {
	BeginBatch(ctx context.Context) (mysql.BatchTx, error)
}

// Generator runs the prepare and generate stages on one transaction.
type Generator interface {
	Prepare(ctx context.Context, tx mysql.BatchTx) error
	Generate(ctx context.Context, tx mysql.BatchTx) error
}

// Dispatcher drains the pending outbox.
type Dispatcher interface {
	Run(ctx context.Context) error
}

// Runner drives a billing run through its states. There are no retries at
// this layer: any stage failure aborts the run, the operator fixes the
// cause and re-runs. An aborted generation commits nothing.
type Runner struct {
	store    Store
	gen      Generator
	disp     Dispatcher
	logger   *slog.Logger
	batchLog *logging.BatchLog
	metrics  *telemetry.Metrics
}

// NewRunner creates a batch runner.
func NewRunner(store Store, gen Generator, disp Dispatcher, logger *slog.Logger, batchLog *logging.BatchLog, metrics *telemetry.Metrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{store: store, gen: gen, disp: disp, logger: logger, batchLog: batchLog, metrics: metrics}
}

// Run executes one billing run and returns the first fatal error.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	start := time.Now()
	runID := uuid.NewString()[:8]
	logger := r.logger.With("run_id", runID)

	err := r.run(ctx, logger, opts)

	r.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.BatchRuns.WithLabelValues("aborted").Inc()
		r.setState(logger, StateAborted)
		r.batchLog.Appendf("aborted: %s", err.Error())
		logger.Error("batch aborted", "error", err)
		return err
	}
	r.metrics.BatchRuns.WithLabelValues("done").Inc()
	return nil
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger, opts Options) error {
	r.setState(logger, StateStart)
	r.batchLog.Append("invoicing start")

	if !opts.SendOnly {
		tx, err := r.store.BeginBatch(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := r.gen.Prepare(ctx, tx); err != nil {
			return err
		}
		r.setState(logger, StatePrepared)

		r.setState(logger, StateGeneratingInvoices)
		if err := r.gen.Generate(ctx, tx); err != nil {
			return err
		}

		r.batchLog.Append("generating invoices complete, committing")
		if err := tx.Commit(); err != nil {
			return err
		}
		r.setState(logger, StateGenerated)
	}

	if opts.Send || opts.SendOnly {
		r.setState(logger, StateSending)
		r.batchLog.Append("stage 2: send emails")
		if err := r.disp.Run(ctx); err != nil {
			return err
		}
	}

	r.setState(logger, StateDone)
	r.batchLog.Append("done")
	return nil
}

func (r *Runner) setState(logger *slog.Logger, s State) {
	logger.Info("batch state", "state", string(s))
}
