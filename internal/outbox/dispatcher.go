package outbox

import (
	"context"
	"fmt"
	"log/slog"

	"snackspace/internal/domain"
	"snackspace/internal/email"
	"snackspace/internal/logging"
	"snackspace/internal/mysql"
	"snackspace/internal/telemetry"
)

// Store is the outbox view of the database gateway.
type Store interface {
	PendingEmailIDs(ctx context.Context) ([]int64, error)
	ClaimPendingEmail(ctx context.Context, emailID int64) (*domain.PendingEmail, mysql.OutboxTx, error)
}

// Dispatcher drains the PENDING outbox. Each message is claimed under a
// row lock in its own transaction and committed immediately after its
// status update, so partial delivery progress survives interruption. A
// transport failure marks that one message FAILED and the loop continues;
// a failure to record the outcome aborts the loop — status consistency
// beats best-effort delivery.
type Dispatcher struct {
	store    Store
	sender   email.Sender
	logger   *slog.Logger
	batchLog *logging.BatchLog
	metrics  *telemetry.Metrics
}

// NewDispatcher creates an outbox dispatcher.
func NewDispatcher(store Store, sender email.Sender, logger *slog.Logger, batchLog *logging.BatchLog, metrics *telemetry.Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: store, sender: sender, logger: logger, batchLog: batchLog, metrics: metrics}
}

// Run dispatches every currently-pending email once.
func (d *Dispatcher) Run(ctx context.Context) error {
	ids, err := d.store.PendingEmailIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := d.dispatchOne(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, emailID int64) error {
	pe, tx, err := d.store.ClaimPendingEmail(ctx, emailID)
	if err != nil {
		return err
	}
	if pe == nil {
		// No longer PENDING; another run got there first.
		return nil
	}
	defer tx.Rollback()

	d.batchLog.Appendf("send email #%d", pe.EmailID)

	status := domain.EmailSent
	sendErr := d.sender.Send(ctx, &email.Email{
		To:       pe.To,
		ToName:   pe.Name,
		Subject:  fmt.Sprintf("%s (##%d##)", pe.Subject, pe.EmailID),
		HTMLBody: pe.HTMLBody,
		TextBody: pe.TextBody,
	})
	if sendErr != nil {
		status = domain.EmailFailed
		d.metrics.EmailsFailed.Inc()
		d.logger.Error("email send failed", "email_id", pe.EmailID, "error", sendErr)
		d.batchLog.Appendf("failed to send email: [%s]", domain.ErrorMessage(sendErr))
	} else {
		d.metrics.EmailsSent.Inc()
		d.batchLog.Append("email sent")
	}

	if err := tx.UpdateEmail(ctx, pe.EmailID, status); err != nil {
		d.batchLog.Appendf("failed to update email status: [%s]", domain.ErrorMessage(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
