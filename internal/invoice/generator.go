package invoice

import (
	"context"
	"log/slog"

	"snackspace/internal/domain"
	"snackspace/internal/logging"
	"snackspace/internal/mysql"
	"snackspace/internal/telemetry"
)

// Generator materialises and renders one billing run. All work happens on
// a single BatchTx: any failure aborts the run and the caller rolls the
// transaction back, so no partially-billed state ever commits. This
// all-or-nothing policy is deliberate — a run that half-bills the
// membership and carries on is worse than one that stops loudly.
type Generator struct {
	logger   *slog.Logger
	batchLog *logging.BatchLog
	metrics  *telemetry.Metrics
}

// NewGenerator creates an invoice generator.
func NewGenerator(logger *slog.Logger, batchLog *logging.BatchLog, metrics *telemetry.Metrics) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger, batchLog: batchLog, metrics: metrics}
}

// Prepare invokes sp_invoice_prepare: one GENERATING invoice row per
// member due an invoice this period. Not idempotent mid-cycle; re-run
// policy belongs to the procedure.
func (g *Generator) Prepare(ctx context.Context, tx mysql.BatchTx) error {
	if err := tx.PrepareInvoices(ctx); err != nil {
		g.batchLog.Appendf("invoice_prepare failed: %s", domain.ErrorMessage(err))
		return err
	}
	return nil
}

// Generate renders every GENERATING invoice and logs its email. The first
// failing invoice stops the run.
func (g *Generator) Generate(ctx context.Context, tx mysql.BatchTx) error {
	jobs, err := tx.GeneratingInvoices(ctx)
	if err != nil {
		g.batchLog.Append("failed to select generating invoices")
		return err
	}

	for _, job := range jobs {
		if err := g.generateOne(ctx, tx, job); err != nil {
			g.batchLog.Appendf("failed to generate invoice [%d]", job.InvoiceID)
			return err
		}
	}
	return nil
}

func (g *Generator) generateOne(ctx context.Context, tx mysql.BatchTx, job domain.InvoiceJob) error {
	g.logger.Info("generating invoice",
		"invoice_id", job.InvoiceID,
		"member_id", job.MemberID,
		"balance", int64(job.Balance),
	)
	g.batchLog.Appendf("generate_invoice(%d)", job.InvoiceID)

	txns, err := tx.InvoiceTransactions(ctx, job.InvoiceID)
	if err != nil {
		return err
	}

	htmlBody, textBody, err := RenderBodies(job, txns, TransactionTable(txns))
	if err != nil {
		g.markFailed(ctx, tx, job.InvoiceID)
		return err
	}

	emailID, err := tx.LogEmail(ctx, domain.OutgoingEmail{
		MemberID: job.MemberID,
		To:       job.Email,
		Subject:  job.Month + " Snackspace invoice",
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		g.batchLog.Appendf("failed to log email: [%s]", domain.ErrorMessage(err))
		g.markFailed(ctx, tx, job.InvoiceID)
		return err
	}

	if err := tx.UpdateInvoice(ctx, job.InvoiceID, emailID, domain.InvoiceGenerated); err != nil {
		g.batchLog.Appendf("failed to update invoice: [%s]", domain.ErrorMessage(err))
		return err
	}

	g.metrics.InvoicesGenerated.Inc()
	g.logger.Info("invoice generated", "invoice_id", job.InvoiceID, "email_id", emailID, "transactions", len(txns))
	return nil
}

// markFailed records the FAILED transition inside the run transaction.
// The run is about to abort without committing, so this write never
// becomes visible; it exists so a future per-invoice-commit policy needs
// no generator change.
func (g *Generator) markFailed(ctx context.Context, tx mysql.BatchTx, invoiceID int64) {
	g.metrics.InvoicesFailed.Inc()
	if err := tx.UpdateInvoice(ctx, invoiceID, -1, domain.InvoiceFailed); err != nil {
		g.logger.Warn("failed to mark invoice FAILED", "invoice_id", invoiceID, "error", err)
	}
}
