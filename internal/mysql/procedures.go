package mysql

import (
	"context"
	"database/sql"

	"snackspace/internal/domain"
)

// Stored-procedure output protocol: every procedure declares a trailing
// @err output (plus @email_id for sp_log_email). An empty string means
// success, a non-empty string is a business failure, and NULL means the
// procedure violated its own contract. Callers must see all three as
// distinct outcomes.

func execProcedure(ctx context.Context, db DBTX, proc, call string, args ...any) error {
	if _, err := db.ExecContext(ctx, call, args...); err != nil {
		return &domain.Error{Code: domain.EINTERNAL, Op: "mysql." + proc, Message: "prepare/execute failed", Err: err}
	}
	return nil
}

func readProcError(ctx context.Context, db DBTX, proc string) error {
	var out sql.NullString
	if err := db.QueryRowContext(ctx, "select @err").Scan(&out); err != nil {
		return &domain.Error{Code: domain.EINTERNAL, Op: "mysql." + proc, Message: "prepare/execute failed", Err: err}
	}
	return decodeProcError(proc, out)
}

func decodeProcError(proc string, out sql.NullString) error {
	if !out.Valid {
		return &domain.Error{Code: domain.EPROTOCOL, Op: "mysql." + proc, Message: "unknown error in/with " + proc}
	}
	if out.String != "" {
		return &domain.Error{Code: domain.EPROC, Op: "mysql." + proc, Message: out.String}
	}
	return nil
}

func prepareInvoices(ctx context.Context, db DBTX) error {
	// The three leading arguments are unused period overrides; the
	// procedure picks the current billing period itself.
	if err := execProcedure(ctx, db, "sp_invoice_prepare",
		"CALL sp_invoice_prepare(?, ?, ?, @err)", nil, nil, nil); err != nil {
		return err
	}
	return readProcError(ctx, db, "sp_invoice_prepare")
}

func updateInvoice(ctx context.Context, db DBTX, invoiceID, emailID int64, status domain.InvoiceStatus) error {
	if err := execProcedure(ctx, db, "sp_invoice_update",
		"CALL sp_invoice_update(?, ?, ?, @err)", invoiceID, emailID, string(status)); err != nil {
		return err
	}
	return readProcError(ctx, db, "sp_invoice_update")
}

func logEmail(ctx context.Context, db DBTX, e domain.OutgoingEmail) (int64, error) {
	if err := execProcedure(ctx, db, "sp_log_email",
		"CALL sp_log_email(?, ?, ?, ?, ?, ?, ?, @err, @email_id)",
		e.MemberID, e.To, e.CC, e.BCC, e.Subject, e.HTMLBody, e.TextBody); err != nil {
		return 0, err
	}

	var (
		out     sql.NullString
		emailID sql.NullInt64
	)
	if err := db.QueryRowContext(ctx, "select @err, @email_id").Scan(&out, &emailID); err != nil {
		return 0, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.sp_log_email", Message: "prepare/execute failed", Err: err}
	}
	if err := decodeProcError("sp_log_email", out); err != nil {
		return 0, err
	}
	if !emailID.Valid {
		return 0, &domain.Error{Code: domain.EPROTOCOL, Op: "mysql.sp_log_email", Message: "sp_log_email returned no email id"}
	}
	return emailID.Int64, nil
}

func updateEmail(ctx context.Context, db DBTX, emailID int64, status domain.EmailStatus) error {
	if err := execProcedure(ctx, db, "sp_email_update",
		"CALL sp_email_update(?, ?, @err)", emailID, string(status)); err != nil {
		return err
	}
	return readProcError(ctx, db, "sp_email_update")
}
