package mysql

import (
	"context"
	"database/sql"
	"errors"

	"snackspace/internal/domain"
)

// BatchTx is one invoice-generation run: a single transaction holding row
// locks on every GENERATING invoice until Commit. Nothing is visible to
// other sessions until the whole run commits; an aborted run rolls back
// every status change, including FAILED marks.
type BatchTx interface {
	PrepareInvoices(ctx context.Context) error
	GeneratingInvoices(ctx context.Context) ([]domain.InvoiceJob, error)
	InvoiceTransactions(ctx context.Context, invoiceID int64) ([]domain.Transaction, error)
	LogEmail(ctx context.Context, e domain.OutgoingEmail) (int64, error)
	UpdateInvoice(ctx context.Context, invoiceID, emailID int64, status domain.InvoiceStatus) error
	Commit() error
	Rollback() error
}

// BeginBatch opens the generation transaction.
func (q *Queries) BeginBatch(ctx context.Context) (BatchTx, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.begin_batch", Message: "prepare/execute failed", Err: err}
	}
	return &batchTx{tx: tx}, nil
}

type batchTx struct {
	tx *sql.Tx
}

func (b *batchTx) PrepareInvoices(ctx context.Context) error {
	return prepareInvoices(ctx, b.tx)
}

const generatingInvoicesSQL = `
select
  m.member_id,
  m.email,
  i.invoice_id,
  monthname(i.invoice_from) as month,
  concat_ws(' ', ifnull(m.firstname, ''), ifnull(m.surname, '')) as name,
  m.balance
from invoices i
inner join members m on i.member_id = m.member_id
where i.invoice_status = 'GENERATING'
for update`

func (b *batchTx) GeneratingInvoices(ctx context.Context) ([]domain.InvoiceJob, error) {
	rows, err := b.tx.QueryContext(ctx, generatingInvoicesSQL)
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.generating_invoices", Message: "prepare/execute failed", Err: err}
	}
	defer rows.Close()

	var jobs []domain.InvoiceJob
	for rows.Next() {
		var j domain.InvoiceJob
		if err := rows.Scan(&j.MemberID, &j.Email, &j.InvoiceID, &j.Month, &j.Name, &j.Balance); err != nil {
			return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.generating_invoices", Message: "scan failed", Err: err}
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.generating_invoices", Message: "prepare/execute failed", Err: err}
	}
	return jobs, nil
}

const invoiceTransactionsSQL = `
select
  t.transaction_datetime,
  t.transaction_type,
  t.transaction_desc,
  t.amount
from invoices i
inner join transactions t
   on t.member_id = i.member_id
  and t.transaction_datetime >= i.invoice_from
  and t.transaction_datetime <  i.invoice_to
where i.invoice_id = ?
  and t.transaction_status = 'COMPLETE'
order by t.transaction_datetime`

func (b *batchTx) InvoiceTransactions(ctx context.Context, invoiceID int64) ([]domain.Transaction, error) {
	rows, err := b.tx.QueryContext(ctx, invoiceTransactionsSQL, invoiceID)
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.invoice_transactions", Message: "prepare/execute failed", Err: err}
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.RecordedAt, &t.Type, &t.Description, &t.Amount); err != nil {
			return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.invoice_transactions", Message: "scan failed", Err: err}
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.invoice_transactions", Message: "prepare/execute failed", Err: err}
	}
	return txns, nil
}

func (b *batchTx) LogEmail(ctx context.Context, e domain.OutgoingEmail) (int64, error) {
	return logEmail(ctx, b.tx, e)
}

func (b *batchTx) UpdateInvoice(ctx context.Context, invoiceID, emailID int64, status domain.InvoiceStatus) error {
	return updateInvoice(ctx, b.tx, invoiceID, emailID, status)
}

func (b *batchTx) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return &domain.Error{Code: domain.EINTERNAL, Op: "mysql.commit", Message: "commit failed", Err: err}
	}
	return nil
}

// Rollback discards the run. Safe to defer past a Commit.
func (b *batchTx) Rollback() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
