package mysql

import (
	"context"
	"database/sql"
	"errors"

	"snackspace/internal/domain"
)

// OutboxTx finalises a single claimed email. Each message gets its own
// transaction so delivery progress survives an interrupted run.
type OutboxTx interface {
	UpdateEmail(ctx context.Context, emailID int64, status domain.EmailStatus) error
	Commit() error
	Rollback() error
}

const pendingEmailIDsSQL = `
select e.email_id
from emails e
where e.email_status = 'PENDING'
order by e.email_id`

// PendingEmailIDs lists the outbox without locking anything; each id is
// re-checked under a row lock when claimed.
func (q *Queries) PendingEmailIDs(ctx context.Context) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, pendingEmailIDsSQL)
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.pending_email_ids", Message: "prepare/execute failed", Err: err}
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.pending_email_ids", Message: "scan failed", Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.pending_email_ids", Message: "prepare/execute failed", Err: err}
	}
	return ids, nil
}

const claimPendingEmailSQL = `
select
  concat_ws(' ', ifnull(m.firstname, ''), ifnull(m.surname, '')) as name,
  e.email_id,
  e.member_id,
  e.email_to,
  e.email_subj,
  e.email_body,
  e.email_body_alt
from emails e
inner join members m on m.member_id = e.member_id
where e.email_id = ?
  and e.email_status = 'PENDING'
for update`

// ClaimPendingEmail locks one outbox row for dispatch. If the row is no
// longer PENDING (another run got there first) it returns (nil, nil, nil)
// with the transaction already closed.
func (q *Queries) ClaimPendingEmail(ctx context.Context, emailID int64) (*domain.PendingEmail, OutboxTx, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.claim_pending_email", Message: "prepare/execute failed", Err: err}
	}

	var e domain.PendingEmail
	err = tx.QueryRowContext(ctx, claimPendingEmailSQL, emailID).
		Scan(&e.Name, &e.EmailID, &e.MemberID, &e.To, &e.Subject, &e.HTMLBody, &e.TextBody)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil, nil, nil
	}
	if err != nil {
		tx.Rollback()
		return nil, nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.claim_pending_email", Message: "prepare/execute failed", Err: err}
	}

	return &e, &outboxTx{tx: tx}, nil
}

type outboxTx struct {
	tx *sql.Tx
}

func (o *outboxTx) UpdateEmail(ctx context.Context, emailID int64, status domain.EmailStatus) error {
	return updateEmail(ctx, o.tx, emailID, status)
}

func (o *outboxTx) Commit() error {
	if err := o.tx.Commit(); err != nil {
		return &domain.Error{Code: domain.EINTERNAL, Op: "mysql.commit", Message: "commit failed", Err: err}
	}
	return nil
}

func (o *outboxTx) Rollback() error {
	if err := o.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
