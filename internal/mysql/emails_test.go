package mysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackspace/internal/domain"
)

func TestPendingEmailIDs(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectQuery("select e.email_id").
		WillReturnRows(sqlmock.NewRows([]string{"email_id"}).AddRow(int64(3)).AddRow(int64(7)))

	ids, err := q.PendingEmailIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)
}

func TestClaimPendingEmail(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("for update").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "email_id", "member_id", "email_to", "email_subj", "email_body", "email_body_alt"}).
			AddRow("Jane Maker", int64(3), int64(7), "member@example.org", "February Snackspace invoice", "<html>", "text"))

	pe, tx, err := q.ClaimPendingEmail(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, pe)
	require.NotNil(t, tx)
	assert.Equal(t, int64(3), pe.EmailID)
	assert.Equal(t, "Jane Maker", pe.Name)
	assert.Equal(t, "member@example.org", pe.To)

	mock.ExpectExec(regexp.QuoteMeta("CALL sp_email_update(?, ?, @err)")).
		WithArgs(int64(3), "SENT").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("select @err")).WillReturnRows(errRows(""))
	mock.ExpectCommit()

	require.NoError(t, tx.UpdateEmail(context.Background(), 3, domain.EmailSent))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

// A row that stopped being PENDING between listing and claiming is not an
// error; the claim comes back empty with the transaction closed.
func TestClaimPendingEmail_AlreadyClaimed(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("for update").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "email_id", "member_id", "email_to", "email_subj", "email_body", "email_body_alt"}))
	mock.ExpectRollback()

	pe, tx, err := q.ClaimPendingEmail(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, pe)
	assert.Nil(t, tx)
	require.NoError(t, mock.ExpectationsWereMet())
}
