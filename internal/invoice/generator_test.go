package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackspace/internal/domain"
	"snackspace/internal/invoice"
	"snackspace/internal/telemetry"
)

type statusChange struct {
	invoiceID int64
	emailID   int64
	status    domain.InvoiceStatus
}

// fakeBatchTx satisfies mysql.BatchTx and records every write.
type fakeBatchTx struct {
	jobs         []domain.InvoiceJob
	transactions map[int64][]domain.Transaction

	logEmailErr error
	nextEmailID int64

	prepared      bool
	loggedEmails  []domain.OutgoingEmail
	statusChanges []statusChange
	committed     bool
	rolledBack    bool
}

func (f *fakeBatchTx) PrepareInvoices(ctx context.Context) error {
	f.prepared = true
	return nil
}

func (f *fakeBatchTx) GeneratingInvoices(ctx context.Context) ([]domain.InvoiceJob, error) {
	return f.jobs, nil
}

func (f *fakeBatchTx) InvoiceTransactions(ctx context.Context, invoiceID int64) ([]domain.Transaction, error) {
	return f.transactions[invoiceID], nil
}

func (f *fakeBatchTx) LogEmail(ctx context.Context, e domain.OutgoingEmail) (int64, error) {
	if f.logEmailErr != nil {
		return 0, f.logEmailErr
	}
	f.loggedEmails = append(f.loggedEmails, e)
	f.nextEmailID++
	return f.nextEmailID, nil
}

func (f *fakeBatchTx) UpdateInvoice(ctx context.Context, invoiceID, emailID int64, status domain.InvoiceStatus) error {
	f.statusChanges = append(f.statusChanges, statusChange{invoiceID: invoiceID, emailID: emailID, status: status})
	return nil
}

func (f *fakeBatchTx) Commit() error   { f.committed = true; return nil }
func (f *fakeBatchTx) Rollback() error { f.rolledBack = true; return nil }

func newGenerator(t *testing.T) *invoice.Generator {
	t.Helper()
	return invoice.NewGenerator(nil, nil, telemetry.NewMetrics(prometheus.NewRegistry()))
}

func TestGenerate_SingleInvoice(t *testing.T) {
	tx := &fakeBatchTx{
		jobs: []domain.InvoiceJob{
			{InvoiceID: 42, MemberID: 7, Email: "member@example.org", Name: "Jane Maker", Month: "February", Balance: -1250},
		},
		transactions: map[int64][]domain.Transaction{
			42: {
				{
					RecordedAt:  time.Date(2024, time.February, 14, 18, 5, 9, 0, time.UTC),
					Type:        domain.TransactionVend,
					Description: "Coffee",
					Amount:      -300,
				},
			},
		},
	}

	g := newGenerator(t)
	require.NoError(t, g.Generate(context.Background(), tx))

	require.Len(t, tx.loggedEmails, 1)
	e := tx.loggedEmails[0]
	assert.Equal(t, int64(7), e.MemberID)
	assert.Equal(t, "member@example.org", e.To)
	assert.Equal(t, "February Snackspace invoice", e.Subject)
	assert.Contains(t, e.TextBody, "Coffee")
	assert.Contains(t, e.TextBody, "£-3.00")
	assert.Contains(t, e.HTMLBody, "Coffee")

	require.Len(t, tx.statusChanges, 1)
	assert.Equal(t, statusChange{invoiceID: 42, emailID: 1, status: domain.InvoiceGenerated}, tx.statusChanges[0])
}

func TestGenerate_EmailLogFailureAbortsRun(t *testing.T) {
	tx := &fakeBatchTx{
		jobs: []domain.InvoiceJob{
			{InvoiceID: 42, MemberID: 7, Email: "a@example.org", Name: "A", Month: "February", Balance: -100},
			{InvoiceID: 43, MemberID: 8, Email: "b@example.org", Name: "B", Month: "February", Balance: -200},
		},
		transactions: map[int64][]domain.Transaction{},
		logEmailErr:  &domain.Error{Code: domain.EPROC, Op: "mysql.sp_log_email", Message: "duplicate key"},
	}

	g := newGenerator(t)
	err := g.Generate(context.Background(), tx)
	require.Error(t, err)
	assert.Equal(t, domain.EPROC, domain.ErrorCode(err))

	// The failing invoice is marked FAILED and nothing after it is touched.
	require.Len(t, tx.statusChanges, 1)
	assert.Equal(t, statusChange{invoiceID: 42, emailID: -1, status: domain.InvoiceFailed}, tx.statusChanges[0])
	assert.Empty(t, tx.loggedEmails)
	assert.False(t, tx.committed, "the generator never commits; that is the caller's decision")
}

func TestGenerate_NoPendingInvoices(t *testing.T) {
	tx := &fakeBatchTx{}

	g := newGenerator(t)
	require.NoError(t, g.Generate(context.Background(), tx))
	assert.Empty(t, tx.statusChanges)
	assert.Empty(t, tx.loggedEmails)
}

func TestPrepare(t *testing.T) {
	tx := &fakeBatchTx{}
	g := newGenerator(t)
	require.NoError(t, g.Prepare(context.Background(), tx))
	assert.True(t, tx.prepared)
}
