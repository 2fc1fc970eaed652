package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectQuery("select .+ from vend_logs").
		WillReturnRows(sqlmock.NewRows([]string{"Year", "Month", "Vend value"}).
			AddRow("2024", "February", "£12.50").
			AddRow("2024", "January", nil))

	report, err := q.Report(context.Background(), "select Year, Month, `Vend value` from vend_logs")
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Month", "Vend value"}, report.Columns)
	require.Len(t, report.Data, 2)
	assert.Equal(t, []any{"2024", "February", "£12.50"}, report.Data[0])
	assert.Equal(t, []any{"2024", "January", nil}, report.Data[1], "NULL survives as nil, not an empty string")
}

// An empty result keeps the column list and serialises data as [] not null.
func TestReport_NoRows(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectQuery("select .+ from access_log").
		WillReturnRows(sqlmock.NewRows([]string{"Last day", "Anytime"}))

	report, err := q.Report(context.Background(), "select `Last day`, Anytime from access_log")
	require.NoError(t, err)
	assert.Equal(t, []string{"Last day", "Anytime"}, report.Columns)
	assert.NotNil(t, report.Data)
	assert.Empty(t, report.Data)
}
