package vend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackspace/internal/domain"
	"snackspace/internal/vend"
)

type fakeVendStore struct {
	report *domain.Report
	err    error

	logOffset int
	logLimit  int
	logCalls  int
}

func (f *fakeVendStore) VendConfig(ctx context.Context) (*domain.Report, error) {
	return f.report, f.err
}

func (f *fakeVendStore) VendLog(ctx context.Context, offset, limit int) (*domain.Report, error) {
	f.logCalls++
	f.logOffset = offset
	f.logLimit = limit
	return f.report, f.err
}

func get(t *testing.T, store vend.Store, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	vend.NewHandler(store, nil).Register(e.Group("/api/vend"))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func emptyReport() *domain.Report {
	return &domain.Report{Columns: []string{"Position", "Product"}, Data: [][]any{}}
}

func TestConfig(t *testing.T) {
	store := &fakeVendStore{report: emptyReport()}

	rec := get(t, store, "/api/vend/config")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"columns"`)
}

func TestLog_Defaults(t *testing.T) {
	store := &fakeVendStore{report: emptyReport()}

	rec := get(t, store, "/api/vend/log")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, store.logOffset)
	assert.Equal(t, 100, store.logLimit)
}

func TestLog_Paging(t *testing.T) {
	store := &fakeVendStore{report: emptyReport()}

	rec := get(t, store, "/api/vend/log?offset=200&limit=50")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, store.logOffset)
	assert.Equal(t, 50, store.logLimit)
}

func TestLog_LimitCapped(t *testing.T) {
	store := &fakeVendStore{report: emptyReport()}

	rec := get(t, store, "/api/vend/log?limit=9999")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 500, store.logLimit)
}

func TestLog_RejectsBadParams(t *testing.T) {
	store := &fakeVendStore{report: emptyReport()}

	for _, q := range []string{"offset=-1", "limit=0", "offset=abc", "limit=-5"} {
		rec := get(t, store, "/api/vend/log?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
	assert.Zero(t, store.logCalls)
}

func TestLog_QueryFailure(t *testing.T) {
	store := &fakeVendStore{err: &domain.Error{Code: domain.EINTERNAL, Message: "prepare/execute failed"}}

	rec := get(t, store, "/api/vend/log")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
