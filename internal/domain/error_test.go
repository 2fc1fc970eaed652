package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"snackspace/internal/domain"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *domain.Error
		want string
	}{
		{
			name: "message only",
			err:  &domain.Error{Code: domain.EPROC, Message: "duplicate key"},
			want: "duplicate key",
		},
		{
			name: "with op",
			err:  &domain.Error{Code: domain.EPROC, Op: "mysql.sp_log_email", Message: "duplicate key"},
			want: "mysql.sp_log_email: duplicate key",
		},
		{
			name: "with wrapped error",
			err:  &domain.Error{Code: domain.EINTERNAL, Op: "mysql.commit", Message: "commit failed", Err: errors.New("broken pipe")},
			want: "mysql.commit: commit failed: broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", domain.ErrorCode(nil))
	assert.Equal(t, domain.EPROTOCOL, domain.ErrorCode(&domain.Error{Code: domain.EPROTOCOL}))
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", &domain.Error{Code: domain.ETRANSPORT, Message: "rejected"})
	assert.Equal(t, domain.ETRANSPORT, domain.ErrorCode(wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "duplicate key", domain.ErrorMessage(&domain.Error{Code: domain.EPROC, Message: "duplicate key"}))
	assert.Equal(t, "plain", domain.ErrorMessage(errors.New("plain")))
}
