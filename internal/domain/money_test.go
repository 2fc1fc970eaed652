package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snackspace/internal/domain"
)

func TestPence_String(t *testing.T) {
	tests := []struct {
		name   string
		amount domain.Pence
		want   string
	}{
		{name: "zero", amount: 0, want: "£0.00"},
		{name: "small debit", amount: -300, want: "£-3.00"},
		{name: "credit", amount: 200, want: "£2.00"},
		{name: "pennies only", amount: 45, want: "£0.45"},
		{name: "negative pennies", amount: -5, want: "£-0.05"},
		{name: "large balance", amount: -1250, want: "£-12.50"},
		{name: "round pounds", amount: 10000, want: "£100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.amount.String())
		})
	}
}

// The sign convention must round-trip exactly: balances are stored with
// negative meaning owed.
func TestPence_InCredit(t *testing.T) {
	assert.False(t, domain.Pence(-500).InCredit(), "a member owing 500 pence is not in credit")
	assert.True(t, domain.Pence(200).InCredit(), "a positive balance is in credit")
	assert.True(t, domain.Pence(0).InCredit(), "a zero balance counts as in credit")
}

func TestPence_Abs(t *testing.T) {
	assert.Equal(t, domain.Pence(1250), domain.Pence(-1250).Abs())
	assert.Equal(t, domain.Pence(1250), domain.Pence(1250).Abs())
}
