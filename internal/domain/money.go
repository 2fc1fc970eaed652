package domain

import "fmt"

// Pence is a monetary amount in integer minor units (pence).
// Credit is positive, debit negative: a member balance of -500 means the
// member owes the space £5.00. The sign is persisted exactly as recorded;
// display conversion happens only at render time.
type Pence int64

// String formats the amount as pounds, keeping the sign: -300 -> "£-3.00".
func (p Pence) String() string {
	n := int64(p)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("£%s%d.%02d", sign, n/100, n%100)
}

// Abs returns the magnitude of the amount.
func (p Pence) Abs() Pence {
	if p < 0 {
		return -p
	}
	return p
}

// InCredit reports whether a balance of this amount is in credit.
// Negative means the member owes money.
func (p Pence) InCredit() bool {
	return p >= 0
}
