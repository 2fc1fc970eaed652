package domain

import "time"

// Transaction statuses. Only COMPLETE transactions are visible to billing.
const (
	TransactionComplete = "COMPLETE"
	TransactionPending  = "PENDING"
	TransactionAborted  = "ABORTED"
)

// Transaction types as recorded in the ledger.
const (
	TransactionManual = "MANUAL"
	TransactionVend   = "VEND"
	TransactionTool   = "TOOL"
)

// Transaction is one row of the append-only member ledger. Immutable once
// recorded.
type Transaction struct {
	RecordedAt  time.Time
	Type        string
	Description string
	Amount      Pence
}
