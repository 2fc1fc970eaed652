package domain

// InvoiceStatus is the lifecycle state of an invoice row. The prepare
// procedure creates rows in GENERATING; the generator moves each row to
// GENERATED or FAILED exactly once and never revisits it.
type InvoiceStatus string

const (
	InvoiceGenerating InvoiceStatus = "GENERATING"
	InvoiceGenerated  InvoiceStatus = "GENERATED"
	InvoiceFailed     InvoiceStatus = "FAILED"
)

// InvoiceJob is one GENERATING invoice joined to its member, as selected
// (under a row lock) for the generation pass.
type InvoiceJob struct {
	InvoiceID int64
	MemberID  int64
	Email     string
	Name      string // firstname and surname joined with a space
	Month     string // month name of the period start, e.g. "January"
	Balance   Pence  // raw signed balance at selection time
}
