package domain

// EmailStatus is the lifecycle state of a logged email. Records are created
// PENDING and transition to SENT or FAILED exactly once per send attempt.
type EmailStatus string

const (
	EmailPending EmailStatus = "PENDING"
	EmailSent    EmailStatus = "SENT"
	EmailFailed  EmailStatus = "FAILED"
)

// OutgoingEmail is a message to be logged to the emails table for later
// dispatch.
type OutgoingEmail struct {
	MemberID int64
	To       string
	CC       string
	BCC      string
	Subject  string
	HTMLBody string
	TextBody string
}

// PendingEmail is a logged email claimed for dispatch, joined to the
// member it addresses.
type PendingEmail struct {
	EmailID  int64
	MemberID int64
	To       string
	Name     string
	Subject  string
	HTMLBody string
	TextBody string
}
