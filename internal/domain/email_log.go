package domain

import "time"

// Delivery statuses recorded in the email log.
const (
	EmailStatusSent   = "Sent"
	EmailStatusFailed = "Failed"
)

// EmailLogEntry is one append-only audit record per send attempt.
// Customer and debt ids are nullable: configuration test sends carry
// neither, and a failed lookup may leave only the recipient known.
// Entries are immutable once written.
type EmailLogEntry struct {
	ID         int64
	CustomerID *int64
	DebtID     *int64
	Recipient  string
	Subject    string
	// BodySnippet is a short summary (balance and due date), never the
	// full rendered body.
	BodySnippet string
	Status      string
	// Response holds the provider response on success or the error text
	// on failure.
	Response string
	SentAt   time.Time
}

// DeliveryResult is the outcome of a single reminder operation. Every
// public engine operation returns one; none propagate a failure past the
// operation boundary.
type DeliveryResult struct {
	Success bool
	Message string
	// ProviderResponse is the transport's message id or response text,
	// empty when the attempt never reached the transport.
	ProviderResponse string
}
