package reminder

// Message is a fully resolved outbound email: all template substitution
// is complete by the time one of these reaches a Transport.
type Message struct {
	From     string // sender address
	FromName string // optional sender display name
	To       string // single recipient
	ReplyTo  string // optional
	Subject  string
	HTMLBody string

	// Attachment is the optional PDF statement.
	Attachment *Attachment
}

// Attachment is a file attached to a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}
