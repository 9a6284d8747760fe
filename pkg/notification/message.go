package notification

import "context"

// Attachment is an optional inline attachment, referenced from the HTML
// body by its Filename as the content ID.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single outbound email, constructed per send and never
// persisted.
type Message struct {
	To         string
	ReplyTo    string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Sender abstracts an outbound mail transport. Exactly one
// implementation is selected at startup; callers never need to know
// which.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
