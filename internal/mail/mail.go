package mail

import "context"

// Message is one formatted outbound email.
type Message struct {
	FromName string
	FromAddr string
	ToName   string
	ToAddr   string
	Subject  string
	HTMLBody string
}

// Transport is one authenticated mail session, reused for a whole run.
// Dial must succeed before Send is called; Close releases the session and is
// called exactly once per run regardless of outcome.
type Transport interface {
	Dial(ctx context.Context) error
	Send(ctx context.Context, msg Message) error
	Close() error
}
