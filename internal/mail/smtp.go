package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const defaultTimeout = 30 * time.Second

// SMTPConfig describes the transport endpoint and credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration // per dial/send; 0 means defaultTimeout
}

// SMTPTransport drives a single SMTP session. STARTTLS is opportunistic: used
// when the server offers it, plaintext otherwise.
type SMTPTransport struct {
	client *gomail.Client
}

func NewSMTP(cfg SMTPConfig) (*SMTPTransport, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPTransport{client: client}, nil
}

// Dial connects and authenticates. A failure here is fatal to the run: no
// email has been sent yet, there is nothing to roll back.
func (t *SMTPTransport) Dial(ctx context.Context) error {
	return t.client.DialWithContext(ctx)
}

// Send delivers one message on the established session. The client timeout
// bounds the in-flight operation; cancellation is honored between sends, not
// by force-killing an in-flight one.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddr); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.ToAddr); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
	return t.client.Send(m)
}

func (t *SMTPTransport) Close() error {
	return t.client.Close()
}
