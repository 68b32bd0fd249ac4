package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for the SMTP dispatcher.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPDispatcher delivers messages over SMTP using go-mail.
// The client dials per Dispatch call; connection reuse is not worth the
// bookkeeping at this volume.
type SMTPDispatcher struct {
	client *gomail.Client
}

// NewSMTPDispatcher constructs a dispatcher from the given config.
// Credentials are optional; a local relay (mailpit in development) accepts
// unauthenticated mail.
func NewSMTPDispatcher(cfg SMTPConfig) (*SMTPDispatcher, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail.NewSMTPDispatcher: %w", err)
	}
	return &SMTPDispatcher{client: client}, nil
}

// Dispatch sends one message and returns its Message-ID as the receipt.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, msg Message) (string, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return "", fmt.Errorf("mail.SMTPDispatcher.Dispatch: from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return "", fmt.Errorf("mail.SMTPDispatcher.Dispatch: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.BodyHTML)
	m.SetMessageID()

	if err := d.client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("mail.SMTPDispatcher.Dispatch: send: %w", err)
	}
	return m.GetMessageID(), nil
}
