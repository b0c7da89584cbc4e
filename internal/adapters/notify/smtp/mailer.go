// Package smtp entrega correos con wneessen/go-mail.
package smtp

import (
	"context"
	"fmt"

	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/ports/notify"

	"github.com/wneessen/go-mail"
)

type Mailer struct {
	client *mail.Client
	from   string
}

func New(cfg config.SMTP) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.NoTLS),
	}
	if cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// Message arma el correo sin enviarlo.
func (m *Mailer) Message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := m.Message(to, subject, body)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// PasswordReset implementa notify.Notifier.
func (m *Mailer) PasswordReset(ctx context.Context, msg notify.PasswordResetMessage) error {
	subject, body := notify.RenderPasswordReset(msg)
	return m.Send(ctx, msg.Email, subject, body)
}
