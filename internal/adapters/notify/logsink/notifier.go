// Package logsink es el Notifier de desarrollo: escribe el correo en el log
// en vez de mandarlo.
package logsink

import (
	"context"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) PasswordReset(ctx context.Context, msg notify.PasswordResetMessage) error {
	subject, _ := notify.RenderPasswordReset(msg)
	n.log.Info("password reset mail (not sent)", map[string]any{
		"to":         msg.Email,
		"subject":    subject,
		"reset_url":  msg.ResetURL,
		"expires_in": msg.ExpiresInMinutes,
	})
	return nil
}
