package notify

import (
	"context"
	"fmt"
	"strings"
)

// Routing keys publicadas en el exchange de notificaciones.
const (
	RKPasswordReset = "auth.password_reset"
)

// PasswordResetMessage es el payload del correo de restablecimiento.
type PasswordResetMessage struct {
	Email            string `json:"email"`
	UserName         string `json:"user_name"`
	ResetURL         string `json:"reset_url"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

// Notifier entrega notificaciones a usuarios (directo o vía cola).
type Notifier interface {
	PasswordReset(ctx context.Context, msg PasswordResetMessage) error
}

// RenderPasswordReset arma asunto y cuerpo del correo en texto plano.
func RenderPasswordReset(msg PasswordResetMessage) (subject, body string) {
	var b strings.Builder
	if name := strings.TrimSpace(msg.UserName); name != "" {
		fmt.Fprintf(&b, "Hola %s,\n\n", name)
	}
	b.WriteString("Has recibido este correo porque hemos recibido una solicitud de restablecimiento de contraseña para tu cuenta.\n\n")
	fmt.Fprintf(&b, "Restablecer Contraseña: %s\n\n", msg.ResetURL)
	fmt.Fprintf(&b, "Este enlace de restablecimiento de contraseña expirará en %d minutos.\n\n", msg.ExpiresInMinutes)
	b.WriteString("Si no solicitaste un restablecimiento de contraseña, no se requiere ninguna acción adicional.\n")
	return "Restablecer Contraseña", b.String()
}
