// Package social resuelve el login con proveedores OAuth2 (google, facebook, github)
// contra cuentas ya registradas: no crea usuarios.
package social

import (
	"context"
	"errors"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingCode     = errors.New("missing authorization code")
	// ErrProviderClient: el proveedor rechazó el code o el token (4xx).
	ErrProviderClient = errors.New("provider rejected request")
	ErrNoEmail        = errors.New("provider returned no email")
	ErrNoAccount      = errors.New("no account for email")
)

// Profile es lo mínimo que se pide al proveedor.
type Profile struct {
	Email string
	Name  string
}

type Provider interface {
	Name() string
	// AuthCodeURL arma la URL de consentimiento (flujo stateless).
	AuthCodeURL() string
	// Exchange canjea el code y trae el perfil. Errores 4xx del proveedor
	// vienen envueltos en ErrProviderClient.
	Exchange(ctx context.Context, code string) (Profile, error)
}
