package auth

// Via indica por qué canal llegó la identidad del request.
type Via string

const (
	ViaCookie Via = "cookie"
	ViaBearer Via = "bearer"
	ViaDebug  Via = "debug"
)

// Claims representa la información extraída de la sesión o del token.
type Claims struct {
	UserID    string
	Email     string
	SessionID string
	Via       Via
}
