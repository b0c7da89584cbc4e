package pets

import "time"

// Status del aviso de adopción.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// Pet es un animal publicado para adopción.
type Pet struct {
	ID          string
	OwnerUserID string

	Name            string
	Location        string
	Description     string
	Species         string // texto libre: perro, gato, conejo...
	Status          Status
	HealthCondition string
	Castrated       bool

	// URL segura del host de medios; nil si no tiene foto.
	PhotoURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter para el listado público. Campos vacíos = sin filtro.
type ListFilter struct {
	Status   Status
	Species  string // igualdad sin mayúsculas
	Location string // contiene, sin mayúsculas
}
