package adoptions

import "time"

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Open: solicitud todavía sin resolver.
func (s Status) Open() bool { return s == StatusRequested }

// Role filtra /me/adoptions.
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleCreator Role = "creator"
)

type Adoption struct {
	ID    string
	PetID string

	CreatorUserID string // dueño de la mascota al momento de la solicitud
	AdopterUserID string

	Message string
	Status  Status

	// se completa al aprobar
	AdoptionDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
