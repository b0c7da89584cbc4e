package lostpets

import "time"

// LostPet es un reporte de mascota perdida. Solo la especie es obligatoria.
type LostPet struct {
	ID          string
	OwnerUserID string

	Name        string
	LastSeen    string
	LostDate    *time.Time
	Species     string
	Description string
	PhotoURL    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
