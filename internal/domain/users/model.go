package users

import "time"

// User es la cuenta de una persona (publica mascotas, reporta pérdidas, adopta).
type User struct {
	ID           string
	Name         string
	Phone        string
	City         string
	Email        string
	PasswordHash string
	Description  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResetToken guarda solo el hash del token enviado por correo. Uno por email.
type ResetToken struct {
	Email     string
	TokenHash string
	CreatedAt time.Time
}
