package sessions

import "time"

// Session es una sesión de login. El ID es opaco (cookie y jti del token).
type Session struct {
	ID     string
	UserID string
	Email  string

	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
