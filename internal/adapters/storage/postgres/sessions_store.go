package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/sessions"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, sess sessions.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, email, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sess.ID, sess.UserID, sess.Email, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *SessionStore) Get(ctx context.Context, id string) (sessions.Session, error) {
	var sess sessions.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sessions.Session{}, sessions.ErrNotFound
		}
		return sessions.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sessions.ErrNotFound
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return s.exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return s.exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
}

func (s *SessionStore) exec(ctx context.Context, q string, arg any) (int, error) {
	res, err := s.db.ExecContext(ctx, q, arg)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
