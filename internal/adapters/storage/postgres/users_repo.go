package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, name, phone, city, email, password_hash, description,
	created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID,
		u.Name,
		u.Phone,
		u.City,
		u.Email,
		u.PasswordHash,
		u.Description,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			phone = $3,
			city = $4,
			email = $5,
			password_hash = $6,
			description = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.Phone,
		u.City,
		u.Email,
		u.PasswordHash,
		u.Description,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *UsersRepo) GetMany(ctx context.Context, ids []string) (map[string]users.User, error) {
	out := make(map[string]users.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// pgx stdlib acepta []string como text[]
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg string) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func scanUser(s rowScanner) (users.User, error) {
	var u users.User
	err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Phone,
		&u.City,
		&u.Email,
		&u.PasswordHash,
		&u.Description,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

type ResetTokensRepo struct {
	db *sql.DB
}

func NewResetTokensRepo(db *sql.DB) *ResetTokensRepo {
	return &ResetTokensRepo{db: db}
}

func (r *ResetTokensRepo) Put(ctx context.Context, t users.ResetToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (email, token_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET token_hash = EXCLUDED.token_hash, created_at = EXCLUDED.created_at
	`, users.NormalizeEmail(t.Email), t.TokenHash, t.CreatedAt)
	return err
}

func (r *ResetTokensRepo) Get(ctx context.Context, email string) (users.ResetToken, error) {
	var t users.ResetToken
	err := r.db.QueryRowContext(ctx, `
		SELECT email, token_hash, created_at
		FROM password_reset_tokens
		WHERE email = $1
	`, users.NormalizeEmail(email)).Scan(&t.Email, &t.TokenHash, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.ResetToken{}, users.ErrNotFound
		}
		return users.ResetToken{}, err
	}
	return t, nil
}

func (r *ResetTokensRepo) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE email = $1`, users.NormalizeEmail(email))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}
