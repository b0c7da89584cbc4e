package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const adoptionColumns = `
	id, pet_id, creator_user_id, adopter_user_id,
	message, status, adoption_date,
	created_at, updated_at`

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (`+adoptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.PetID,
		a.CreatorUserID,
		a.AdopterUserID,
		a.Message,
		string(a.Status),
		nullTime(a.AdoptionDate),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

// Update: la unicidad de "approved" por mascota la garantiza un índice parcial.
func (r *AdoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoptions
		SET
			message = $2,
			status = $3,
			adoption_date = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.Message,
		string(a.Status),
		nullTime(a.AdoptionDate),
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pet already has an approved adoption", adoptions.ErrBadState)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE id = $1`, id)
	a, err := scanAdoption(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Adoption, error) {
	return r.listBy(ctx, "pet_id", petID)
}

func (r *AdoptionsRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]adoptions.Adoption, error) {
	return r.listBy(ctx, "adopter_user_id", adopterUserID)
}

func (r *AdoptionsRepo) ListByCreator(ctx context.Context, creatorUserID string) ([]adoptions.Adoption, error) {
	return r.listBy(ctx, "creator_user_id", creatorUserID)
}

func (r *AdoptionsRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adoptions WHERE pet_id = $1`, petID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// column viene de una lista fija, nunca del request.
func (r *AdoptionsRepo) listBy(ctx context.Context, column, value string) ([]adoptions.Adoption, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE `+column+` = $1
		ORDER BY created_at DESC, id DESC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAdoption(s rowScanner) (adoptions.Adoption, error) {
	var (
		a      adoptions.Adoption
		status string
		date   sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.CreatorUserID,
		&a.AdopterUserID,
		&a.Message,
		&status,
		&date,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return adoptions.Adoption{}, err
	}
	a.Status = adoptions.Status(status)
	a.AdoptionDate = timePtr(date)
	return a, nil
}
