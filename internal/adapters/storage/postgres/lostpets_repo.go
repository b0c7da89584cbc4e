package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption/internal/domain/lostpets"
)

type LostPetsRepo struct {
	db *sql.DB
}

func NewLostPetsRepo(db *sql.DB) *LostPetsRepo {
	return &LostPetsRepo{db: db}
}

const lostPetColumns = `
	id, owner_user_id,
	name, last_seen, lost_date, species, description, photo_url,
	created_at, updated_at`

func (r *LostPetsRepo) Create(ctx context.Context, p lostpets.LostPet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lost_pets (`+lostPetColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.LastSeen,
		nullTime(p.LostDate),
		p.Species,
		p.Description,
		nullString(p.PhotoURL),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *LostPetsRepo) Update(ctx context.Context, p lostpets.LostPet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lost_pets
		SET
			name = $2,
			last_seen = $3,
			lost_date = $4,
			species = $5,
			description = $6,
			photo_url = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.LastSeen,
		nullTime(p.LostDate),
		p.Species,
		p.Description,
		nullString(p.PhotoURL),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lostpets.ErrNotFound
	}
	return nil
}

func (r *LostPetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lost_pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lostpets.ErrNotFound
	}
	return nil
}

func (r *LostPetsRepo) GetByID(ctx context.Context, id string) (lostpets.LostPet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lostpets.LostPet{}, lostpets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+lostPetColumns+` FROM lost_pets WHERE id = $1`, id)
	p, err := scanLostPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lostpets.LostPet{}, lostpets.ErrNotFound
		}
		return lostpets.LostPet{}, err
	}
	return p, nil
}

func (r *LostPetsRepo) List(ctx context.Context) ([]lostpets.LostPet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+lostPetColumns+`
		FROM lost_pets
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lostpets.LostPet, 0)
	for rows.Next() {
		p, err := scanLostPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanLostPet(s rowScanner) (lostpets.LostPet, error) {
	var (
		p     lostpets.LostPet
		lost  sql.NullTime
		photo sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.LastSeen,
		&lost,
		&p.Species,
		&p.Description,
		&photo,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return lostpets.LostPet{}, err
	}
	// lost_date es DATE: pgx lo trae como medianoche UTC
	p.LostDate = timePtr(lost)
	p.PhotoURL = stringPtr(photo)
	return p, nil
}
