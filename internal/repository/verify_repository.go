package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"goldconnect/api/internal/models"
)

var ErrVerifyNotFound = errors.New("verify record not found")

type VerifyRepository struct {
	pool *pgxpool.Pool
}

func NewVerifyRepository(pool *pgxpool.Pool) *VerifyRepository {
	return &VerifyRepository{pool: pool}
}

func (r *VerifyRepository) Create(ctx context.Context, rec models.VerifyRecord) error {
	const query = `
		INSERT INTO verify (id, name, country, phone_number, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Name,
		rec.Country,
		rec.PhoneNumber,
	)
	return err
}

// List returns all verification records. No ordering is guaranteed.
func (r *VerifyRepository) List(ctx context.Context) ([]models.VerifyRecord, error) {
	const query = `
		SELECT id, name, country, phone_number, created_at
		FROM verify
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.VerifyRecord
	for rows.Next() {
		var rec models.VerifyRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Country,
			&rec.PhoneNumber,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *VerifyRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM verify WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVerifyNotFound
	}
	return nil
}
