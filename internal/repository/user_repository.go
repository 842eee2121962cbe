package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"goldconnect/api/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (id, name, country, flag, joined_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Country,
		user.Flag,
	)
	return err
}

// List returns presence records, most recently joined first. The seq
// tiebreak keeps two joins in the same instant in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, name, country, flag, joined_at
		FROM users
		ORDER BY joined_at DESC, seq DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Country,
			&user.Flag,
			&user.JoinedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
