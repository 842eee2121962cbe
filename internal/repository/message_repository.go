package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"goldconnect/api/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// CreateText and CreateFile are deliberately separate insert paths so
// a hybrid row (content and file URL both set) cannot reach the store.

func (r *MessageRepository) CreateText(ctx context.Context, id, author, country, content string) error {
	const query = `
		INSERT INTO messages (id, author, country, kind, content, created_at)
		VALUES ($1, $2, $3, 'text', $4, NOW())
	`

	_, err := r.pool.Exec(ctx, query, id, author, country, content)
	return err
}

func (r *MessageRepository) CreateFile(ctx context.Context, id, author, country string, kind models.MessageKind, fileURL string) error {
	const query = `
		INSERT INTO messages (id, author, country, kind, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.pool.Exec(ctx, query, id, author, country, kind, fileURL)
	return err
}

// List returns the full message log in ascending timestamp order,
// ties broken by insertion order.
func (r *MessageRepository) List(ctx context.Context) ([]models.Message, error) {
	const query = `
		SELECT id, author, country, kind, COALESCE(content, ''), COALESCE(file_url, ''), created_at
		FROM messages
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.Author,
			&msg.Country,
			&msg.Kind,
			&msg.Content,
			&msg.FileURL,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM messages WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}
