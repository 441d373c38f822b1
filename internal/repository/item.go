package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
)

const pgFKViolation = "23503"

type PostgresItemRepository struct {
	base
}

func NewItemRepository(db *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{base{db: db}}
}

func (r *PostgresItemRepository) List(ctx context.Context, ownerID uuid.UUID, q string) ([]model.Item, error) {
	query := `SELECT id, owner_id, name, description, price, stock, image_url, created_at
	          FROM items WHERE owner_id = $1`
	args := []any{ownerID}

	if q != "" {
		query += ` AND name ILIKE $2`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY name, id`

	rows, err := r.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Price, &it.Stock, &it.ImageURL, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresItemRepository) Create(ctx context.Context, item *model.Item) error {
	err := r.executor(ctx).QueryRow(ctx,
		`INSERT INTO items (id, owner_id, name, description, price, stock, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		item.ID, item.OwnerID, item.Name, item.Description, item.Price, item.Stock, item.ImageURL,
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Delete removes an item. Items referenced by purchases are protected by a
// RESTRICT constraint; the violation surfaces as a Conflict.
func (r *PostgresItemRepository) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	tag, err := r.executor(ctx).Exec(ctx,
		`DELETE FROM items WHERE id = $1 AND owner_id = $2`, itemID, ownerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			return apperr.Conflict("item has recorded purchases and cannot be deleted")
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}
