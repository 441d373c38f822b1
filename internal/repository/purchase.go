package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
)

type PostgresPurchaseRepository struct {
	base
}

func NewPurchaseRepository(db *pgxpool.Pool) *PostgresPurchaseRepository {
	return &PostgresPurchaseRepository{base{db: db}}
}

// ItemForPurchase locks the item row and returns its price and stock.
func (r *PostgresPurchaseRepository) ItemForPurchase(ctx context.Context, ownerID, itemID uuid.UUID) (float64, int, error) {
	var price float64
	var stock int
	err := r.executor(ctx).QueryRow(ctx,
		`SELECT price, stock FROM items WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		itemID, ownerID,
	).Scan(&price, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperr.NotFound("item not found")
		}
		return 0, 0, fmt.Errorf("failed to get item: %w", err)
	}
	return price, stock, nil
}

func (r *PostgresPurchaseRepository) ClientExists(ctx context.Context, ownerID, clientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.executor(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND owner_id = $2)`,
		clientID, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client: %w", err)
	}
	return exists, nil
}

func (r *PostgresPurchaseRepository) DecrementStock(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) error {
	_, err := r.executor(ctx).Exec(ctx,
		`UPDATE items SET stock = stock - $1 WHERE id = $2 AND owner_id = $3`,
		quantity, itemID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update item stock: %w", err)
	}
	return nil
}

func (r *PostgresPurchaseRepository) Insert(ctx context.Context, purchase *model.Purchase) error {
	err := r.executor(ctx).QueryRow(ctx,
		`INSERT INTO purchases (id, owner_id, client_id, item_id, quantity, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING purchased_at`,
		purchase.ID, purchase.OwnerID, purchase.ClientID, purchase.ItemID, purchase.Quantity, purchase.TotalPrice,
	).Scan(&purchase.PurchasedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *PostgresPurchaseRepository) List(ctx context.Context, ownerID uuid.UUID) ([]model.Purchase, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT id, owner_id, client_id, item_id, quantity, total_price, purchased_at
		 FROM purchases WHERE owner_id = $1
		 ORDER BY purchased_at DESC, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.Purchase{}
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.ClientID, &p.ItemID, &p.Quantity, &p.TotalPrice, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
