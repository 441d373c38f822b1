package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loyallight/backend/internal/model"
)

type PostgresAnalyticsRepository struct {
	base
}

func NewAnalyticsRepository(db *pgxpool.Pool) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{base{db: db}}
}

// RevenueByDay returns summed revenue per calendar day (UTC) since the given
// time. Days without purchases produce no row.
func (r *PostgresAnalyticsRepository) RevenueByDay(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]DayRevenue, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT (purchased_at AT TIME ZONE 'UTC')::date AS day, SUM(total_price)
		 FROM purchases
		 WHERE owner_id = $1 AND purchased_at >= $2
		 GROUP BY day
		 ORDER BY day`,
		ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by day: %w", err)
	}
	defer rows.Close()

	out := []DayRevenue{}
	for rows.Next() {
		var d DayRevenue
		if err := rows.Scan(&d.Day, &d.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresAnalyticsRepository) TopCustomers(ctx context.Context, ownerID uuid.UUID, since time.Time, limit int) ([]model.TopCustomer, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT c.id, c.name, SUM(p.total_price), COUNT(p.id)
		 FROM purchases p
		 JOIN clients c ON c.id = p.client_id
		 WHERE p.owner_id = $1 AND p.purchased_at >= $2
		 GROUP BY c.id, c.name
		 ORDER BY SUM(p.total_price) DESC, c.id
		 LIMIT $3`,
		ownerID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers: %w", err)
	}
	defer rows.Close()

	out := []model.TopCustomer{}
	for rows.Next() {
		var tc model.TopCustomer
		if err := rows.Scan(&tc.ClientID, &tc.Name, &tc.TotalSpent, &tc.OrdersCount); err != nil {
			return nil, fmt.Errorf("failed to scan top customer: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *PostgresAnalyticsRepository) TopProducts(ctx context.Context, ownerID uuid.UUID, since time.Time, limit int) ([]model.TopProduct, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT i.id, i.name, SUM(p.quantity), SUM(p.total_price)
		 FROM purchases p
		 JOIN items i ON i.id = p.item_id
		 WHERE p.owner_id = $1 AND p.purchased_at >= $2
		 GROUP BY i.id, i.name
		 ORDER BY SUM(p.quantity) DESC, i.id
		 LIMIT $3`,
		ownerID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	out := []model.TopProduct{}
	for rows.Next() {
		var tp model.TopProduct
		if err := rows.Scan(&tp.ItemID, &tp.Name, &tp.UnitsSold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// ClientRecency returns every client with the time of their latest purchase,
// nil for clients that never purchased.
func (r *PostgresAnalyticsRepository) ClientRecency(ctx context.Context, ownerID uuid.UUID) ([]ClientRecency, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT c.id, c.name, MAX(p.purchased_at), COUNT(p.id)
		 FROM clients c
		 LEFT JOIN purchases p ON p.client_id = c.id
		 WHERE c.owner_id = $1
		 GROUP BY c.id, c.name
		 ORDER BY c.id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query client recency: %w", err)
	}
	defer rows.Close()

	out := []ClientRecency{}
	for rows.Next() {
		var cr ClientRecency
		if err := rows.Scan(&cr.ClientID, &cr.Name, &cr.LastPurchase, &cr.OrdersCount); err != nil {
			return nil, fmt.Errorf("failed to scan client recency: %w", err)
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *PostgresAnalyticsRepository) PurchaseStats(ctx context.Context, ownerID, clientID uuid.UUID) (*ClientStats, error) {
	var stats ClientStats
	err := r.executor(ctx).QueryRow(ctx,
		`SELECT MAX(purchased_at), COUNT(id)
		 FROM purchases
		 WHERE owner_id = $1 AND client_id = $2`,
		ownerID, clientID,
	).Scan(&stats.LastPurchase, &stats.OrdersCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase stats: %w", err)
	}

	var topItem string
	err = r.executor(ctx).QueryRow(ctx,
		`SELECT i.name
		 FROM purchases p
		 JOIN items i ON i.id = p.item_id
		 WHERE p.owner_id = $1 AND p.client_id = $2
		 GROUP BY i.id, i.name
		 ORDER BY SUM(p.quantity) DESC, i.id
		 LIMIT 1`,
		ownerID, clientID,
	).Scan(&topItem)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to query top item: %w", err)
	}
	if err == nil {
		stats.TopItemName = &topItem
	}
	return &stats, nil
}
