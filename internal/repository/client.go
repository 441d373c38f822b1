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

type PostgresClientRepository struct {
	base
}

func NewClientRepository(db *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{base{db: db}}
}

func (r *PostgresClientRepository) List(ctx context.Context, ownerID uuid.UUID, q string, limit, offset int) ([]model.Client, error) {
	query := `SELECT id, owner_id, name, email, phone, created_at
	          FROM clients WHERE owner_id = $1`
	args := []any{ownerID}

	if q != "" {
		query += ` AND (name ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+q+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PostgresClientRepository) GetByID(ctx context.Context, ownerID, clientID uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.executor(ctx).QueryRow(ctx,
		`SELECT id, owner_id, name, email, phone, created_at
		 FROM clients WHERE id = $1 AND owner_id = $2`,
		clientID, ownerID,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

func (r *PostgresClientRepository) Create(ctx context.Context, client *model.Client) error {
	err := r.executor(ctx).QueryRow(ctx,
		`INSERT INTO clients (id, owner_id, name, email, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		client.ID, client.OwnerID, client.Name, client.Email, client.Phone,
	).Scan(&client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *PostgresClientRepository) Update(ctx context.Context, ownerID, clientID uuid.UUID, upd ClientUpdate) (*model.Client, error) {
	var c model.Client
	err := r.executor(ctx).QueryRow(ctx,
		`UPDATE clients
		 SET name  = COALESCE($3, name),
		     email = COALESCE($4, email),
		     phone = COALESCE($5, phone)
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, name, email, phone, created_at`,
		clientID, ownerID, upd.Name, upd.Email, upd.Phone,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &c, nil
}

// Delete removes a client; purchases cascade at the schema level.
func (r *PostgresClientRepository) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	tag, err := r.executor(ctx).Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND owner_id = $2`, clientID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}
