// Command seed loads a demo tenant with example clients, items and
// purchases. Inserts are idempotent so the command can be re-run.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"loyallight/backend/pkg/logger"
)

var demoOwner = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type seedClient struct {
	id    uuid.UUID
	name  string
	email string
	phone string
}

type seedItem struct {
	id          uuid.UUID
	name        string
	description string
	price       float64
	stock       int
}

type seedPurchase struct {
	id       uuid.UUID
	client   uuid.UUID
	item     uuid.UUID
	quantity int
	total    float64
	daysAgo  int
}

var clients = []seedClient{
	{uuid.MustParse("11111111-1111-1111-1111-111111111111"), "Alice", "alice@example.com", "600111222"},
	{uuid.MustParse("22222222-2222-2222-2222-222222222222"), "Bob", "bob@example.com", "600333444"},
	{uuid.MustParse("33333333-3333-3333-3333-333333333333"), "Carla", "carla@example.com", ""},
}

var items = []seedItem{
	{uuid.MustParse("aaaaaaa1-aaaa-aaaa-aaaa-aaaaaaaaaaa1"), "T-Shirt", "Cotton t-shirt", 19.99, 50},
	{uuid.MustParse("bbbbbbb2-bbbb-bbbb-bbbb-bbbbbbbbbbb2"), "Jeans", "Slim fit jeans", 49.99, 30},
	{uuid.MustParse("ccccccc3-cccc-cccc-cccc-ccccccccccc3"), "Hoodie", "Zip hoodie", 39.99, 20},
}

var purchases = []seedPurchase{
	{uuid.MustParse("dddddd01-0000-0000-0000-000000000001"), clients[0].id, items[0].id, 2, 39.98, 2},
	{uuid.MustParse("dddddd02-0000-0000-0000-000000000002"), clients[0].id, items[1].id, 1, 49.99, 6},
	{uuid.MustParse("dddddd03-0000-0000-0000-000000000003"), clients[1].id, items[1].id, 1, 49.99, 35},
}

func main() {
	_ = godotenv.Load()

	logg := logger.New(os.Getenv("LOG_LEVEL"))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	for _, c := range clients {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO clients (id, owner_id, name, email, phone)
			 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
			 ON CONFLICT (id) DO NOTHING`,
			c.id, demoOwner, c.name, c.email, c.phone)
		if err != nil {
			logg.Fatalf("Failed to seed client %s: %v", c.name, err)
		}
	}

	for _, it := range items {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO items (id, owner_id, name, description, price, stock)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			it.id, demoOwner, it.name, it.description, it.price, it.stock)
		if err != nil {
			logg.Fatalf("Failed to seed item %s: %v", it.name, err)
		}
	}

	for _, p := range purchases {
		purchasedAt := time.Now().UTC().AddDate(0, 0, -p.daysAgo)
		_, err := dbPool.Exec(ctx,
			`INSERT INTO purchases (id, owner_id, client_id, item_id, quantity, total_price, purchased_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			p.id, demoOwner, p.client, p.item, p.quantity, p.total, purchasedAt)
		if err != nil {
			logg.Fatalf("Failed to seed purchase: %v", err)
		}
	}

	logg.Info("Seed completed")
}
