package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loyallight/backend/internal/model"
)

// ClientUpdate carries the mutable client fields; nil means "leave as is".
type ClientUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// DayRevenue is one day's summed purchase revenue. Days without purchases
// are absent; the service fills the gaps.
type DayRevenue struct {
	Day     time.Time
	Revenue float64
}

// ClientRecency is a client's most recent purchase, nil when the client
// never purchased.
type ClientRecency struct {
	ClientID     uuid.UUID
	Name         string
	LastPurchase *time.Time
	OrdersCount  int
}

// ClientStats aggregates one client's purchase history for the suggestion
// service. TopItemName is nil when the client never purchased.
type ClientStats struct {
	LastPurchase *time.Time
	OrdersCount  int
	TopItemName  *string
}

type ClientRepository interface {
	List(ctx context.Context, ownerID uuid.UUID, q string, limit, offset int) ([]model.Client, error)
	GetByID(ctx context.Context, ownerID, clientID uuid.UUID) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, ownerID, clientID uuid.UUID, upd ClientUpdate) (*model.Client, error)
	Delete(ctx context.Context, ownerID, clientID uuid.UUID) error
}

type ItemRepository interface {
	List(ctx context.Context, ownerID uuid.UUID, q string) ([]model.Item, error)
	Create(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, ownerID, itemID uuid.UUID) error
}

type PurchaseRepository interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
	ItemForPurchase(ctx context.Context, ownerID, itemID uuid.UUID) (price float64, stock int, err error)
	ClientExists(ctx context.Context, ownerID, clientID uuid.UUID) (bool, error)
	DecrementStock(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) error
	Insert(ctx context.Context, purchase *model.Purchase) error
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Purchase, error)
}

type AnalyticsRepository interface {
	RevenueByDay(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]DayRevenue, error)
	TopCustomers(ctx context.Context, ownerID uuid.UUID, since time.Time, limit int) ([]model.TopCustomer, error)
	TopProducts(ctx context.Context, ownerID uuid.UUID, since time.Time, limit int) ([]model.TopProduct, error)
	ClientRecency(ctx context.Context, ownerID uuid.UUID) ([]ClientRecency, error)
	PurchaseStats(ctx context.Context, ownerID, clientID uuid.UUID) (*ClientStats, error)
}
