package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Purchase struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	ClientID    uuid.UUID `json:"client_id"`
	ItemID      uuid.UUID `json:"item_id"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// TrendPoint is one calendar day of the sales trend. Day is formatted
// as YYYY-MM-DD in UTC.
type TrendPoint struct {
	Day     string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type TopCustomer struct {
	ClientID    uuid.UUID `json:"client_id"`
	Name        string    `json:"name"`
	TotalSpent  float64   `json:"total_spent"`
	OrdersCount int       `json:"orders_count"`
}

type TopProduct struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	UnitsSold int       `json:"units_sold"`
	Revenue   float64   `json:"revenue"`
}

// ChurnEntry is one client's churn standing. LastPurchaseDays is nil for
// clients that never purchased; such clients carry the maximum score.
type ChurnEntry struct {
	ClientID         uuid.UUID `json:"client_id"`
	Name             string    `json:"name"`
	LastPurchaseDays *int      `json:"last_purchase_days"`
	OrdersCount      int       `json:"orders_count"`
	Score            int       `json:"risk_score"`
	RiskLabel        string    `json:"risk_label"`
}

type Overview struct {
	TopCustomers []TopCustomer `json:"topCustomers"`
	TopProducts  []TopProduct  `json:"topProducts"`
	Trend7d      []TrendPoint  `json:"trend7d"`
	ChurnRisk    []ChurnEntry  `json:"churnRisk"`
}

type Suggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SuggestionBundle is the per-client recommendation payload.
type SuggestionBundle struct {
	ClientID         uuid.UUID    `json:"client_id"`
	ClientName       string       `json:"client_name"`
	Score            int          `json:"risk_score"`
	RiskLabel        string       `json:"risk_label"`
	LastPurchaseDays *int         `json:"last_purchase_days"`
	TopItem          *string      `json:"top_item"`
	Suggestions      []Suggestion `json:"suggestions"`
}
