package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
)

type PurchaseService struct {
	repo repository.PurchaseRepository
}

func NewPurchaseService(repo repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{repo: repo}
}

func (s *PurchaseService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Purchase, error) {
	return s.repo.List(ctx, ownerID)
}

// Create records a purchase. The total is frozen at insert time from the
// item's current price, and stock is decremented in the same transaction.
func (s *PurchaseService) Create(ctx context.Context, ownerID, clientID, itemID uuid.UUID, quantity int) (*model.Purchase, error) {
	if quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than 0")
	}

	purchase := &model.Purchase{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		ClientID: clientID,
		ItemID:   itemID,
		Quantity: quantity,
	}

	err := s.repo.RunAtomic(ctx, func(ctx context.Context) error {
		price, stock, err := s.repo.ItemForPurchase(ctx, ownerID, itemID)
		if err != nil {
			return err
		}
		if stock < quantity {
			return apperr.Invalid("insufficient stock")
		}

		exists, err := s.repo.ClientExists(ctx, ownerID, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("client not found")
		}

		purchase.TotalPrice = roundCents(price * float64(quantity))

		if err := s.repo.DecrementStock(ctx, ownerID, itemID, quantity); err != nil {
			return err
		}
		return s.repo.Insert(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
