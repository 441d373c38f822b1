package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
)

type stubPurchaseRepo struct {
	price        float64
	stock        int
	itemErr      error
	clientExists bool

	decremented int
	inserted    *model.Purchase
	purchases   []model.Purchase
}

func (s *stubPurchaseRepo) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *stubPurchaseRepo) ItemForPurchase(ctx context.Context, ownerID, itemID uuid.UUID) (float64, int, error) {
	if s.itemErr != nil {
		return 0, 0, s.itemErr
	}
	return s.price, s.stock, nil
}

func (s *stubPurchaseRepo) ClientExists(ctx context.Context, ownerID, clientID uuid.UUID) (bool, error) {
	return s.clientExists, nil
}

func (s *stubPurchaseRepo) DecrementStock(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) error {
	s.decremented += quantity
	return nil
}

func (s *stubPurchaseRepo) Insert(ctx context.Context, purchase *model.Purchase) error {
	purchase.PurchasedAt = time.Now().UTC()
	s.inserted = purchase
	return nil
}

func (s *stubPurchaseRepo) List(ctx context.Context, ownerID uuid.UUID) ([]model.Purchase, error) {
	return s.purchases, nil
}

func TestCreatePurchase_FreezesTotalAtInsert(t *testing.T) {
	repo := &stubPurchaseRepo{price: 19.99, stock: 10, clientExists: true}
	svc := NewPurchaseService(repo)

	purchase, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), 3)
	require.NoError(t, err)

	assert.Equal(t, 59.97, purchase.TotalPrice)
	assert.Equal(t, 3, purchase.Quantity)
	assert.Equal(t, 3, repo.decremented)
	require.NotNil(t, repo.inserted)
	assert.Equal(t, purchase.ID, repo.inserted.ID)
}

func TestCreatePurchase_NonPositiveQuantity(t *testing.T) {
	repo := &stubPurchaseRepo{price: 10, stock: 10, clientExists: true}
	svc := NewPurchaseService(repo)

	for _, qty := range []int{0, -1} {
		_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), qty)
		require.Error(t, err)
		appErr := apperr.From(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "validation_error", appErr.Code)
	}
	assert.Nil(t, repo.inserted, "nothing should be written")
}

func TestCreatePurchase_InsufficientStock(t *testing.T) {
	repo := &stubPurchaseRepo{price: 10, stock: 1, clientExists: true}
	svc := NewPurchaseService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), 2)
	require.Error(t, err)
	assert.Equal(t, "insufficient stock", err.Error())
	assert.Zero(t, repo.decremented)
	assert.Nil(t, repo.inserted)
}

func TestCreatePurchase_UnknownItem(t *testing.T) {
	repo := &stubPurchaseRepo{itemErr: apperr.NotFound("item not found"), clientExists: true}
	svc := NewPurchaseService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "not_found", appErr.Code)
}

func TestCreatePurchase_UnknownClient(t *testing.T) {
	repo := &stubPurchaseRepo{price: 10, stock: 5, clientExists: false}
	svc := NewPurchaseService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "not_found", appErr.Code)
	assert.Nil(t, repo.inserted)
}
