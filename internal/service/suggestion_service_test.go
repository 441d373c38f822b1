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
	"loyallight/backend/internal/repository"
)

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func (s *stubClientRepo) List(ctx context.Context, ownerID uuid.UUID, q string, limit, offset int) ([]model.Client, error) {
	out := []model.Client{}
	for _, c := range s.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubClientRepo) GetByID(ctx context.Context, ownerID, clientID uuid.UUID) (*model.Client, error) {
	if c, ok := s.clients[clientID]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("client not found")
}

func (s *stubClientRepo) Create(ctx context.Context, client *model.Client) error {
	if s.clients == nil {
		s.clients = map[uuid.UUID]*model.Client{}
	}
	s.clients[client.ID] = client
	return nil
}

func (s *stubClientRepo) Update(ctx context.Context, ownerID, clientID uuid.UUID, upd repository.ClientUpdate) (*model.Client, error) {
	c, ok := s.clients[clientID]
	if !ok {
		return nil, apperr.NotFound("client not found")
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = upd.Email
	}
	if upd.Phone != nil {
		c.Phone = upd.Phone
	}
	return c, nil
}

func (s *stubClientRepo) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	if _, ok := s.clients[clientID]; !ok {
		return apperr.NotFound("client not found")
	}
	delete(s.clients, clientID)
	return nil
}

func newSuggestions(clients *stubClientRepo, stats *stubAnalyticsRepo, now time.Time) *SuggestionService {
	analytics := newAnalytics(stats, now)
	svc := NewSuggestionService(clients, stats, analytics)
	svc.now = func() time.Time { return now }
	return svc
}

func TestForClient_UnknownClient(t *testing.T) {
	svc := newSuggestions(&stubClientRepo{}, &stubAnalyticsRepo{}, fixedTime(t))

	_, err := svc.ForClient(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	appErr := apperr.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "not_found", appErr.Code)
}

func TestForClient_HighRiskWithTopItem(t *testing.T) {
	now := fixedTime(t)
	clientID := uuid.New()
	last := now.AddDate(0, 0, -120)
	topItem := "Jeans"

	clients := &stubClientRepo{clients: map[uuid.UUID]*model.Client{
		clientID: {ID: clientID, Name: "Ana"},
	}}
	stats := &stubAnalyticsRepo{stats: map[uuid.UUID]*repository.ClientStats{
		clientID: {LastPurchase: &last, OrdersCount: 4, TopItemName: &topItem},
	}}
	svc := newSuggestions(clients, stats, now)

	bundle, err := svc.ForClient(context.Background(), uuid.New(), clientID)
	require.NoError(t, err)

	assert.Equal(t, "Ana", bundle.ClientName)
	assert.Equal(t, 100, bundle.Score)
	assert.Equal(t, "high", bundle.RiskLabel)
	require.NotNil(t, bundle.LastPurchaseDays)
	assert.Equal(t, 120, *bundle.LastPurchaseDays)
	require.NotNil(t, bundle.TopItem)
	assert.Equal(t, "Jeans", *bundle.TopItem)

	require.Len(t, bundle.Suggestions, 4)
	assert.Equal(t, "winback", bundle.Suggestions[0].Type)
	assert.Contains(t, bundle.Suggestions[0].Description, "Ana")
	assert.Equal(t, "bundle", bundle.Suggestions[3].Type)
	assert.Contains(t, bundle.Suggestions[3].Description, "Jeans")
}

func TestForClient_NeverPurchased(t *testing.T) {
	now := fixedTime(t)
	clientID := uuid.New()

	clients := &stubClientRepo{clients: map[uuid.UUID]*model.Client{
		clientID: {ID: clientID, Name: "Bob"},
	}}
	svc := newSuggestions(clients, &stubAnalyticsRepo{}, now)

	bundle, err := svc.ForClient(context.Background(), uuid.New(), clientID)
	require.NoError(t, err)

	assert.Equal(t, 100, bundle.Score)
	assert.Nil(t, bundle.LastPurchaseDays)
	assert.Nil(t, bundle.TopItem)
	// No top item, so no bundle suggestion.
	require.Len(t, bundle.Suggestions, 3)
	for _, s := range bundle.Suggestions {
		assert.NotEmpty(t, s.Type)
		assert.NotEmpty(t, s.Description)
	}
}

func TestForClient_LowRisk(t *testing.T) {
	now := fixedTime(t)
	clientID := uuid.New()
	last := now.AddDate(0, 0, -3)

	clients := &stubClientRepo{clients: map[uuid.UUID]*model.Client{
		clientID: {ID: clientID, Name: "Carla"},
	}}
	stats := &stubAnalyticsRepo{stats: map[uuid.UUID]*repository.ClientStats{
		clientID: {LastPurchase: &last, OrdersCount: 1},
	}}
	svc := newSuggestions(clients, stats, now)

	bundle, err := svc.ForClient(context.Background(), uuid.New(), clientID)
	require.NoError(t, err)

	assert.Equal(t, "low", bundle.RiskLabel)
	require.NotEmpty(t, bundle.Suggestions)
	assert.Equal(t, "referral", bundle.Suggestions[0].Type)
	assert.Contains(t, bundle.Suggestions[0].Description, "Carla")
}

func TestTopAtRisk_OrdersByScore(t *testing.T) {
	now := fixedTime(t)
	recent := now.AddDate(0, 0, -1)

	neverID := uuid.New()
	recentID := uuid.New()
	stats := &stubAnalyticsRepo{
		recency: []repository.ClientRecency{
			{ClientID: recentID, Name: "Recent", LastPurchase: &recent, OrdersCount: 2},
			{ClientID: neverID, Name: "Never"},
		},
	}
	svc := newSuggestions(&stubClientRepo{}, stats, now)

	bundles, err := svc.TopAtRisk(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	assert.Equal(t, "Never", bundles[0].ClientName)
	assert.Equal(t, 100, bundles[0].Score)
	assert.Equal(t, "Recent", bundles[1].ClientName)
	assert.NotEmpty(t, bundles[0].Suggestions)
	assert.NotEmpty(t, bundles[1].Suggestions)
}
