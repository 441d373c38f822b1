package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
)

const topAtRiskDefault = 5

// SuggestionService maps a client's churn standing onto a short list of
// templated recommendations.
type SuggestionService struct {
	clients   repository.ClientRepository
	stats     repository.AnalyticsRepository
	analytics *AnalyticsService
	now       func() time.Time
}

func NewSuggestionService(clients repository.ClientRepository, stats repository.AnalyticsRepository, analytics *AnalyticsService) *SuggestionService {
	return &SuggestionService{
		clients:   clients,
		stats:     stats,
		analytics: analytics,
		now:       time.Now,
	}
}

// ForClient builds the recommendation bundle for one client. Returns
// NotFound when the client does not exist for the owner.
func (s *SuggestionService) ForClient(ctx context.Context, ownerID, clientID uuid.UUID) (*model.SuggestionBundle, error) {
	client, err := s.clients.GetByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.PurchaseStats(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	var days *int
	if stats.LastPurchase != nil {
		d := daysSince(s.now().UTC(), *stats.LastPurchase)
		days = &d
	}
	score := churnScore(days)
	label := riskLabel(score)

	return &model.SuggestionBundle{
		ClientID:         client.ID,
		ClientName:       client.Name,
		Score:            score,
		RiskLabel:        label,
		LastPurchaseDays: days,
		TopItem:          stats.TopItemName,
		Suggestions:      suggestionsFor(label, client.Name, stats.TopItemName),
	}, nil
}

// TopAtRisk bundles recommendations for the highest-churn clients.
func (s *SuggestionService) TopAtRisk(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.SuggestionBundle, error) {
	if limit <= 0 {
		limit = topAtRiskDefault
	}

	entries, err := s.analytics.ChurnRisk(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}

	bundles := make([]model.SuggestionBundle, 0, len(entries))
	for _, e := range entries {
		stats, err := s.stats.PurchaseStats(ctx, ownerID, e.ClientID)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, model.SuggestionBundle{
			ClientID:         e.ClientID,
			ClientName:       e.Name,
			Score:            e.Score,
			RiskLabel:        e.RiskLabel,
			LastPurchaseDays: e.LastPurchaseDays,
			TopItem:          stats.TopItemName,
			Suggestions:      suggestionsFor(e.RiskLabel, e.Name, stats.TopItemName),
		})
	}
	return bundles, nil
}

func suggestionsFor(label, clientName string, topItem *string) []model.Suggestion {
	switch label {
	case "high":
		out := []model.Suggestion{
			{Type: "winback", Description: fmt.Sprintf("Send %s a 20-30%% win-back coupon valid for 72 hours.", clientName)},
			{Type: "direct_outreach", Description: "Reach out 1:1 with a photo of the latest arrivals and a direct call to action."},
			{Type: "free_shipping", Description: "Offer free shipping when the cart holds two or more products."},
		}
		if topItem != nil {
			out = append(out, model.Suggestion{
				Type:        "bundle",
				Description: fmt.Sprintf("Build a personalised bundle around %s with anchored pricing.", *topItem),
			})
		}
		return out
	case "medium":
		crossSell := "Suggest accessories that pair with their latest purchase."
		if topItem != nil {
			crossSell = fmt.Sprintf("Suggest accessories that pair with %s.", *topItem)
		}
		return []model.Suggestion{
			{Type: "recommendation", Description: "Email picks based on previous purchases while stock lasts."},
			{Type: "cross_sell", Description: crossSell},
			{Type: "incentive", Description: "Offer a soft incentive (10% off or double points) expiring in 7 days."},
		}
	default:
		return []model.Suggestion{
			{Type: "referral", Description: fmt.Sprintf("Invite %s to the referral programme: 10%% off for both sides.", clientName)},
			{Type: "upsell", Description: "Offer the premium version or an exclusive colourway on the next visit."},
			{Type: "community", Description: "Ask for a photo with their look and repost it; reward with points."},
		}
	}
}
