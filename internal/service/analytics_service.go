package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
)

const (
	trendDays        = 7
	rankWindowDays   = 90
	topRankLimit     = 5
	churnReportLimit = 10

	dayFormat = "2006-01-02"
)

type AnalyticsService struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

func NewAnalyticsService(repo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// SalesTrend returns exactly `days` revenue points, one per UTC calendar day
// ending today, oldest first. Days without purchases carry zero revenue.
func (s *AnalyticsService) SalesTrend(ctx context.Context, ownerID uuid.UUID, days int) ([]model.TrendPoint, error) {
	if days <= 0 {
		return []model.TrendPoint{}, nil
	}

	today := s.today()
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := s.repo.RevenueByDay(ctx, ownerID, start)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(rows))
	for _, row := range rows {
		byDay[row.Day.UTC().Format(dayFormat)] = row.Revenue
	}

	points := make([]model.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		points = append(points, model.TrendPoint{Day: day, Revenue: byDay[day]})
	}
	return points, nil
}

func (s *AnalyticsService) TopCustomers(ctx context.Context, ownerID uuid.UUID, windowDays, limit int) ([]model.TopCustomer, error) {
	if limit <= 0 {
		return []model.TopCustomer{}, nil
	}
	return s.repo.TopCustomers(ctx, ownerID, s.windowStart(windowDays), limit)
}

func (s *AnalyticsService) TopProducts(ctx context.Context, ownerID uuid.UUID, windowDays, limit int) ([]model.TopProduct, error) {
	if limit <= 0 {
		return []model.TopProduct{}, nil
	}
	return s.repo.TopProducts(ctx, ownerID, s.windowStart(windowDays), limit)
}

// ChurnRisk scores every client by purchase recency and returns the `limit`
// riskiest, highest score first. Clients that never purchased carry the
// maximum score and a nil last-purchase sentinel.
func (s *AnalyticsService) ChurnRisk(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.ChurnEntry, error) {
	if limit <= 0 {
		return []model.ChurnEntry{}, nil
	}

	rows, err := s.repo.ClientRecency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entries := make([]model.ChurnEntry, 0, len(rows))
	for _, row := range rows {
		var days *int
		if row.LastPurchase != nil {
			d := daysSince(now, *row.LastPurchase)
			days = &d
		}
		score := churnScore(days)
		entries = append(entries, model.ChurnEntry{
			ClientID:         row.ClientID,
			Name:             row.Name,
			LastPurchaseDays: days,
			OrdersCount:      row.OrdersCount,
			Score:            score,
			RiskLabel:        riskLabel(score),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ClientID.String() < entries[j].ClientID.String()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Overview assembles the dashboard payload, fetching the four aggregates
// concurrently.
func (s *AnalyticsService) Overview(ctx context.Context, ownerID uuid.UUID) (*model.Overview, error) {
	var overview model.Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.Trend7d, err = s.SalesTrend(ctx, ownerID, trendDays)
		return err
	})
	g.Go(func() error {
		var err error
		overview.TopCustomers, err = s.TopCustomers(ctx, ownerID, rankWindowDays, topRankLimit)
		return err
	})
	g.Go(func() error {
		var err error
		overview.TopProducts, err = s.TopProducts(ctx, ownerID, rankWindowDays, topRankLimit)
		return err
	})
	g.Go(func() error {
		var err error
		overview.ChurnRisk, err = s.ChurnRisk(ctx, ownerID, churnReportLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *AnalyticsService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func (s *AnalyticsService) windowStart(windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = rankWindowDays
	}
	return s.now().UTC().AddDate(0, 0, -windowDays)
}

func daysSince(now, t time.Time) int {
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// churnScore maps days since the last purchase onto a 0-100 risk score.
// The step function is monotonic in recency; a nil sentinel (never
// purchased) scores the maximum.
func churnScore(days *int) int {
	switch {
	case days == nil:
		return 100
	case *days <= 7:
		return 5
	case *days <= 14:
		return 20
	case *days <= 30:
		return 40
	case *days <= 60:
		return 65
	case *days <= 90:
		return 85
	default:
		return 100
	}
}

func riskLabel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}
