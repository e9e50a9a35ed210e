package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"worddee/internal/models"
)

// DashboardBackend is what the dashboard needs from the API
type DashboardBackend interface {
	GetSummary(ctx context.Context) (*models.SummaryStats, error)
	GetHistory(ctx context.Context, limit int) ([]models.HistoryItem, error)
}

// Dashboard combines the summary and recent history
type Dashboard struct {
	Summary models.Summary
	History []models.HistoryItem
}

// DashboardService loads dashboard data. Failures are logged and replaced
// with zero values; they never reach the learner.
type DashboardService struct {
	backend      DashboardBackend
	historyLimit int
	logger       *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(backend DashboardBackend, historyLimit int, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		backend:      backend,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Summary returns the aggregate statistics, or the all-zero summary when the
// backend fails
func (s *DashboardService) Summary(ctx context.Context) models.Summary {
	stats, err := s.backend.GetSummary(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch summary, showing zero values", zap.Error(err))
		return models.Summary{}
	}
	return stats.Resolve()
}

// RecentHistory returns at most historyLimit entries, newest first, or an
// empty list when the backend fails
func (s *DashboardService) RecentHistory(ctx context.Context) []models.HistoryItem {
	items, err := s.backend.GetHistory(ctx, s.historyLimit)
	if err != nil {
		s.logger.Warn("failed to fetch history, showing empty list", zap.Error(err))
		return []models.HistoryItem{}
	}
	if s.historyLimit > 0 && len(items) > s.historyLimit {
		items = items[:s.historyLimit]
	}
	return items
}

// Dashboard fetches summary and history concurrently
func (s *DashboardService) Dashboard(ctx context.Context) Dashboard {
	var (
		wg      sync.WaitGroup
		summary models.Summary
		history []models.HistoryItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary = s.Summary(ctx)
	}()
	go func() {
		defer wg.Done()
		history = s.RecentHistory(ctx)
	}()
	wg.Wait()

	return Dashboard{Summary: summary, History: history}
}
