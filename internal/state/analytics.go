package state

import (
	"context"
	"sync"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type AnalyticsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// AnalyticsSlice is the singleton dashboard store.
type AnalyticsSlice struct {
	mu     sync.RWMutex
	svc    AnalyticsService
	logger *zap.Logger

	stats   *models.DashboardStats
	loading bool
	err     string
}

func NewAnalyticsSlice(svc AnalyticsService, logger *zap.Logger) *AnalyticsSlice {
	return &AnalyticsSlice{svc: svc, logger: logger}
}

func (s *AnalyticsSlice) Load(ctx context.Context) (*models.DashboardStats, error) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	stats, err := s.svc.Dashboard(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = errMessage(err)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.stats = stats
	s.mu.Unlock()

	return stats, nil
}

func (s *AnalyticsSlice) Stats() *models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}

func (s *AnalyticsSlice) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AnalyticsSlice) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *AnalyticsSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}
