package state

import (
	"context"
	"sync"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type PlanService interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	CurrentPlan(ctx context.Context) (models.PlanState, error)
	UpgradePlan(ctx context.Context, planID, billingCycle string) (models.PlanState, error)
	CancelSubscription(ctx context.Context) (models.PlanState, error)
}

// PlansSlice is the singleton current-plan store. Current() is total: until
// the server responds it reports the free-plan default, never an absent plan.
type PlansSlice struct {
	mu     sync.RWMutex
	svc    PlanService
	logger *zap.Logger

	plans   []models.Plan
	current models.PlanState
	loading bool
	err     string
}

func NewPlansSlice(svc PlanService, logger *zap.Logger) *PlansSlice {
	return &PlansSlice{
		svc:     svc,
		logger:  logger,
		current: models.NormalizePlan(nil, nil),
	}
}

func (s *PlansSlice) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *PlansSlice) reject(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = errMessage(err)
	s.mu.Unlock()
}

func (s *PlansSlice) fulfill(state models.PlanState) {
	s.mu.Lock()
	s.loading = false
	s.current = state
	s.mu.Unlock()
}

// Seed installs an already-known plan snapshot, e.g. one served from the
// cache, so policy checks see the same plan the user was shown.
func (s *PlansSlice) Seed(state models.PlanState) {
	s.mu.Lock()
	s.current = state
	s.mu.Unlock()
}

func (s *PlansSlice) Load(ctx context.Context) (models.PlanState, error) {
	s.begin()

	state, err := s.svc.CurrentPlan(ctx)
	if err != nil {
		s.reject(err)
		return s.Current(), err
	}

	s.fulfill(state)
	return state, nil
}

func (s *PlansSlice) LoadAll(ctx context.Context) ([]models.Plan, error) {
	s.begin()

	plans, err := s.svc.ListPlans(ctx)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.plans = plans
	s.mu.Unlock()

	return plans, nil
}

func (s *PlansSlice) Upgrade(ctx context.Context, planID, billingCycle string) (models.PlanState, error) {
	s.begin()

	state, err := s.svc.UpgradePlan(ctx, planID, billingCycle)
	if err != nil {
		s.reject(err)
		return s.Current(), err
	}

	s.fulfill(state)
	return state, nil
}

func (s *PlansSlice) Cancel(ctx context.Context) (models.PlanState, error) {
	s.begin()

	state, err := s.svc.CancelSubscription(ctx)
	if err != nil {
		s.reject(err)
		return s.Current(), err
	}

	s.fulfill(state)
	return state, nil
}

func (s *PlansSlice) Current() models.PlanState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *PlansSlice) Plans() []models.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plans := make([]models.Plan, len(s.plans))
	copy(plans, s.plans)
	return plans
}

func (s *PlansSlice) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *PlansSlice) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *PlansSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}
