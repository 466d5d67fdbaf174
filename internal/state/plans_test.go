package state

import (
	"context"
	"errors"
	"testing"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlanService struct {
	plans   []models.Plan
	current models.PlanState
	err     error
}

func (f *fakePlanService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return f.plans, f.err
}

func (f *fakePlanService) CurrentPlan(ctx context.Context) (models.PlanState, error) {
	return f.current, f.err
}

func (f *fakePlanService) UpgradePlan(ctx context.Context, planID, billingCycle string) (models.PlanState, error) {
	return f.current, f.err
}

func (f *fakePlanService) CancelSubscription(ctx context.Context) (models.PlanState, error) {
	return f.current, f.err
}

func TestPlansCurrentDefaultsToFree(t *testing.T) {
	s := NewPlansSlice(&fakePlanService{}, zap.NewNop())

	current := s.Current()
	assert.Equal(t, models.FreePlanName, current.Plan.Name)
	assert.Nil(t, current.Subscription)
}

func TestPlansLoadReplacesCurrent(t *testing.T) {
	svc := &fakePlanService{
		current: models.NormalizePlan(&models.Plan{Name: "pro"}, &models.Subscription{Status: "active"}),
	}
	s := NewPlansSlice(svc, zap.NewNop())

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pro", state.Plan.Name)
	assert.Equal(t, "pro", s.Current().Plan.Name)
}

func TestPlansLoadFailureKeepsLastKnown(t *testing.T) {
	svc := &fakePlanService{
		current: models.NormalizePlan(&models.Plan{Name: "pro"}, nil),
	}
	s := NewPlansSlice(svc, zap.NewNop())

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	svc.err = errors.New("plan fetch failed")
	_, err = s.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, "pro", s.Current().Plan.Name)
	assert.Equal(t, "plan fetch failed", s.Err())
}

func TestPlansUpgradeAndCancel(t *testing.T) {
	svc := &fakePlanService{
		current: models.NormalizePlan(&models.Plan{Name: "elite"}, &models.Subscription{Status: "active"}),
	}
	s := NewPlansSlice(svc, zap.NewNop())

	state, err := s.Upgrade(context.Background(), "plan-elite", "monthly")
	require.NoError(t, err)
	assert.Equal(t, "elite", state.Plan.Name)

	svc.current = models.NormalizePlan(nil, nil)
	state, err = s.Cancel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.FreePlanName, state.Plan.Name)
	assert.Equal(t, models.FreePlanName, s.Current().Plan.Name)
}
