package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlanNil(t *testing.T) {
	state := NormalizePlan(nil, nil)

	assert.Equal(t, FreePlanName, state.Plan.Name)
	assert.NotNil(t, state.Plan.Features)
	assert.Empty(t, state.Plan.Features)
	assert.Nil(t, state.Subscription)
	assert.Nil(t, state.Plan.Limits.JobApplications)
}

func TestNormalizePlanEmptyName(t *testing.T) {
	state := NormalizePlan(&Plan{Name: ""}, nil)

	assert.Equal(t, FreePlanName, state.Plan.Name)
}

func TestNormalizePlanKeepsNamedPlan(t *testing.T) {
	limit := 50
	sub := &Subscription{ID: "sub-1", Status: "active"}

	state := NormalizePlan(&Plan{
		Name:   "pro",
		Limits: PlanLimits{JobApplications: &limit},
	}, sub)

	assert.Equal(t, "pro", state.Plan.Name)
	assert.Equal(t, 50, *state.Plan.Limits.JobApplications)
	assert.Same(t, sub, state.Subscription)
	assert.NotNil(t, state.Plan.Features)
}
