package access

import (
	"errors"
	"testing"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func freeGate() Gate {
	return NewGate(models.NormalizePlan(nil, nil))
}

func TestGateDefaultsOnFreePlan(t *testing.T) {
	gate := freeGate()

	assert.True(t, gate.CanCreateJobApplication(0))
	assert.True(t, gate.CanCreateJobApplication(DefaultJobApplicationLimit-1))
	assert.False(t, gate.CanCreateJobApplication(DefaultJobApplicationLimit))
	assert.False(t, gate.CanCreateJobApplication(DefaultJobApplicationLimit+10))

	assert.True(t, gate.CanCreateContact(DefaultContactLimit-1))
	assert.False(t, gate.CanCreateContact(DefaultContactLimit))
}

func TestGateExplicitLimits(t *testing.T) {
	gate := NewGate(models.PlanState{Plan: models.Plan{
		Name: "pro",
		Limits: models.PlanLimits{
			JobApplications: intPtr(100),
			Contacts:        intPtr(0),
		},
	}})

	assert.True(t, gate.CanCreateJobApplication(99))
	assert.False(t, gate.CanCreateJobApplication(100))

	// explicit zero is a real limit, not "use the default"
	assert.False(t, gate.CanCreateContact(0))
}

func TestGateUnlimited(t *testing.T) {
	gate := NewGate(models.PlanState{Plan: models.Plan{
		Name: "elite",
		Limits: models.PlanLimits{
			JobApplications: intPtr(models.Unlimited),
			Contacts:        intPtr(models.Unlimited),
			DocumentStorage: intPtr(models.Unlimited),
		},
	}})

	assert.True(t, gate.CanCreateJobApplication(1_000_000))
	assert.True(t, gate.CanCreateContact(1_000_000))
	assert.True(t, gate.CanUploadDocument(1<<40, 1<<40))
}

func TestGateDocumentStorage(t *testing.T) {
	gate := freeGate()

	limitBytes := int64(DefaultDocumentStorageMB) * 1024 * 1024

	assert.True(t, gate.CanUploadDocument(0, limitBytes))
	assert.False(t, gate.CanUploadDocument(0, limitBytes+1))
	assert.False(t, gate.CanUploadDocument(limitBytes, 1))
}

func TestGateFeatureFlags(t *testing.T) {
	free := freeGate()
	assert.False(t, free.CanAccessAnalytics())
	assert.False(t, free.CanCreateCustomTags())

	paid := NewGate(models.PlanState{Plan: models.Plan{Name: "pro"}})
	assert.True(t, paid.CanAccessAnalytics())
	assert.True(t, paid.CanCreateCustomTags())
}

func TestGateNormalizesMissingPlan(t *testing.T) {
	gate := NewGate(models.PlanState{})

	assert.Equal(t, models.FreePlanName, gate.PlanName())
	assert.False(t, gate.CanAccessAnalytics())
}

func TestLimitErrorMessage(t *testing.T) {
	gate := freeGate()

	err := gate.JobLimitError()
	require.Error(t, err)
	assert.Equal(t, "you have reached the job applications limit for your free plan", err.Error())

	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "job applications", limitErr.Kind)
	assert.Equal(t, models.FreePlanName, limitErr.Plan)

	assert.Contains(t, gate.ContactLimitError().Error(), "contacts")
	assert.Contains(t, gate.AnalyticsError().Error(), "analytics")
	assert.Contains(t, gate.CustomTagsError().Error(), "custom tags")
}
