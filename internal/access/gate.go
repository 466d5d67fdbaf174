// Package access implements the plan-derived policy gate: a client-side
// pre-check mirroring the server's plan enforcement, so obviously-disallowed
// creates never cost a round trip. The server stays the final authority.
package access

import (
	"fmt"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
)

// Per-limit defaults applied when the plan carries no explicit value.
const (
	DefaultJobApplicationLimit = 5
	DefaultContactLimit        = 10
	DefaultDocumentStorageMB   = 5
)

// LimitError names the limit kind and the plan so forms can show it directly.
type LimitError struct {
	Kind string
	Plan string
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("you have reached the %s limit for your %s plan", e.Kind, e.Plan)
}

// Gate is a pure policy object built from one plan snapshot. It must be
// re-derived whenever the current plan changes; it caches nothing else.
type Gate struct {
	plan models.Plan
}

// NewGate builds a gate from the current plan state. A missing plan is
// normalized to the free plan, so every method is total.
func NewGate(state models.PlanState) Gate {
	if state.Plan.Name == "" {
		state = models.NormalizePlan(nil, state.Subscription)
	}
	return Gate{plan: state.Plan}
}

func (g Gate) PlanName() string {
	return g.plan.Name
}

func (g Gate) CanCreateJobApplication(currentCount int) bool {
	limit := limitOrDefault(g.plan.Limits.JobApplications, DefaultJobApplicationLimit)
	if limit == models.Unlimited {
		return true
	}
	return currentCount < limit
}

func (g Gate) CanCreateContact(currentCount int) bool {
	limit := limitOrDefault(g.plan.Limits.Contacts, DefaultContactLimit)
	if limit == models.Unlimited {
		return true
	}
	return currentCount < limit
}

// CanUploadDocument checks byte usage against the plan's storage limit, which
// is expressed in MB.
func (g Gate) CanUploadDocument(currentBytes, addedBytes int64) bool {
	limit := limitOrDefault(g.plan.Limits.DocumentStorage, DefaultDocumentStorageMB)
	if limit == models.Unlimited {
		return true
	}
	return currentBytes+addedBytes <= int64(limit)*1024*1024
}

func (g Gate) CanAccessAnalytics() bool {
	return g.plan.Name != models.FreePlanName
}

func (g Gate) CanCreateCustomTags() bool {
	return g.plan.Name != models.FreePlanName
}

// JobLimitError and friends build the user-presentable policy error raised
// before any network call.
func (g Gate) JobLimitError() error {
	return &LimitError{Kind: "job applications", Plan: g.plan.Name}
}

func (g Gate) ContactLimitError() error {
	return &LimitError{Kind: "contacts", Plan: g.plan.Name}
}

func (g Gate) DocumentLimitError() error {
	return &LimitError{Kind: "document storage", Plan: g.plan.Name}
}

func (g Gate) AnalyticsError() error {
	return &LimitError{Kind: "analytics", Plan: g.plan.Name}
}

func (g Gate) CustomTagsError() error {
	return &LimitError{Kind: "custom tags", Plan: g.plan.Name}
}

func limitOrDefault(limit *int, def int) int {
	if limit == nil {
		return def
	}
	return *limit
}
