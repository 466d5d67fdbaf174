package models

import "time"

const FreePlanName = "free"

// Unlimited marks a plan limit with no cap.
const Unlimited = -1

// PlanLimits uses pointers so an absent limit can be told apart from an
// explicit zero; the access gate applies per-limit defaults for nil.
type PlanLimits struct {
	JobApplications *int `json:"jobApplications,omitempty"`
	Contacts        *int `json:"contacts,omitempty"`
	DocumentStorage *int `json:"documentStorage,omitempty"` // MB
}

type PlanPrice struct {
	Monthly  int    `json:"monthly"`
	Yearly   int    `json:"yearly"`
	Currency string `json:"currency"`
}

type Plan struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Limits   PlanLimits `json:"limits"`
	Features []string   `json:"features"`
	Price    PlanPrice  `json:"price"`
}

type Subscription struct {
	ID           string    `json:"_id"`
	Status       string    `json:"status"` // active, cancelled, expired
	BillingCycle string    `json:"billingCycle"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	AutoRenew    bool      `json:"autoRenew"`
}

// PlanState is what the access gate consumes. It is never absent: callers get
// the free-plan default until the server has responded.
type PlanState struct {
	Plan         Plan          `json:"plan"`
	Subscription *Subscription `json:"subscription"`
}

// NormalizePlan is the single total defaulting function applied at every
// ingestion boundary. A nil plan, or a plan with no name, becomes the free
// plan with empty limits and features.
func NormalizePlan(plan *Plan, sub *Subscription) PlanState {
	state := PlanState{Subscription: sub}
	if plan == nil || plan.Name == "" {
		state.Plan = Plan{Name: FreePlanName, Features: []string{}}
		return state
	}
	state.Plan = *plan
	if state.Plan.Features == nil {
		state.Plan.Features = []string{}
	}
	return state
}
