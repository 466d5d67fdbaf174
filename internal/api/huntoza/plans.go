package huntoza

import (
	"context"
	"fmt"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type planListResponse struct {
	Plans []models.Plan `json:"plans"`
}

type currentPlanResponse struct {
	Plan         *models.Plan         `json:"plan"`
	Subscription *models.Subscription `json:"subscription"`
}

type upgradeRequest struct {
	PlanID       string `json:"planId"`
	BillingCycle string `json:"billingCycle"`
}

func (c *Client) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var resp planListResponse
	if err := c.get(ctx, "/plans", nil, &resp); err != nil {
		c.logger.Error("failed to list plans", zap.Error(err))
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return resp.Plans, nil
}

// CurrentPlan fetches the account's plan. The result always passes through
// NormalizePlan so callers never see an absent plan.
func (c *Client) CurrentPlan(ctx context.Context) (models.PlanState, error) {
	var resp currentPlanResponse
	if err := c.get(ctx, "/plans/user/current", nil, &resp); err != nil {
		c.logger.Error("failed to get current plan", zap.Error(err))
		return models.NormalizePlan(nil, nil), fmt.Errorf("get current plan: %w", err)
	}

	state := models.NormalizePlan(resp.Plan, resp.Subscription)

	c.logger.Debug("current plan fetched", zap.String("plan", state.Plan.Name))

	return state, nil
}

func (c *Client) UpgradePlan(ctx context.Context, planID, billingCycle string) (models.PlanState, error) {
	var resp currentPlanResponse
	req := upgradeRequest{PlanID: planID, BillingCycle: billingCycle}
	if err := c.post(ctx, "/plans/upgrade", req, &resp); err != nil {
		c.logger.Error("failed to upgrade plan", zap.String("plan_id", planID), zap.Error(err))
		return models.NormalizePlan(nil, nil), fmt.Errorf("upgrade plan: %w", err)
	}

	state := models.NormalizePlan(resp.Plan, resp.Subscription)

	c.logger.Info("plan upgraded", zap.String("plan", state.Plan.Name))

	return state, nil
}

func (c *Client) CancelSubscription(ctx context.Context) (models.PlanState, error) {
	var resp currentPlanResponse
	if err := c.post(ctx, "/plans/cancel", nil, &resp); err != nil {
		c.logger.Error("failed to cancel subscription", zap.Error(err))
		return models.NormalizePlan(nil, nil), fmt.Errorf("cancel subscription: %w", err)
	}

	state := models.NormalizePlan(resp.Plan, resp.Subscription)

	c.logger.Info("subscription cancelled", zap.String("plan", state.Plan.Name))

	return state, nil
}
