package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
)

const (
	DashboardCacheTTL   = 5 * time.Minute
	PlanCacheTTL        = 10 * time.Minute
	RateLimitWindowTTL  = 1 * time.Minute
	ChatStateCacheTTL   = 30 * time.Minute
	FormDraftTTL        = 30 * time.Minute
)

// Tokens are kept until login/refresh/logout replaces them.
const tokenTTL = 0

func DashboardKey() string {
	return "analytics:dashboard"
}

func CurrentPlanKey() string {
	return "plan:current"
}

func RateLimitKey(chatID int64) string {
	return fmt.Sprintf("ratelimit:chat:%d", chatID)
}

func ChatStateKey(chatID int64) string {
	return fmt.Sprintf("state:chat:%d", chatID)
}

func FormDraftKey(chatID int64, form string) string {
	return fmt.Sprintf("draft:chat:%d:%s", chatID, form)
}

func AccessTokenKey() string {
	return "auth:access_token"
}

func RefreshTokenKey() string {
	return "auth:refresh_token"
}

func (c *Cache) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.Get(ctx, DashboardKey(), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Cache) SetDashboard(ctx context.Context, stats *models.DashboardStats) error {
	return c.Set(ctx, DashboardKey(), stats, DashboardCacheTTL)
}

func (c *Cache) InvalidateDashboard(ctx context.Context) error {
	return c.Delete(ctx, DashboardKey())
}

func (c *Cache) GetCurrentPlan(ctx context.Context) (*models.PlanState, error) {
	var state models.PlanState
	if err := c.Get(ctx, CurrentPlanKey(), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Cache) SetCurrentPlan(ctx context.Context, state models.PlanState) error {
	return c.Set(ctx, CurrentPlanKey(), state, PlanCacheTTL)
}

func (c *Cache) IncrementChatRateLimit(ctx context.Context, chatID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(chatID), RateLimitWindowTTL)
}

func (c *Cache) SetChatState(ctx context.Context, chatID int64, state string) error {
	return c.SetString(ctx, ChatStateKey(chatID), state, ChatStateCacheTTL)
}

func (c *Cache) GetChatState(ctx context.Context, chatID int64) (string, error) {
	return c.GetString(ctx, ChatStateKey(chatID))
}

func (c *Cache) DeleteChatState(ctx context.Context, chatID int64) error {
	return c.Delete(ctx, ChatStateKey(chatID))
}

func (c *Cache) SetFormDraft(ctx context.Context, chatID int64, form string, draft interface{}) error {
	return c.Set(ctx, FormDraftKey(chatID, form), draft, FormDraftTTL)
}

func (c *Cache) GetFormDraft(ctx context.Context, chatID int64, form string, dest interface{}) error {
	return c.Get(ctx, FormDraftKey(chatID, form), dest)
}

func (c *Cache) DeleteFormDraft(ctx context.Context, chatID int64, form string) error {
	return c.Delete(ctx, FormDraftKey(chatID, form))
}

// SaveTokens persists the process-wide token pair so a restart does not force
// a fresh login. Empty values clear the stored pair.
func (c *Cache) SaveTokens(ctx context.Context, access, refresh string) error {
	if access == "" && refresh == "" {
		if err := c.Delete(ctx, AccessTokenKey()); err != nil {
			return err
		}
		return c.Delete(ctx, RefreshTokenKey())
	}

	if err := c.SetString(ctx, AccessTokenKey(), access, tokenTTL); err != nil {
		return err
	}
	return c.SetString(ctx, RefreshTokenKey(), refresh, tokenTTL)
}

func (c *Cache) LoadTokens(ctx context.Context) (access, refresh string) {
	access, _ = c.GetString(ctx, AccessTokenKey())
	refresh, _ = c.GetString(ctx, RefreshTokenKey())
	return access, refresh
}
