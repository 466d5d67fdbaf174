package huntoza

import (
	"context"
	"fmt"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type dashboardResponse struct {
	Stats models.DashboardStats `json:"stats"`
}

func (c *Client) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var resp dashboardResponse
	if err := c.get(ctx, "/analytics/dashboard", nil, &resp); err != nil {
		c.logger.Error("failed to get dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	c.logger.Debug("dashboard stats fetched",
		zap.Int("total_jobs", resp.Stats.TotalJobs),
		zap.Int("total_tasks", resp.Stats.TotalTasks),
	)

	return &resp.Stats, nil
}
