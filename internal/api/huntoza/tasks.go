package huntoza

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type TaskListParams struct {
	Status   string
	Category string
	Priority string
	Sort     string
	Page     int
	Limit    int
}

type TaskPage struct {
	Tasks       []models.Task
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

type TaskInput struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	// nil means "no reference"; an empty string must never reach the wire.
	RelatedJob     *string `json:"relatedJob,omitempty"`
	RelatedContact *string `json:"relatedContact,omitempty"`
}

type taskListResponse struct {
	Tasks       []models.Task `json:"tasks"`
	CurrentPage int           `json:"currentPage"`
	NumOfPages  int           `json:"numOfPages"`
	TotalTasks  int           `json:"totalTasks"`
}

type taskResponse struct {
	Task models.Task `json:"task"`
}

func (c *Client) ListTasks(ctx context.Context, params TaskListParams) (*TaskPage, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Priority != "" {
		q.Set("priority", params.Priority)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var resp taskListResponse
	if err := c.get(ctx, "/tasks", q, &resp); err != nil {
		c.logger.Error("failed to list tasks",
			zap.String("status", params.Status),
			zap.Int("page", params.Page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	c.logger.Debug("tasks listed",
		zap.Int("returned", len(resp.Tasks)),
		zap.Int("total", resp.TotalTasks),
	)

	return &TaskPage{
		Tasks:       resp.Tasks,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.NumOfPages,
		TotalItems:  resp.TotalTasks,
	}, nil
}

func (c *Client) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	var resp taskResponse
	if err := c.get(ctx, "/tasks/"+taskID, nil, &resp); err != nil {
		c.logger.Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &resp.Task, nil
}

func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	var resp taskResponse
	if err := c.post(ctx, "/tasks", input, &resp); err != nil {
		c.logger.Error("failed to create task", zap.String("title", input.Title), zap.Error(err))
		return nil, fmt.Errorf("create task: %w", err)
	}

	c.logger.Info("task created",
		zap.String("task_id", resp.Task.ID),
		zap.String("title", resp.Task.Title),
	)

	return &resp.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*models.Task, error) {
	var resp taskResponse
	if err := c.patch(ctx, "/tasks/"+taskID, input, &resp); err != nil {
		c.logger.Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &resp.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.delete(ctx, "/tasks/"+taskID, nil); err != nil {
		c.logger.Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		return fmt.Errorf("delete task: %w", err)
	}

	c.logger.Info("task deleted", zap.String("task_id", taskID))

	return nil
}

// CompleteTask is the status-only transition to "completed".
func (c *Client) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	var resp taskResponse
	if err := c.patch(ctx, "/tasks/"+taskID+"/complete", nil, &resp); err != nil {
		c.logger.Error("failed to complete task", zap.String("task_id", taskID), zap.Error(err))
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return &resp.Task, nil
}
