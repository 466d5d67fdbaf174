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

type JobListParams struct {
	Status  string
	JobType string
	Search  string
	Sort    string
	Page    int
	Limit   int
}

// JobPage is one server page of job applications. The server's page is
// authoritative: callers replace their whole list with it.
type JobPage struct {
	Jobs        []models.JobApplication
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// JobInput is the create/update payload. Zero fields are omitted so the same
// type serves partial patches.
type JobInput struct {
	Company         string              `json:"company,omitempty"`
	Position        string              `json:"position,omitempty"`
	Status          string              `json:"status,omitempty"`
	JobType         string              `json:"jobType,omitempty"`
	JobLocation     string              `json:"jobLocation,omitempty"`
	Salary          *models.SalaryRange `json:"salary,omitempty"`
	ApplicationDate *time.Time          `json:"applicationDate,omitempty"`
	Priority        string              `json:"priority,omitempty"`
	Favorite        *bool               `json:"favorite,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	JobURL          string              `json:"jobUrl,omitempty"`
	ContactPerson   *string             `json:"contactPerson,omitempty"`
}

type InterviewInput struct {
	Date  time.Time `json:"date"`
	Type  string    `json:"interviewType"`
	Notes string    `json:"notes,omitempty"`
}

type jobListResponse struct {
	Jobs        []models.JobApplication `json:"jobs"`
	CurrentPage int                     `json:"currentPage"`
	NumOfPages  int                     `json:"numOfPages"`
	TotalJobs   int                     `json:"totalJobs"`
}

type jobResponse struct {
	Job models.JobApplication `json:"job"`
}

func (c *Client) ListJobs(ctx context.Context, params JobListParams) (*JobPage, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.JobType != "" {
		q.Set("jobType", params.JobType)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
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

	var resp jobListResponse
	if err := c.get(ctx, "/jobs", q, &resp); err != nil {
		c.logger.Error("failed to list jobs",
			zap.String("status", params.Status),
			zap.Int("page", params.Page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	c.logger.Debug("jobs listed",
		zap.Int("returned", len(resp.Jobs)),
		zap.Int("total", resp.TotalJobs),
	)

	return &JobPage{
		Jobs:        resp.Jobs,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.NumOfPages,
		TotalItems:  resp.TotalJobs,
	}, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*models.JobApplication, error) {
	var resp jobResponse
	if err := c.get(ctx, "/jobs/"+jobID, nil, &resp); err != nil {
		c.logger.Error("failed to get job", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &resp.Job, nil
}

func (c *Client) CreateJob(ctx context.Context, input JobInput) (*models.JobApplication, error) {
	var resp jobResponse
	if err := c.post(ctx, "/jobs", input, &resp); err != nil {
		c.logger.Error("failed to create job",
			zap.String("company", input.Company),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create job: %w", err)
	}

	c.logger.Info("job created",
		zap.String("job_id", resp.Job.ID),
		zap.String("company", resp.Job.Company),
	)

	return &resp.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, input JobInput) (*models.JobApplication, error) {
	var resp jobResponse
	if err := c.patch(ctx, "/jobs/"+jobID, input, &resp); err != nil {
		c.logger.Error("failed to update job", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("update job: %w", err)
	}
	return &resp.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	if err := c.delete(ctx, "/jobs/"+jobID, nil); err != nil {
		c.logger.Error("failed to delete job", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("delete job: %w", err)
	}

	c.logger.Info("job deleted", zap.String("job_id", jobID))

	return nil
}

// ToggleJobFavorite flips only the favorite flag; the server returns the full
// updated job.
func (c *Client) ToggleJobFavorite(ctx context.Context, jobID string) (*models.JobApplication, error) {
	var resp jobResponse
	if err := c.patch(ctx, "/jobs/"+jobID+"/favorite", nil, &resp); err != nil {
		c.logger.Error("failed to toggle job favorite", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("toggle job favorite: %w", err)
	}
	return &resp.Job, nil
}

func (c *Client) AddInterview(ctx context.Context, jobID string, input InterviewInput) (*models.JobApplication, error) {
	var resp jobResponse
	if err := c.post(ctx, "/jobs/"+jobID+"/interviews", input, &resp); err != nil {
		c.logger.Error("failed to add interview", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("add interview: %w", err)
	}
	return &resp.Job, nil
}

func (c *Client) UpdateInterview(ctx context.Context, jobID, interviewID string, input InterviewInput) (*models.JobApplication, error) {
	var resp jobResponse
	path := "/jobs/" + jobID + "/interviews/" + interviewID
	if err := c.patch(ctx, path, input, &resp); err != nil {
		c.logger.Error("failed to update interview",
			zap.String("job_id", jobID),
			zap.String("interview_id", interviewID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update interview: %w", err)
	}
	return &resp.Job, nil
}

func (c *Client) DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error) {
	var resp jobResponse
	path := "/jobs/" + jobID + "/interviews/" + interviewID
	if err := c.delete(ctx, path, &resp); err != nil {
		c.logger.Error("failed to delete interview",
			zap.String("job_id", jobID),
			zap.String("interview_id", interviewID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("delete interview: %w", err)
	}
	return &resp.Job, nil
}
