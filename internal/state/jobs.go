package state

import (
	"context"
	"sync"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

// JobService is the slice of the API client the jobs store depends on.
type JobService interface {
	ListJobs(ctx context.Context, params huntoza.JobListParams) (*huntoza.JobPage, error)
	GetJob(ctx context.Context, jobID string) (*models.JobApplication, error)
	CreateJob(ctx context.Context, input huntoza.JobInput) (*models.JobApplication, error)
	UpdateJob(ctx context.Context, jobID string, input huntoza.JobInput) (*models.JobApplication, error)
	DeleteJob(ctx context.Context, jobID string) error
	ToggleJobFavorite(ctx context.Context, jobID string) (*models.JobApplication, error)
	AddInterview(ctx context.Context, jobID string, input huntoza.InterviewInput) (*models.JobApplication, error)
	UpdateInterview(ctx context.Context, jobID, interviewID string, input huntoza.InterviewInput) (*models.JobApplication, error)
	DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error)
}

// JobsSlice owns the authoritative in-memory copy of the job collection plus
// the focused job. Every operation runs pending → fulfilled/rejected: pending
// sets loading and clears the error, both terminal states clear loading.
type JobsSlice struct {
	mu     sync.RWMutex
	svc    JobService
	logger *zap.Logger

	jobs       []models.JobApplication
	current    *models.JobApplication
	loading    bool
	err        string
	pagination Pagination
}

func NewJobsSlice(svc JobService, logger *zap.Logger) *JobsSlice {
	return &JobsSlice{svc: svc, logger: logger}
}

func (s *JobsSlice) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *JobsSlice) reject(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = errMessage(err)
	s.mu.Unlock()
}

// Load replaces the entire list and pagination descriptor with the server's
// page. Racing loads are last-write-wins: whichever response lands last is
// kept, matching the upstream behavior (no request epochs). On failure the
// previous list is preserved.
func (s *JobsSlice) Load(ctx context.Context, params huntoza.JobListParams) ([]models.JobApplication, error) {
	s.begin()

	page, err := s.svc.ListJobs(ctx, sanitizeJobParams(params))
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.jobs = page.Jobs
	s.pagination = Pagination{
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
	}
	s.mu.Unlock()

	return page.Jobs, nil
}

// Create inserts the confirmed record at the head of the list (newest first)
// and bumps TotalItems without renumbering pages.
func (s *JobsSlice) Create(ctx context.Context, input huntoza.JobInput) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.CreateJob(ctx, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.jobs = append([]models.JobApplication{*job}, s.jobs...)
	s.pagination.TotalItems++
	s.mu.Unlock()

	return job, nil
}

func (s *JobsSlice) Update(ctx context.Context, jobID string, input huntoza.JobInput) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.UpdateJob(ctx, jobID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*job)
	return job, nil
}

// Remove filters the id out of the list and decrements TotalItems with a
// floor of 0. A miss is not an error: the list may simply be stale.
func (s *JobsSlice) Remove(ctx context.Context, jobID string) error {
	s.begin()

	if err := s.svc.DeleteJob(ctx, jobID); err != nil {
		s.reject(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ID != jobID {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
	if s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	if s.current != nil && s.current.ID == jobID {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

// GetByID sets the focused job; the list is untouched.
func (s *JobsSlice) GetByID(ctx context.Context, jobID string) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.GetJob(ctx, jobID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	current := *job
	s.current = &current
	s.mu.Unlock()

	return job, nil
}

func (s *JobsSlice) ToggleFavorite(ctx context.Context, jobID string) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.ToggleJobFavorite(ctx, jobID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*job)
	return job, nil
}

func (s *JobsSlice) AddInterview(ctx context.Context, jobID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.AddInterview(ctx, jobID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*job)
	return job, nil
}

func (s *JobsSlice) UpdateInterview(ctx context.Context, jobID, interviewID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.UpdateInterview(ctx, jobID, interviewID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*job)
	return job, nil
}

func (s *JobsSlice) DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error) {
	s.begin()

	job, err := s.svc.DeleteInterview(ctx, jobID, interviewID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*job)
	return job, nil
}

// replace swaps the matching list element and the focused job by id. A miss
// is tolerated: a future reload reconciles stale lists.
func (s *JobsSlice) replace(job models.JobApplication) {
	s.mu.Lock()
	s.loading = false
	found := false
	for i := range s.jobs {
		if s.jobs[i].ID == job.ID {
			s.jobs[i] = job
			found = true
			break
		}
	}
	if s.current != nil && s.current.ID == job.ID {
		current := job
		s.current = &current
	}
	s.mu.Unlock()

	if !found {
		s.logger.Debug("updated job not in local list", zap.String("job_id", job.ID))
	}
}

func (s *JobsSlice) Jobs() []models.JobApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]models.JobApplication, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

func (s *JobsSlice) Current() *models.JobApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

func (s *JobsSlice) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *JobsSlice) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *JobsSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *JobsSlice) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *JobsSlice) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination.TotalItems
}
