package state

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJobService struct {
	page       *huntoza.JobPage
	job        *models.JobApplication
	err        error
	lastParams huntoza.JobListParams
	calls      int
}

func (f *fakeJobService) ListJobs(ctx context.Context, params huntoza.JobListParams) (*huntoza.JobPage, error) {
	f.calls++
	f.lastParams = params
	return f.page, f.err
}

func (f *fakeJobService) GetJob(ctx context.Context, jobID string) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) CreateJob(ctx context.Context, input huntoza.JobInput) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) UpdateJob(ctx context.Context, jobID string, input huntoza.JobInput) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) DeleteJob(ctx context.Context, jobID string) error {
	f.calls++
	return f.err
}

func (f *fakeJobService) ToggleJobFavorite(ctx context.Context, jobID string) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) AddInterview(ctx context.Context, jobID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) UpdateInterview(ctx context.Context, jobID, interviewID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeJobService) DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error) {
	f.calls++
	return f.job, f.err
}

func job(id string) models.JobApplication {
	return models.JobApplication{ID: id, Company: "Acme", Position: "Engineer", Status: models.JobStatusApplied}
}

func loadedJobsSlice(t *testing.T, svc *fakeJobService, jobs ...models.JobApplication) *JobsSlice {
	t.Helper()

	svc.page = &huntoza.JobPage{
		Jobs:        jobs,
		CurrentPage: 1,
		TotalPages:  1,
		TotalItems:  len(jobs),
	}

	s := NewJobsSlice(svc, zap.NewNop())
	_, err := s.Load(context.Background(), huntoza.JobListParams{})
	require.NoError(t, err)
	return s
}

func TestJobsLoadReplacesList(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"), job("b"))

	assert.Len(t, s.Jobs(), 2)
	assert.Equal(t, 2, s.TotalItems())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())

	// a later page wholesale replaces the earlier one
	svc.page = &huntoza.JobPage{Jobs: []models.JobApplication{job("c")}, CurrentPage: 2, TotalPages: 3, TotalItems: 11}
	_, err := s.Load(context.Background(), huntoza.JobListParams{Page: 2})
	require.NoError(t, err)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "c", jobs[0].ID)
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 11}, s.Pagination())
}

func TestJobsLoadFailurePreservesList(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	svc.page = nil
	svc.err = errors.New("server unavailable")

	_, err := s.Load(context.Background(), huntoza.JobListParams{})
	require.Error(t, err)

	assert.Len(t, s.Jobs(), 1)
	assert.Equal(t, "server unavailable", s.Err())
	assert.False(t, s.Loading())

	// next pending attempt clears the stored error
	svc.err = nil
	svc.page = &huntoza.JobPage{Jobs: nil, TotalItems: 0}
	_, err = s.Load(context.Background(), huntoza.JobListParams{})
	require.NoError(t, err)
	assert.Empty(t, s.Err())
}

func TestJobsRejectStoresServerMessageVerbatim(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	svc.page = nil
	svc.err = fmt.Errorf("list jobs: %w", &huntoza.APIError{
		StatusCode: 403,
		Message:    "you have reached your monthly quota",
	})

	_, err := s.Load(context.Background(), huntoza.JobListParams{})
	require.Error(t, err)
	assert.Equal(t, "you have reached your monthly quota", s.Err(),
		"the call-site wrap must not leak into the slice error")
}

func TestJobsLoadDropsUnknownFilterValues(t *testing.T) {
	svc := &fakeJobService{}
	s := NewJobsSlice(svc, zap.NewNop())
	svc.page = &huntoza.JobPage{}

	_, err := s.Load(context.Background(), huntoza.JobListParams{
		Status:  "all",
		JobType: "freelance-gig",
		Sort:    "salary-desc",
	})
	require.NoError(t, err)

	assert.Empty(t, svc.lastParams.Status)
	assert.Empty(t, svc.lastParams.JobType)
	assert.Empty(t, svc.lastParams.Sort)
}

func TestJobsCreatePrepends(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	created := job("new")
	svc.job = &created

	got, err := s.Create(context.Background(), huntoza.JobInput{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "new", jobs[0].ID)
	assert.Equal(t, 2, s.TotalItems())
}

func TestJobsRemove(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"), job("b"))

	focus := job("a")
	svc.job = &focus
	_, err := s.GetByID(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, s.Current())

	require.NoError(t, s.Remove(context.Background(), "a"))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "b", jobs[0].ID)
	assert.Equal(t, 1, s.TotalItems())
	assert.Nil(t, s.Current(), "removing the focused job clears focus")
}

func TestJobsRemoveMissStillDecrements(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	require.NoError(t, s.Remove(context.Background(), "ghost"))
	assert.Len(t, s.Jobs(), 1)
	assert.Equal(t, 0, s.TotalItems())

	// and the count never goes negative
	require.NoError(t, s.Remove(context.Background(), "ghost"))
	assert.Equal(t, 0, s.TotalItems())
}

func TestJobsUpdateReplacesInPlace(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"), job("b"))

	updated := job("b")
	updated.Status = models.JobStatusOffer
	svc.job = &updated

	_, err := s.Update(context.Background(), "b", huntoza.JobInput{Status: "offer"})
	require.NoError(t, err)

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, models.JobStatusOffer, jobs[1].Status)
}

func TestJobsUpdateMissIsNoOp(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	stale := job("gone")
	svc.job = &stale

	_, err := s.Update(context.Background(), "gone", huntoza.JobInput{})
	require.NoError(t, err)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Empty(t, s.Err())
}

func TestJobsToggleFavoriteRefreshesFocus(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	focus := job("a")
	svc.job = &focus
	_, err := s.GetByID(context.Background(), "a")
	require.NoError(t, err)

	toggled := job("a")
	toggled.Favorite = true
	svc.job = &toggled

	_, err = s.ToggleFavorite(context.Background(), "a")
	require.NoError(t, err)

	assert.True(t, s.Jobs()[0].Favorite)
	require.NotNil(t, s.Current())
	assert.True(t, s.Current().Favorite, "focused copy follows the list")
}

func TestJobsAccessorsReturnCopies(t *testing.T) {
	svc := &fakeJobService{}
	s := loadedJobsSlice(t, svc, job("a"))

	jobs := s.Jobs()
	jobs[0].Company = "Mutated"

	assert.Equal(t, "Acme", s.Jobs()[0].Company)
}
