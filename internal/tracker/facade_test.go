package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/access"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeService satisfies the whole Service interface with canned responses.
type fakeService struct {
	jobPage     *huntoza.JobPage
	job         *models.JobApplication
	jobErr      error
	createCalls int

	taskPage *huntoza.TaskPage
	task     *models.Task
	taskErr  error

	contactPage *huntoza.ContactPage
	contact     *models.Contact
	contactErr  error

	planState models.PlanState
	plans     []models.Plan
	planErr   error

	stats    *models.DashboardStats
	statsErr error

	order    *models.PaymentOrder
	payment  *models.Payment
	payments []models.Payment
	payErr   error
}

func (f *fakeService) ListJobs(ctx context.Context, params huntoza.JobListParams) (*huntoza.JobPage, error) {
	return f.jobPage, f.jobErr
}
func (f *fakeService) GetJob(ctx context.Context, jobID string) (*models.JobApplication, error) {
	return f.job, f.jobErr
}
func (f *fakeService) CreateJob(ctx context.Context, input huntoza.JobInput) (*models.JobApplication, error) {
	f.createCalls++
	return f.job, f.jobErr
}
func (f *fakeService) UpdateJob(ctx context.Context, jobID string, input huntoza.JobInput) (*models.JobApplication, error) {
	return f.job, f.jobErr
}
func (f *fakeService) DeleteJob(ctx context.Context, jobID string) error { return f.jobErr }
func (f *fakeService) ToggleJobFavorite(ctx context.Context, jobID string) (*models.JobApplication, error) {
	return f.job, f.jobErr
}
func (f *fakeService) AddInterview(ctx context.Context, jobID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	return f.job, f.jobErr
}
func (f *fakeService) UpdateInterview(ctx context.Context, jobID, interviewID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	return f.job, f.jobErr
}
func (f *fakeService) DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error) {
	return f.job, f.jobErr
}

func (f *fakeService) ListTasks(ctx context.Context, params huntoza.TaskListParams) (*huntoza.TaskPage, error) {
	return f.taskPage, f.taskErr
}
func (f *fakeService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	return f.task, f.taskErr
}
func (f *fakeService) CreateTask(ctx context.Context, input huntoza.TaskInput) (*models.Task, error) {
	return f.task, f.taskErr
}
func (f *fakeService) UpdateTask(ctx context.Context, taskID string, input huntoza.TaskInput) (*models.Task, error) {
	return f.task, f.taskErr
}
func (f *fakeService) DeleteTask(ctx context.Context, taskID string) error { return f.taskErr }
func (f *fakeService) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	return f.task, f.taskErr
}

func (f *fakeService) ListContacts(ctx context.Context, params huntoza.ContactListParams) (*huntoza.ContactPage, error) {
	return f.contactPage, f.contactErr
}
func (f *fakeService) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) CreateContact(ctx context.Context, input huntoza.ContactInput) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) UpdateContact(ctx context.Context, contactID string, input huntoza.ContactInput) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) DeleteContact(ctx context.Context, contactID string) error {
	return f.contactErr
}
func (f *fakeService) ToggleContactFavorite(ctx context.Context, contactID string) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) AddInteraction(ctx context.Context, contactID string, input huntoza.InteractionInput) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) UpdateInteraction(ctx context.Context, contactID, interactionID string, input huntoza.InteractionInput) (*models.Contact, error) {
	return f.contact, f.contactErr
}
func (f *fakeService) DeleteInteraction(ctx context.Context, contactID, interactionID string) (*models.Contact, error) {
	return f.contact, f.contactErr
}

func (f *fakeService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return f.plans, f.planErr
}
func (f *fakeService) CurrentPlan(ctx context.Context) (models.PlanState, error) {
	return f.planState, f.planErr
}
func (f *fakeService) UpgradePlan(ctx context.Context, planID, billingCycle string) (models.PlanState, error) {
	return f.planState, f.planErr
}
func (f *fakeService) CancelSubscription(ctx context.Context) (models.PlanState, error) {
	return f.planState, f.planErr
}

func (f *fakeService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeService) CreateOrder(ctx context.Context, planID, billingCycle string) (*models.PaymentOrder, error) {
	return f.order, f.payErr
}
func (f *fakeService) VerifyPayment(ctx context.Context, input huntoza.VerifyPaymentInput) (*models.Payment, error) {
	return f.payment, f.payErr
}
func (f *fakeService) PaymentHistory(ctx context.Context) ([]models.Payment, error) {
	return f.payments, f.payErr
}

// memArchiver records snapshot calls so tests can assert best-effort
// archiving without a database.
type memArchiver struct {
	mu      sync.Mutex
	jobs    []models.JobApplication
	deleted []string
	counts  map[string]int
	done    chan struct{}
}

func newMemArchiver() *memArchiver {
	return &memArchiver{done: make(chan struct{}, 4)}
}

func (a *memArchiver) SaveJobSnapshots(ctx context.Context, jobs []models.JobApplication) error {
	a.mu.Lock()
	a.jobs = append(a.jobs, jobs...)
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *memArchiver) SaveTaskSnapshots(ctx context.Context, tasks []models.Task) error {
	a.done <- struct{}{}
	return nil
}

func (a *memArchiver) SaveContactSnapshots(ctx context.Context, contacts []models.Contact) error {
	a.done <- struct{}{}
	return nil
}

func (a *memArchiver) DeleteSnapshot(ctx context.Context, entity, entityID string) error {
	a.mu.Lock()
	a.deleted = append(a.deleted, entity+"/"+entityID)
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *memArchiver) SnapshotCounts(ctx context.Context) (map[string]int, error) {
	return a.counts, nil
}

func newFacade(svc *fakeService) *Facade {
	return New(svc, nil, zap.NewNop())
}

func seedPlan(t *testing.T, f *Facade, svc *fakeService, name string, limits models.PlanLimits) {
	t.Helper()
	svc.planState = models.NormalizePlan(&models.Plan{Name: name, Limits: limits}, nil)
	f.LoadCurrentPlan(context.Background())
	require.Equal(t, name, f.CurrentPlan().Plan.Name)
}

func TestCreateJobBlockedByGateSkipsNetwork(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	// free plan, list already at the default limit
	svc.jobPage = &huntoza.JobPage{TotalItems: access.DefaultJobApplicationLimit}
	f.LoadJobs(context.Background(), huntoza.JobListParams{})

	_, err := f.CreateJob(context.Background(), huntoza.JobInput{Company: "Acme"})
	require.Error(t, err)

	var limitErr *access.LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "job applications", limitErr.Kind)
	assert.Zero(t, svc.createCalls, "gate rejection must not reach the server")
}

func TestCreateJobAllowedAfterUpgrade(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	svc.jobPage = &huntoza.JobPage{TotalItems: access.DefaultJobApplicationLimit}
	f.LoadJobs(context.Background(), huntoza.JobListParams{})

	unlimited := models.Unlimited
	seedPlan(t, f, svc, "pro", models.PlanLimits{JobApplications: &unlimited})

	created := models.JobApplication{ID: "new"}
	svc.job = &created

	job, err := f.CreateJob(context.Background(), huntoza.JobInput{Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "new", job.ID)
	assert.Equal(t, 1, svc.createCalls)
}

func TestSeedCurrentPlanDrivesGateWithoutNetwork(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	svc.jobPage = &huntoza.JobPage{TotalItems: access.DefaultJobApplicationLimit}
	f.LoadJobs(context.Background(), huntoza.JobListParams{})

	unlimited := models.Unlimited
	f.SeedCurrentPlan(models.NormalizePlan(
		&models.Plan{Name: "pro", Limits: models.PlanLimits{JobApplications: &unlimited}}, nil))
	require.Equal(t, "pro", f.CurrentPlan().Plan.Name)

	created := models.JobApplication{ID: "new"}
	svc.job = &created

	_, err := f.CreateJob(context.Background(), huntoza.JobInput{Company: "Acme"})
	require.NoError(t, err, "a seeded paid plan must lift the free-tier default")
	assert.Equal(t, 1, svc.createCalls)
}

func TestErrPrecedenceOrder(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	svc.taskErr = errors.New("tasks down")
	f.LoadTasks(context.Background(), huntoza.TaskListParams{})

	svc.contactErr = errors.New("contacts down")
	f.LoadContacts(context.Background(), huntoza.ContactListParams{})

	assert.Equal(t, "tasks down", f.Err(), "tasks outrank contacts")

	svc.jobErr = errors.New("jobs down")
	f.LoadJobs(context.Background(), huntoza.JobListParams{})

	assert.Equal(t, "jobs down", f.Err(), "jobs outrank everything")

	f.ClearErrors()
	assert.Empty(t, f.Err())
	assert.False(t, f.IsLoading())
}

func TestLoadDegradesGracefully(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	svc.jobErr = errors.New("unreachable")
	assert.Nil(t, f.LoadJobs(context.Background(), huntoza.JobListParams{}))
	assert.Nil(t, f.GetJob(context.Background(), "x"))
	assert.False(t, f.DeleteJob(context.Background(), "x"))

	// mutations surface errors instead
	svc.planState = models.NormalizePlan(&models.Plan{Name: "pro"}, nil)
	f.LoadCurrentPlan(context.Background())
	_, err := f.CreateJob(context.Background(), huntoza.JobInput{})
	require.Error(t, err)
}

func TestAddContactTag(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	// gated on free plan
	_, err := f.AddContactTag(context.Background(), "c1", "warm")
	require.Error(t, err)
	var limitErr *access.LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "custom tags", limitErr.Kind)

	seedPlan(t, f, svc, "pro", models.PlanLimits{})

	existing := models.Contact{ID: "c1", Tags: []string{"warm"}}
	svc.contact = &existing

	// duplicate tag short-circuits without an update
	contact, err := f.AddContactTag(context.Background(), "c1", "warm")
	require.NoError(t, err)
	assert.Equal(t, []string{"warm"}, contact.Tags)

	tagged := models.Contact{ID: "c1", Tags: []string{"warm", "referral"}}
	svc.contact = &tagged

	contact, err = f.AddContactTag(context.Background(), "c1", "referral")
	require.NoError(t, err)
	assert.Equal(t, []string{"warm", "referral"}, contact.Tags)
}

func TestAnalyticsGating(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	assert.False(t, f.CanAccessAnalytics())
	require.Error(t, f.AnalyticsError())

	seedPlan(t, f, svc, "pro", models.PlanLimits{})
	assert.True(t, f.CanAccessAnalytics())

	svc.stats = &models.DashboardStats{TotalJobs: 3}
	stats := f.LoadDashboard(context.Background())
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 3, f.DashboardStats().TotalJobs)
}

func TestLoadJobsArchivesSnapshots(t *testing.T) {
	svc := &fakeService{}
	archiver := newMemArchiver()
	f := New(svc, archiver, zap.NewNop())

	svc.jobPage = &huntoza.JobPage{
		Jobs:       []models.JobApplication{{ID: "a"}, {ID: "b"}},
		TotalItems: 2,
	}

	jobs := f.LoadJobs(context.Background(), huntoza.JobListParams{})
	require.Len(t, jobs, 2)

	<-archiver.done

	archiver.mu.Lock()
	defer archiver.mu.Unlock()
	assert.Len(t, archiver.jobs, 2)
}

func TestDeleteJobDropsSnapshot(t *testing.T) {
	svc := &fakeService{}
	archiver := newMemArchiver()
	f := New(svc, archiver, zap.NewNop())

	svc.jobPage = &huntoza.JobPage{
		Jobs:       []models.JobApplication{{ID: "a"}},
		TotalItems: 1,
	}
	f.LoadJobs(context.Background(), huntoza.JobListParams{})
	<-archiver.done

	require.True(t, f.DeleteJob(context.Background(), "a"))
	<-archiver.done

	archiver.mu.Lock()
	defer archiver.mu.Unlock()
	assert.Equal(t, []string{"job/a"}, archiver.deleted)
}

func TestLocalCountsComeFromArchiver(t *testing.T) {
	svc := &fakeService{}
	archiver := newMemArchiver()
	archiver.counts = map[string]int{
		models.SnapshotEntityJob:  7,
		models.SnapshotEntityTask: 3,
	}
	f := New(svc, archiver, zap.NewNop())

	counts := f.LocalCounts(context.Background())
	assert.Equal(t, 7, counts[models.SnapshotEntityJob])
	assert.Equal(t, 3, counts[models.SnapshotEntityTask])

	// nil archiver disables the offline fallback
	assert.Nil(t, newFacade(svc).LocalCounts(context.Background()))
}

func TestPaymentFlow(t *testing.T) {
	svc := &fakeService{}
	f := newFacade(svc)

	svc.order = &models.PaymentOrder{ID: "order-1"}
	order, err := f.CreateOrder(context.Background(), "plan-pro", "monthly")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	svc.payment = &models.Payment{ID: "pay-1", Status: "captured"}
	payment, err := f.VerifyPayment(context.Background(), huntoza.VerifyPaymentInput{
		OrderID:   "order-1",
		PaymentID: "pay-1",
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.Equal(t, "captured", payment.Status)

	svc.payments = []models.Payment{*svc.payment}
	history := f.PaymentHistory(context.Background())
	assert.Len(t, history, 1)
}
