// Package tracker is the aggregation surface the bot consumes: it hides which
// slice owns which piece of state and exposes one flat set of operations.
package tracker

import (
	"context"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/access"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/state"

	"go.uber.org/zap"
)

// Service is everything the facade needs from the API client.
type Service interface {
	state.JobService
	state.TaskService
	state.ContactService
	state.PlanService
	state.AnalyticsService
	CreateOrder(ctx context.Context, planID, billingCycle string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, input huntoza.VerifyPaymentInput) (*models.Payment, error)
	PaymentHistory(ctx context.Context) ([]models.Payment, error)
}

// Archiver persists loaded lists locally, best-effort, so counts survive
// offline. A nil archiver disables snapshots.
type Archiver interface {
	SaveJobSnapshots(ctx context.Context, jobs []models.JobApplication) error
	SaveTaskSnapshots(ctx context.Context, tasks []models.Task) error
	SaveContactSnapshots(ctx context.Context, contacts []models.Contact) error
	DeleteSnapshot(ctx context.Context, entity, entityID string) error
	SnapshotCounts(ctx context.Context) (map[string]int, error)
}

type Facade struct {
	svc      Service
	jobs     *state.JobsSlice
	tasks    *state.TasksSlice
	contacts *state.ContactsSlice
	plans    *state.PlansSlice
	stats    *state.AnalyticsSlice
	archiver Archiver
	logger   *zap.Logger
}

func New(svc Service, archiver Archiver, logger *zap.Logger) *Facade {
	return &Facade{
		svc:      svc,
		jobs:     state.NewJobsSlice(svc, logger),
		tasks:    state.NewTasksSlice(svc, logger),
		contacts: state.NewContactsSlice(svc, logger),
		plans:    state.NewPlansSlice(svc, logger),
		stats:    state.NewAnalyticsSlice(svc, logger),
		archiver: archiver,
		logger:   logger,
	}
}

// gate derives a fresh policy object from the current plan snapshot. No
// caching: a plan change is picked up by the next call.
func (f *Facade) gate() access.Gate {
	return access.NewGate(f.plans.Current())
}

// IsLoading reports whether any slice has an operation in flight.
func (f *Facade) IsLoading() bool {
	return f.jobs.Loading() ||
		f.tasks.Loading() ||
		f.contacts.Loading() ||
		f.plans.Loading() ||
		f.stats.Loading()
}

// Err returns the first non-empty slice error in fixed precedence order:
// jobs, tasks, contacts, plans, analytics.
func (f *Facade) Err() string {
	for _, err := range []string{
		f.jobs.Err(),
		f.tasks.Err(),
		f.contacts.Err(),
		f.plans.Err(),
		f.stats.Err(),
	} {
		if err != "" {
			return err
		}
	}
	return ""
}

// ClearErrors clears every slice's error in one step.
func (f *Facade) ClearErrors() {
	f.jobs.ClearError()
	f.tasks.ClearError()
	f.contacts.ClearError()
	f.plans.ClearError()
	f.stats.ClearError()
}

// ---- Jobs ----

// LoadJobs degrades gracefully: on failure it returns nil and leaves the
// error on the slice, so list views can still render the previous page.
func (f *Facade) LoadJobs(ctx context.Context, params huntoza.JobListParams) []models.JobApplication {
	jobs, err := f.jobs.Load(ctx, params)
	if err != nil {
		return nil
	}
	f.archiveJobs(jobs)
	return jobs
}

func (f *Facade) GetJob(ctx context.Context, jobID string) *models.JobApplication {
	job, err := f.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil
	}
	return job
}

// CreateJob consults the plan gate before any network call; a gate rejection
// comes back as an error the calling form must show instead of navigating.
func (f *Facade) CreateJob(ctx context.Context, input huntoza.JobInput) (*models.JobApplication, error) {
	gate := f.gate()
	if !gate.CanCreateJobApplication(f.jobs.TotalItems()) {
		f.logger.Warn("job creation blocked by plan limit",
			zap.String("plan", gate.PlanName()),
			zap.Int("current_count", f.jobs.TotalItems()),
		)
		return nil, gate.JobLimitError()
	}
	return f.jobs.Create(ctx, input)
}

func (f *Facade) UpdateJob(ctx context.Context, jobID string, input huntoza.JobInput) (*models.JobApplication, error) {
	return f.jobs.Update(ctx, jobID, input)
}

func (f *Facade) DeleteJob(ctx context.Context, jobID string) bool {
	if f.jobs.Remove(ctx, jobID) != nil {
		return false
	}
	f.dropSnapshot(models.SnapshotEntityJob, jobID)
	return true
}

func (f *Facade) ToggleJobFavorite(ctx context.Context, jobID string) (*models.JobApplication, error) {
	return f.jobs.ToggleFavorite(ctx, jobID)
}

func (f *Facade) AddInterview(ctx context.Context, jobID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	return f.jobs.AddInterview(ctx, jobID, input)
}

func (f *Facade) UpdateInterview(ctx context.Context, jobID, interviewID string, input huntoza.InterviewInput) (*models.JobApplication, error) {
	return f.jobs.UpdateInterview(ctx, jobID, interviewID, input)
}

func (f *Facade) DeleteInterview(ctx context.Context, jobID, interviewID string) (*models.JobApplication, error) {
	return f.jobs.DeleteInterview(ctx, jobID, interviewID)
}

func (f *Facade) Jobs() []models.JobApplication {
	return f.jobs.Jobs()
}

func (f *Facade) JobsPagination() state.Pagination {
	return f.jobs.Pagination()
}

// ---- Tasks ----

func (f *Facade) LoadTasks(ctx context.Context, params huntoza.TaskListParams) []models.Task {
	tasks, err := f.tasks.Load(ctx, params)
	if err != nil {
		return nil
	}
	f.archiveTasks(tasks)
	return tasks
}

func (f *Facade) GetTask(ctx context.Context, taskID string) *models.Task {
	task, err := f.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil
	}
	return task
}

func (f *Facade) CreateTask(ctx context.Context, input huntoza.TaskInput) (*models.Task, error) {
	return f.tasks.Create(ctx, input)
}

func (f *Facade) UpdateTask(ctx context.Context, taskID string, input huntoza.TaskInput) (*models.Task, error) {
	return f.tasks.Update(ctx, taskID, input)
}

func (f *Facade) DeleteTask(ctx context.Context, taskID string) bool {
	if f.tasks.Remove(ctx, taskID) != nil {
		return false
	}
	f.dropSnapshot(models.SnapshotEntityTask, taskID)
	return true
}

func (f *Facade) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	return f.tasks.Complete(ctx, taskID)
}

func (f *Facade) Tasks() []models.Task {
	return f.tasks.Tasks()
}

func (f *Facade) TasksPagination() state.Pagination {
	return f.tasks.Pagination()
}

// ---- Contacts ----

func (f *Facade) LoadContacts(ctx context.Context, params huntoza.ContactListParams) []models.Contact {
	contacts, err := f.contacts.Load(ctx, params)
	if err != nil {
		return nil
	}
	f.archiveContacts(contacts)
	return contacts
}

func (f *Facade) GetContact(ctx context.Context, contactID string) *models.Contact {
	contact, err := f.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil
	}
	return contact
}

func (f *Facade) CreateContact(ctx context.Context, input huntoza.ContactInput) (*models.Contact, error) {
	gate := f.gate()
	if !gate.CanCreateContact(f.contacts.TotalItems()) {
		f.logger.Warn("contact creation blocked by plan limit",
			zap.String("plan", gate.PlanName()),
			zap.Int("current_count", f.contacts.TotalItems()),
		)
		return nil, gate.ContactLimitError()
	}
	return f.contacts.Create(ctx, input)
}

func (f *Facade) UpdateContact(ctx context.Context, contactID string, input huntoza.ContactInput) (*models.Contact, error) {
	return f.contacts.Update(ctx, contactID, input)
}

func (f *Facade) DeleteContact(ctx context.Context, contactID string) bool {
	if f.contacts.Remove(ctx, contactID) != nil {
		return false
	}
	f.dropSnapshot(models.SnapshotEntityContact, contactID)
	return true
}

func (f *Facade) ToggleContactFavorite(ctx context.Context, contactID string) (*models.Contact, error) {
	return f.contacts.ToggleFavorite(ctx, contactID)
}

// AddContactTag appends a custom tag, which is a paid-plan feature. Duplicate
// tags are suppressed without a round trip.
func (f *Facade) AddContactTag(ctx context.Context, contactID, tag string) (*models.Contact, error) {
	gate := f.gate()
	if !gate.CanCreateCustomTags() {
		return nil, gate.CustomTagsError()
	}

	contact := f.contacts.Current()
	if contact == nil || contact.ID != contactID {
		loaded, err := f.contacts.GetByID(ctx, contactID)
		if err != nil {
			return nil, err
		}
		contact = loaded
	}

	tags := models.AddTag(contact.Tags, tag)
	if len(tags) == len(contact.Tags) {
		return contact, nil
	}

	return f.contacts.Update(ctx, contactID, huntoza.ContactInput{Tags: tags})
}

func (f *Facade) AddInteraction(ctx context.Context, contactID string, input huntoza.InteractionInput) (*models.Contact, error) {
	return f.contacts.AddInteraction(ctx, contactID, input)
}

func (f *Facade) UpdateInteraction(ctx context.Context, contactID, interactionID string, input huntoza.InteractionInput) (*models.Contact, error) {
	return f.contacts.UpdateInteraction(ctx, contactID, interactionID, input)
}

func (f *Facade) DeleteInteraction(ctx context.Context, contactID, interactionID string) (*models.Contact, error) {
	return f.contacts.DeleteInteraction(ctx, contactID, interactionID)
}

func (f *Facade) Contacts() []models.Contact {
	return f.contacts.Contacts()
}

func (f *Facade) ContactsPagination() state.Pagination {
	return f.contacts.Pagination()
}

// ---- Plans & payments ----

func (f *Facade) LoadCurrentPlan(ctx context.Context) models.PlanState {
	state, _ := f.plans.Load(ctx)
	return state
}

func (f *Facade) LoadPlans(ctx context.Context) []models.Plan {
	plans, err := f.plans.LoadAll(ctx)
	if err != nil {
		return nil
	}
	return plans
}

func (f *Facade) CurrentPlan() models.PlanState {
	return f.plans.Current()
}

// SeedCurrentPlan installs a cached plan snapshot so the gate stops running
// on the free-plan default without a round trip.
func (f *Facade) SeedCurrentPlan(state models.PlanState) {
	f.plans.Seed(state)
}

func (f *Facade) UpgradePlan(ctx context.Context, planID, billingCycle string) (models.PlanState, error) {
	return f.plans.Upgrade(ctx, planID, billingCycle)
}

func (f *Facade) CancelSubscription(ctx context.Context) (models.PlanState, error) {
	return f.plans.Cancel(ctx)
}

func (f *Facade) CreateOrder(ctx context.Context, planID, billingCycle string) (*models.PaymentOrder, error) {
	return f.svc.CreateOrder(ctx, planID, billingCycle)
}

func (f *Facade) VerifyPayment(ctx context.Context, input huntoza.VerifyPaymentInput) (*models.Payment, error) {
	return f.svc.VerifyPayment(ctx, input)
}

func (f *Facade) PaymentHistory(ctx context.Context) []models.Payment {
	payments, err := f.svc.PaymentHistory(ctx)
	if err != nil {
		f.logger.Error("failed to load payment history", zap.Error(err))
		return nil
	}
	return payments
}

// ---- Analytics ----

func (f *Facade) CanAccessAnalytics() bool {
	return f.gate().CanAccessAnalytics()
}

func (f *Facade) AnalyticsError() error {
	return f.gate().AnalyticsError()
}

func (f *Facade) CanUploadDocument(currentBytes, addedBytes int64) bool {
	return f.gate().CanUploadDocument(currentBytes, addedBytes)
}

func (f *Facade) LoadDashboard(ctx context.Context) *models.DashboardStats {
	stats, err := f.stats.Load(ctx)
	if err != nil {
		return nil
	}
	return stats
}

func (f *Facade) DashboardStats() *models.DashboardStats {
	return f.stats.Stats()
}

// ---- Snapshots ----

func (f *Facade) archiveJobs(jobs []models.JobApplication) {
	if f.archiver == nil || len(jobs) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := f.archiver.SaveJobSnapshots(ctx, jobs); err != nil {
			f.logger.Error("failed to archive jobs", zap.Error(err))
		}
	}()
}

func (f *Facade) archiveTasks(tasks []models.Task) {
	if f.archiver == nil || len(tasks) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := f.archiver.SaveTaskSnapshots(ctx, tasks); err != nil {
			f.logger.Error("failed to archive tasks", zap.Error(err))
		}
	}()
}

func (f *Facade) archiveContacts(contacts []models.Contact) {
	if f.archiver == nil || len(contacts) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := f.archiver.SaveContactSnapshots(ctx, contacts); err != nil {
			f.logger.Error("failed to archive contacts", zap.Error(err))
		}
	}()
}

func (f *Facade) dropSnapshot(entity, entityID string) {
	if f.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := f.archiver.DeleteSnapshot(ctx, entity, entityID); err != nil {
			f.logger.Error("failed to drop snapshot",
				zap.String("entity", entity),
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}()
}

// LocalCounts reports the per-entity snapshot counts, the offline stand-in
// for the dashboard when the server cannot be reached.
func (f *Facade) LocalCounts(ctx context.Context) map[string]int {
	if f.archiver == nil {
		return nil
	}
	counts, err := f.archiver.SnapshotCounts(ctx)
	if err != nil {
		f.logger.Error("failed to count local snapshots", zap.Error(err))
		return nil
	}
	return counts
}
