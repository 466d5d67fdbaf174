package state

import (
	"context"
	"sync"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type TaskService interface {
	ListTasks(ctx context.Context, params huntoza.TaskListParams) (*huntoza.TaskPage, error)
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	CreateTask(ctx context.Context, input huntoza.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, input huntoza.TaskInput) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	CompleteTask(ctx context.Context, taskID string) (*models.Task, error)
}

type TasksSlice struct {
	mu     sync.RWMutex
	svc    TaskService
	logger *zap.Logger

	tasks      []models.Task
	current    *models.Task
	loading    bool
	err        string
	pagination Pagination
}

func NewTasksSlice(svc TaskService, logger *zap.Logger) *TasksSlice {
	return &TasksSlice{svc: svc, logger: logger}
}

func (s *TasksSlice) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *TasksSlice) reject(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = errMessage(err)
	s.mu.Unlock()
}

func (s *TasksSlice) Load(ctx context.Context, params huntoza.TaskListParams) ([]models.Task, error) {
	s.begin()

	page, err := s.svc.ListTasks(ctx, sanitizeTaskParams(params))
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.tasks = page.Tasks
	s.pagination = Pagination{
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
	}
	s.mu.Unlock()

	return page.Tasks, nil
}

func (s *TasksSlice) Create(ctx context.Context, input huntoza.TaskInput) (*models.Task, error) {
	s.begin()

	task, err := s.svc.CreateTask(ctx, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.tasks = append([]models.Task{*task}, s.tasks...)
	s.pagination.TotalItems++
	s.mu.Unlock()

	return task, nil
}

func (s *TasksSlice) Update(ctx context.Context, taskID string, input huntoza.TaskInput) (*models.Task, error) {
	s.begin()

	task, err := s.svc.UpdateTask(ctx, taskID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*task)
	return task, nil
}

func (s *TasksSlice) Remove(ctx context.Context, taskID string) error {
	s.begin()

	if err := s.svc.DeleteTask(ctx, taskID); err != nil {
		s.reject(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != taskID {
			kept = append(kept, task)
		}
	}
	s.tasks = kept
	if s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	if s.current != nil && s.current.ID == taskID {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

func (s *TasksSlice) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	s.begin()

	task, err := s.svc.GetTask(ctx, taskID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	current := *task
	s.current = &current
	s.mu.Unlock()

	return task, nil
}

// Complete is the status-only transition: the resulting list entry differs
// from its pre-call value in status alone.
func (s *TasksSlice) Complete(ctx context.Context, taskID string) (*models.Task, error) {
	s.begin()

	task, err := s.svc.CompleteTask(ctx, taskID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*task)
	return task, nil
}

func (s *TasksSlice) replace(task models.Task) {
	s.mu.Lock()
	s.loading = false
	found := false
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			found = true
			break
		}
	}
	if s.current != nil && s.current.ID == task.ID {
		current := task
		s.current = &current
	}
	s.mu.Unlock()

	if !found {
		s.logger.Debug("updated task not in local list", zap.String("task_id", task.ID))
	}
}

func (s *TasksSlice) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

func (s *TasksSlice) Current() *models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

func (s *TasksSlice) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *TasksSlice) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *TasksSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *TasksSlice) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}
