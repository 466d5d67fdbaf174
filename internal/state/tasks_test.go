package state

import (
	"context"
	"errors"
	"testing"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTaskService struct {
	page       *huntoza.TaskPage
	task       *models.Task
	err        error
	lastParams huntoza.TaskListParams
}

func (f *fakeTaskService) ListTasks(ctx context.Context, params huntoza.TaskListParams) (*huntoza.TaskPage, error) {
	f.lastParams = params
	return f.page, f.err
}

func (f *fakeTaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) CreateTask(ctx context.Context, input huntoza.TaskInput) (*models.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, taskID string, input huntoza.TaskInput) (*models.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, taskID string) error {
	return f.err
}

func (f *fakeTaskService) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	return f.task, f.err
}

func task(id string, status models.TaskStatus) models.Task {
	return models.Task{ID: id, Title: "Follow up", Status: status, Priority: models.PriorityMedium}
}

func loadedTasksSlice(t *testing.T, svc *fakeTaskService, tasks ...models.Task) *TasksSlice {
	t.Helper()

	svc.page = &huntoza.TaskPage{
		Tasks:       tasks,
		CurrentPage: 1,
		TotalPages:  1,
		TotalItems:  len(tasks),
	}

	s := NewTasksSlice(svc, zap.NewNop())
	_, err := s.Load(context.Background(), huntoza.TaskListParams{})
	require.NoError(t, err)
	return s
}

func TestTasksCompleteReplacesInPlace(t *testing.T) {
	svc := &fakeTaskService{}
	s := loadedTasksSlice(t, svc,
		task("a", models.TaskStatusPending),
		task("b", models.TaskStatusPending),
	)

	done := task("a", models.TaskStatusCompleted)
	svc.task = &done

	got, err := s.Complete(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, models.TaskStatusCompleted, tasks[0].Status)
	assert.Equal(t, models.TaskStatusPending, tasks[1].Status)
	assert.Equal(t, 2, s.Pagination().TotalItems, "completion is an update, not a removal")
}

func TestTasksCreatePrependsAndRemoveFloors(t *testing.T) {
	svc := &fakeTaskService{}
	s := loadedTasksSlice(t, svc, task("a", models.TaskStatusPending))

	created := task("new", models.TaskStatusPending)
	svc.task = &created

	_, err := s.Create(context.Background(), huntoza.TaskInput{Title: "Follow up"})
	require.NoError(t, err)
	assert.Equal(t, "new", s.Tasks()[0].ID)
	assert.Equal(t, 2, s.Pagination().TotalItems)

	require.NoError(t, s.Remove(context.Background(), "new"))
	require.NoError(t, s.Remove(context.Background(), "a"))
	require.NoError(t, s.Remove(context.Background(), "a"))
	assert.Equal(t, 0, s.Pagination().TotalItems)
}

func TestTasksRejectKeepsList(t *testing.T) {
	svc := &fakeTaskService{}
	s := loadedTasksSlice(t, svc, task("a", models.TaskStatusPending))

	svc.err = errors.New("boom")
	_, err := s.Complete(context.Background(), "a")
	require.Error(t, err)

	assert.Equal(t, "boom", s.Err())
	assert.Len(t, s.Tasks(), 1)
	assert.False(t, s.Loading())

	s.ClearError()
	assert.Empty(t, s.Err())
}

func TestTasksParamSanitizing(t *testing.T) {
	svc := &fakeTaskService{}
	s := NewTasksSlice(svc, zap.NewNop())
	svc.page = &huntoza.TaskPage{}

	_, err := s.Load(context.Background(), huntoza.TaskListParams{
		Status:   "all",
		Category: "chores",
		Priority: "urgent",
		Sort:     "latest",
	})
	require.NoError(t, err)

	assert.Empty(t, svc.lastParams.Status)
	assert.Empty(t, svc.lastParams.Category)
	assert.Empty(t, svc.lastParams.Priority)
	assert.Equal(t, "latest", svc.lastParams.Sort)
}
