package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskCategory string

const (
	TaskCategoryApplication TaskCategory = "application"
	TaskCategoryNetworking  TaskCategory = "networking"
	TaskCategoryInterview   TaskCategory = "interview-prep"
	TaskCategoryFollowUp    TaskCategory = "follow-up"
	TaskCategoryOther       TaskCategory = "other"
)

type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    Priority     `json:"priority"`
	Category    TaskCategory `json:"category"`
	DueDate     time.Time    `json:"dueDate"`
	// Related references are nullable: an empty-string form value must be
	// normalized to nil before submission, never sent as an invalid id.
	RelatedJob     *string   `json:"relatedJob,omitempty"`
	RelatedContact *string   `json:"relatedContact,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NormalizeRef converts an empty form input into a nil reference.
func NormalizeRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func IsValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

func TaskCategories() []TaskCategory {
	return []TaskCategory{
		TaskCategoryApplication,
		TaskCategoryNetworking,
		TaskCategoryInterview,
		TaskCategoryFollowUp,
		TaskCategoryOther,
	}
}

func IsValidTaskCategory(s string) bool {
	for _, c := range TaskCategories() {
		if string(c) == s {
			return true
		}
	}
	return false
}
