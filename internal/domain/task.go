package domain

import "time"

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ValidStatus reports whether value is one of the four persisted statuses.
func ValidStatus(value TaskStatus) bool {
	switch value {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work exclusively owned by one user for its entire
// lifetime. UserID is set at creation and never changes.
type Task struct {
	ID           int64
	Title        string
	Description  string
	Status       TaskStatus
	TotalMinutes int
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	TotalMinutes *int
}

// Empty reports whether no field is present in the update.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.TotalMinutes == nil
}
