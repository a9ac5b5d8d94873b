package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusBacklog, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted} {
		assert.True(t, ValidStatus(status), string(status))
	}
	for _, status := range []TaskStatus{"", "DONE", "backlog", "completed"} {
		assert.False(t, ValidStatus(status), string(status))
	}
}

func TestTaskUpdate_Empty(t *testing.T) {
	assert.True(t, TaskUpdate{}.Empty())

	title := "x"
	assert.False(t, TaskUpdate{Title: &title}.Empty())

	minutes := 0
	assert.False(t, TaskUpdate{TotalMinutes: &minutes}.Empty())
}
