package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	task, err := tasks.Create(ctx, owner, "Write docs", "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusBacklog, task.Status)
	assert.Equal(t, owner.ID, task.UserID)
	assert.Zero(t, task.TotalMinutes)
}

func TestTaskService_Create_Validation(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	_, err := tasks.Create(ctx, owner, "", "", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = tasks.Create(ctx, owner, "   ", "", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = tasks.Create(ctx, owner, "Write docs", "", "DONE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice@example.com")
	bob := registerUser(t, users, "bob@example.com")

	task, err := tasks.Create(ctx, alice, "Fix bug", "", "")
	require.NoError(t, err)

	// another user's task must be indistinguishable from a missing one
	_, err = tasks.Get(ctx, bob, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	title := "hijacked"
	_, err = tasks.Update(ctx, bob, task.ID, domain.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = tasks.SetStatus(ctx, bob, task.ID, domain.TaskStatusReview)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = tasks.Delete(ctx, bob, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// the owner still sees the task untouched
	got, err := tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix bug", got.Title)
	assert.Equal(t, domain.TaskStatusBacklog, got.Status)
}

func TestTaskService_List_NewestFirstPerOwner(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice@example.com")
	bob := registerUser(t, users, "bob@example.com")

	first, err := tasks.Create(ctx, alice, "first", "", "")
	require.NoError(t, err)
	second, err := tasks.Create(ctx, alice, "second", "", "")
	require.NoError(t, err)
	_, err = tasks.Create(ctx, bob, "bob task", "", "")
	require.NoError(t, err)

	list, err := tasks.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestTaskService_Update_Partial(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	task, err := tasks.Create(ctx, owner, "Write docs", "initial", "")
	require.NoError(t, err)

	minutes := 90
	updated, err := tasks.Update(ctx, owner, task.ID, domain.TaskUpdate{TotalMinutes: &minutes})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.TotalMinutes)
	assert.Equal(t, "Write docs", updated.Title)
	assert.Equal(t, "initial", updated.Description)
}

func TestTaskService_Update_Validation(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	task, err := tasks.Create(ctx, owner, "Write docs", "", "")
	require.NoError(t, err)

	_, err = tasks.Update(ctx, owner, task.ID, domain.TaskUpdate{})
	assert.ErrorIs(t, err, ErrNoUpdateFields)

	bad := domain.TaskStatus("DONE")
	_, err = tasks.Update(ctx, owner, task.ID, domain.TaskUpdate{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	negative := -5
	_, err = tasks.Update(ctx, owner, task.ID, domain.TaskUpdate{TotalMinutes: &negative})
	assert.ErrorIs(t, err, ErrNegativeMinutes)

	empty := " "
	_, err = tasks.Update(ctx, owner, task.ID, domain.TaskUpdate{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)

	// failed validation must not have mutated the task
	got, err := tasks.Get(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write docs", got.Title)
	assert.Equal(t, domain.TaskStatusBacklog, got.Status)
	assert.Zero(t, got.TotalMinutes)
}

func TestTaskService_SetStatus(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	task, err := tasks.Create(ctx, owner, "Write docs", "", "")
	require.NoError(t, err)

	updated, err := tasks.SetStatus(ctx, owner, task.ID, domain.TaskStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

	_, err = tasks.SetStatus(ctx, owner, task.ID, domain.TaskStatus("DONE"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err := tasks.Get(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
}

func TestTaskService_Delete_RepeatIsNotFound(t *testing.T) {
	users, tasks := newTestServices(t)
	ctx := context.Background()
	owner := registerUser(t, users, "alice@example.com")

	task, err := tasks.Create(ctx, owner, "Write docs", "", "")
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, owner, task.ID))
	assert.ErrorIs(t, tasks.Delete(ctx, owner, task.ID), ErrTaskNotFound)
}
