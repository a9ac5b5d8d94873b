package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, taskRepo.Init(ctx))

	return db
}

func newTestServices(t *testing.T) (UserService, TaskService) {
	t.Helper()

	db := openTestDB(t)
	users := NewUserService(sqlite.NewUserRepository(db), auth.NewPasswordHasher(bcrypt.MinCost))
	tasks := NewTaskService(sqlite.NewTaskRepository(db))
	return users, tasks
}

func registerUser(t *testing.T, users UserService, email string) *domain.User {
	t.Helper()

	user, err := users.Register(context.Background(), email, "secret1", false)
	require.NoError(t, err)
	return user
}
