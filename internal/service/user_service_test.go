package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	user, err := users.Register(ctx, "alice@example.com", "secret1", false)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.Empty(t, user.PasswordHash, "registered user must come back sanitized")
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice@example.com", "secret1", false)
	require.NoError(t, err)

	_, err = users.Register(ctx, "alice@example.com", "different", false)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserService_Register_MissingFields(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	_, err := users.Register(ctx, "", "secret1", false)
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = users.Register(ctx, "alice@example.com", "", false)
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestUserService_Authenticate(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()
	registerUser(t, users, "alice@example.com")

	user, err := users.Authenticate(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestUserService_Authenticate_SameErrorForBothFailures(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()
	registerUser(t, users, "alice@example.com")

	_, wrongPassword := users.Authenticate(ctx, "alice@example.com", "wrong")
	_, unknownEmail := users.Authenticate(ctx, "nobody@example.com", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserService_ResolveIdentity_OmitsHash(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()
	registered := registerUser(t, users, "alice@example.com")

	identity, err := users.ResolveIdentity(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.ID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Empty(t, identity.PasswordHash)
}
