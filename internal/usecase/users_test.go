package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"
	"jotter/internal/database/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *repositories.MemoryUserRepository) {
	repo := repositories.NewMemoryUserRepository()
	return NewUserService(repo), repo
}

func requireAppErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, code, appErr.Code)
}

func strPtr(s string) *string { return &s }

func mustCreateUser(t *testing.T, svc *UserService, username, password string) *dto.UserResponse {
	t.Helper()
	user, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: username, Password: password})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "alice", "p1")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.DeletedAt)
	assert.False(t, user.UpdatedAt.Before(user.CreatedAt))

	// The stored password is a hash, never the plaintext.
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateUserRequest
	}{
		{"missing password", dto.CreateUserRequest{Username: "alice"}},
		{"missing username", dto.CreateUserRequest{Password: "p1"}},
		{"missing both", dto.CreateUserRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			requireAppErr(t, err, http.StatusBadRequest, "USER_CREATION_VALIDATION_ERROR")
		})
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	// Scenario A: second create with the same username conflicts.
	svc, _ := newUserService()
	ctx := context.Background()

	mustCreateUser(t, svc, "alice", "p1")
	_, err := svc.Create(ctx, dto.CreateUserRequest{Username: "alice", Password: "p2"})
	requireAppErr(t, err, http.StatusConflict, "USER_CREATION_CONFLICT")
}

func TestUsernameReservedAcrossDeletion(t *testing.T) {
	// P1: a soft-deleted user still claims its username.
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "alice", "p1")
	_, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateUserRequest{Username: "alice", Password: "p2"})
	requireAppErr(t, err, http.StatusConflict, "USER_CREATION_CONFLICT")
}

func TestDeleteUndeleteStrictToggles(t *testing.T) {
	// P2 plus scenarios B and C.
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "bob", "p1")

	username, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	_, err = svc.Delete(ctx, user.ID)
	requireAppErr(t, err, http.StatusConflict, "USER_DELETION_REDUNDANT")

	require.NoError(t, svc.Undelete(ctx, user.ID))

	fetched, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.DeletedAt)

	err = svc.Undelete(ctx, user.ID)
	requireAppErr(t, err, http.StatusConflict, "USER_UNDELETION_REDUNDANT")
}

func TestDeletedUserFetchableByID(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "bob", "p1")
	_, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DeletedAt)
	assert.False(t, fetched.UpdatedAt.Before(fetched.CreatedAt))
}

func TestUpdateBlockedOnDeleted(t *testing.T) {
	// P3: deleted entities are immutable except for undelete.
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "bob", "p1")
	_, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, user.ID, dto.UpdateUserRequest{Username: strPtr("robert")})
	requireAppErr(t, err, http.StatusConflict, "USER_UPDATE_DELETED")
}

func TestPartialUpdatePreservesUntouchedFields(t *testing.T) {
	// P4: only the supplied field and updatedAt change.
	svc, repo := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "bob", "p1")
	before, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(ctx, user.ID, dto.UpdateUserRequest{Username: strPtr("robert")})
	require.NoError(t, err)
	assert.Equal(t, "robert", updated.Username)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))

	after, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Password, after.Password)
}

func TestEmptyUpdateRejected(t *testing.T) {
	// P5 / scenario D.
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "bob", "p1")
	_, err := svc.Update(ctx, user.ID, dto.UpdateUserRequest{})
	requireAppErr(t, err, http.StatusBadRequest, "USER_UPDATE_VALIDATION_ERROR")
}

func TestUpdateUsernameConflict(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	mustCreateUser(t, svc, "alice", "p1")
	bob := mustCreateUser(t, svc, "bob", "p2")

	_, err := svc.Update(ctx, bob.ID, dto.UpdateUserRequest{Username: strPtr("alice")})
	requireAppErr(t, err, http.StatusConflict, "USER_UPDATE_CONFLICT")
}

func TestUpdateKeepingOwnUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	bob := mustCreateUser(t, svc, "bob", "p1")
	updated, err := svc.Update(ctx, bob.ID, dto.UpdateUserRequest{
		Username: strPtr("bob"),
		Password: strPtr("p2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Update(context.Background(), 42, dto.UpdateUserRequest{Username: strPtr("x")})
	requireAppErr(t, err, http.StatusNotFound, "USER_NOT_FOUND")
}

func TestGetAllUsers(t *testing.T) {
	// Scenario E: zero active users is NOT_FOUND; all=true surfaces deleted
	// ones.
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.GetAll(ctx, false)
	requireAppErr(t, err, http.StatusNotFound, "USERS_NOT_FOUND")

	user := mustCreateUser(t, svc, "alice", "p1")
	_, err = svc.Delete(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.GetAll(ctx, false)
	requireAppErr(t, err, http.StatusNotFound, "USERS_NOT_FOUND")

	users, err := svc.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.NotNil(t, users[0].DeletedAt)
}

func TestUserInternalErrors(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	repo.FailWith = errors.New("connection refused")

	_, err := svc.GetAll(ctx, false)
	requireAppErr(t, err, http.StatusInternalServerError, "USERS_FETCH_INTERNAL_ERROR")

	_, err = svc.GetByID(ctx, 1)
	requireAppErr(t, err, http.StatusInternalServerError, "USER_FETCH_BY_ID_INTERNAL_ERROR")

	_, err = svc.Create(ctx, dto.CreateUserRequest{Username: "alice", Password: "p1"})
	requireAppErr(t, err, http.StatusInternalServerError, "USER_CREATION_INTERNAL_ERROR")
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user := mustCreateUser(t, svc, "alice", "p1")

	got, err := svc.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	requireAppErr(t, err, http.StatusUnauthorized, "AUTH_INVALID_CREDENTIALS")

	_, err = svc.Authenticate(ctx, "nobody", "p1")
	requireAppErr(t, err, http.StatusUnauthorized, "AUTH_INVALID_CREDENTIALS")

	_, err = svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "alice", "p1")
	requireAppErr(t, err, http.StatusUnauthorized, "AUTH_INVALID_CREDENTIALS")
}
