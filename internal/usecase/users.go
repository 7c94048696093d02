// Package usecase holds the lifecycle policy applied to every resource kind:
// soft delete and undelete are strict toggles, deleted entities are immutable
// except for undelete, and a unique key stays claimed across deletion.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"
	"jotter/internal/database/models"
	"jotter/internal/database/repositories"
	"jotter/internal/utils"
)

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetAll returns user projections, optionally including soft-deleted rows.
// Zero users is an error for this resource kind.
func (s *UserService) GetAll(ctx context.Context, includeDeleted bool) ([]dto.UserResponse, error) {
	users, err := s.users.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, apperr.Internal("USERS_FETCH_INTERNAL_ERROR", "Failed to fetch users")
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("USERS_NOT_FOUND", "No users found")
	}
	return dto.NewUserResponses(users), nil
}

// GetByID looks a user up by primary identity regardless of deletion state,
// so deleted users remain inspectable ahead of an undelete.
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, apperr.Internal("USER_FETCH_BY_ID_INTERNAL_ERROR", "Failed to fetch user by ID")
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, apperr.Internal("USER_FETCH_BY_USERNAME_INTERNAL_ERROR", "Failed to fetch user by username")
	}
	return dto.NewUserResponse(user), nil
}

// Create validates the payload, checks the username is unclaimed (by any
// row, deleted included) and persists a new active user. The pre-check only
// buys a friendly message; the unique index has the final word and its
// violation maps to the same conflict.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("USER_CREATION_VALIDATION_ERROR", "Username and password are required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperr.Validation("USER_CREATION_VALIDATION_ERROR", err.Error())
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.Conflict("USER_CREATION_CONFLICT", "Username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Internal("USER_CREATION_INTERNAL_ERROR", "Failed to create user")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("USER_CREATION_INTERNAL_ERROR", "Failed to create user")
	}

	user := &models.User{Username: req.Username, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("USER_CREATION_CONFLICT", "Username already exists")
		}
		return nil, apperr.Internal("USER_CREATION_INTERNAL_ERROR", "Failed to create user")
	}
	return dto.NewUserResponse(user), nil
}

// Update applies a partial update to an active user. Absent fields pass
// through unchanged; a username change re-runs the uniqueness check
// excluding the user's own id.
func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, apperr.Internal("USER_UPDATE_INTERNAL_ERROR", "Failed to update user")
	}

	if user.DeletedAt.Valid {
		return nil, apperr.Conflict("USER_UPDATE_DELETED", fmt.Sprintf("Cannot update deleted user %s", user.Username))
	}
	if req.Empty() {
		return nil, apperr.Validation("USER_UPDATE_VALIDATION_ERROR", "At least one field (username or password) must be provided for update")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperr.Validation("USER_UPDATE_VALIDATION_ERROR", err.Error())
	}

	fields := make(map[string]interface{})
	if req.Username != nil {
		if *req.Username != user.Username {
			existing, err := s.users.GetByUsername(ctx, *req.Username)
			if err == nil && existing.ID != user.ID {
				return nil, apperr.Conflict("USER_UPDATE_CONFLICT", fmt.Sprintf("Username %s already exists", *req.Username))
			}
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, apperr.Internal("USER_UPDATE_INTERNAL_ERROR", "Failed to update user")
			}
		}
		fields["username"] = *req.Username
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Internal("USER_UPDATE_INTERNAL_ERROR", "Failed to update user")
		}
		fields["password"] = hash
	}

	if err := s.users.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("USER_UPDATE_CONFLICT", fmt.Sprintf("Username %s already exists", *req.Username))
		}
		return nil, apperr.Internal("USER_UPDATE_INTERNAL_ERROR", "Failed to update user")
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("USER_UPDATE_INTERNAL_ERROR", "Failed to update user")
	}
	return dto.NewUserResponse(updated), nil
}

// Delete soft-deletes an active user. Deleting an already-deleted user is a
// conflict, not an idempotent success. Returns the username for the caller's
// message.
func (s *UserService) Delete(ctx context.Context, id uint) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return "", apperr.Internal("USER_DELETION_INTERNAL_ERROR", "Failed to delete user")
	}
	if user.DeletedAt.Valid {
		return "", apperr.Conflict("USER_DELETION_REDUNDANT", "User already deleted")
	}

	fields := map[string]interface{}{"deleted_at": time.Now()}
	if err := s.users.Update(ctx, id, fields); err != nil {
		return "", apperr.Internal("USER_DELETION_INTERNAL_ERROR", "Failed to delete user")
	}
	return user.Username, nil
}

// Undelete restores a soft-deleted user. Undeleting an active user is a
// conflict.
func (s *UserService) Undelete(ctx context.Context, id uint) error {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return apperr.Internal("USER_UNDELETION_INTERNAL_ERROR", "Failed to undelete user")
	}
	if !user.DeletedAt.Valid {
		return apperr.Conflict("USER_UNDELETION_REDUNDANT", "User already not deleted")
	}

	fields := map[string]interface{}{"deleted_at": nil}
	if err := s.users.Update(ctx, id, fields); err != nil {
		return apperr.Internal("USER_UNDELETION_INTERNAL_ERROR", "Failed to undelete user")
	}
	return nil
}

// Authenticate verifies credentials for the login endpoint. Soft-deleted
// users cannot authenticate.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	invalid := apperr.Unauthorized("AUTH_INVALID_CREDENTIALS", "Invalid username or password")

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, apperr.Internal("AUTH_LOGIN_INTERNAL_ERROR", "Failed to log in")
	}
	if user.DeletedAt.Valid || !utils.CheckPasswordHash(password, user.Password) {
		return nil, invalid
	}
	return dto.NewUserResponse(user), nil
}
