package dto

import (
	"time"

	"jotter/internal/database/models"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"omitempty,max=64"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

// UpdateUserRequest is a typed partial update: a nil field is passed through
// unchanged, a present field overrides.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,max=64"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Password == nil
}

// UserResponse is the projection returned to callers. The password hash is
// never part of it.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.DeletedAt.Valid {
		deletedAt := user.DeletedAt.Time
		resp.DeletedAt = &deletedAt
	}
	return resp
}

func NewUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *NewUserResponse(&users[i]))
	}
	return responses
}
