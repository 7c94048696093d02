package server

import (
	"fmt"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"

	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) getAllUsers(c *fiber.Ctx) error {
	includeDeleted := c.Query("all") == "true"

	users, err := s.users.GetAll(c.Context(), includeDeleted)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USERS_FETCH_SUCCESS",
		fmt.Sprintf("Fetched %d users successfully", len(users)), users)
}

func (s *FiberServer) getUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("USER_NOT_FOUND", "User not found"))
	}

	user, err := s.users.GetByID(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USER_FETCH_SUCCESS", "User fetched successfully", user)
}

func (s *FiberServer) getUserByUsername(c *fiber.Ctx) error {
	user, err := s.users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USER_FETCH_SUCCESS", "User fetched successfully", user)
}

func (s *FiberServer) createUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("USER_CREATION_VALIDATION_ERROR", "Invalid request body"))
	}

	user, err := s.users.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "USER_CREATION_SUCCESS",
		fmt.Sprintf("User %s created successfully", user.Username), user)
}

func (s *FiberServer) updateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("USER_NOT_FOUND", "User not found"))
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("USER_UPDATE_VALIDATION_ERROR", "Invalid request body"))
	}

	user, err := s.users.Update(c.Context(), uint(id), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USER_UPDATE_SUCCESS",
		fmt.Sprintf("User %s updated successfully", user.Username), user)
}

func (s *FiberServer) deleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("USER_NOT_FOUND", "User not found"))
	}

	username, err := s.users.Delete(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USER_DELETION_SUCCESS",
		fmt.Sprintf("User %s deleted successfully", username), nil)
}

func (s *FiberServer) undeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("USER_NOT_FOUND", "User not found"))
	}

	if err := s.users.Undelete(c.Context(), uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "USER_UNDELETION_SUCCESS", "User undeleted successfully", nil)
}
