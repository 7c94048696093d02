package server

import (
	"fmt"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"

	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	includeDeleted := c.Query("all") == "true"

	notes, err := s.notes.GetAll(c.Context(), includeDeleted)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTES_FETCH_SUCCESS",
		fmt.Sprintf("Fetched %d notes successfully", len(notes)), notes)
}

func (s *FiberServer) getNotesByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return respondError(c, apperr.NotFound("USER_NOT_FOUND", "User not found"))
	}
	includeDeleted := c.Query("all") == "true"

	notes, err := s.notes.GetAllByUser(c.Context(), uint(userID), includeDeleted)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTES_FETCH_SUCCESS",
		fmt.Sprintf("Fetched %d notes successfully", len(notes)), notes)
}

func (s *FiberServer) getNoteByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("NOTE_NOT_FOUND", "Note not found"))
	}

	note, err := s.notes.GetByID(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTE_FETCH_SUCCESS", "Note fetched successfully", note)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", "Invalid request body"))
	}

	note, err := s.notes.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "NOTE_CREATION_SUCCESS", "Note created successfully", note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("NOTE_NOT_FOUND", "Note not found"))
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("NOTE_UPDATE_VALIDATION_ERROR", "Invalid request body"))
	}

	note, err := s.notes.Update(c.Context(), uint(id), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTE_UPDATE_SUCCESS", "Note updated successfully", note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("NOTE_NOT_FOUND", "Note not found"))
	}

	if err := s.notes.Delete(c.Context(), uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTE_DELETION_SUCCESS", "Note deleted successfully", nil)
}

func (s *FiberServer) undeleteNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, apperr.NotFound("NOTE_NOT_FOUND", "Note not found"))
	}

	if err := s.notes.Undelete(c.Context(), uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "NOTE_UNDELETION_SUCCESS", "Note undeleted successfully", nil)
}
