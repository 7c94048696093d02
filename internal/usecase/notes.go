package usecase

import (
	"context"
	"errors"
	"time"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"
	"jotter/internal/database/models"
	"jotter/internal/database/repositories"
)

type NoteService struct {
	notes repositories.NoteRepository
	users repositories.UserRepository
}

func NewNoteService(notes repositories.NoteRepository, users repositories.UserRepository) *NoteService {
	return &NoteService{notes: notes, users: users}
}

// GetAll returns note projections. Unlike users, an empty note list is a
// valid success.
func (s *NoteService) GetAll(ctx context.Context, includeDeleted bool) ([]dto.NoteResponse, error) {
	notes, err := s.notes.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, apperr.Internal("NOTES_FETCH_INTERNAL_ERROR", "Failed to fetch notes")
	}
	return dto.NewNoteResponses(notes), nil
}

// GetAllByUser returns the notes authored by the given user. The author must
// exist (deleted authors still count; their notes stay listable).
func (s *NoteService) GetAllByUser(ctx context.Context, userID uint, includeDeleted bool) ([]dto.NoteResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, apperr.Internal("NOTES_FETCH_INTERNAL_ERROR", "Failed to fetch notes")
	}
	notes, err := s.notes.GetAllByUser(ctx, userID, includeDeleted)
	if err != nil {
		return nil, apperr.Internal("NOTES_FETCH_INTERNAL_ERROR", "Failed to fetch notes")
	}
	return dto.NewNoteResponses(notes), nil
}

func (s *NoteService) GetByID(ctx context.Context, id uint) (*dto.NoteResponse, error) {
	note, err := s.notes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("NOTE_NOT_FOUND", "Note not found")
	}
	if err != nil {
		return nil, apperr.Internal("NOTE_FETCH_BY_ID_INTERNAL_ERROR", "Failed to fetch note by ID")
	}
	return dto.NewNoteResponse(note), nil
}

// Create persists a new active note. The author must be an existing active
// user; a store-level foreign key violation maps to the same failure in case
// the author disappears between check and write.
func (s *NoteService) Create(ctx context.Context, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == "" || req.Content == "" || req.UserID == 0 {
		return nil, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", "Title, content and userId are required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", err.Error())
	}

	author, err := s.users.GetByID(ctx, req.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", "Note author must be an existing user")
	}
	if err != nil {
		return nil, apperr.Internal("NOTE_CREATION_INTERNAL_ERROR", "Failed to create note")
	}
	if author.DeletedAt.Valid {
		return nil, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", "Note author must be an active user")
	}

	note := &models.Note{Title: req.Title, Content: req.Content, UserID: req.UserID}
	if err := s.notes.Create(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, apperr.Validation("NOTE_CREATION_VALIDATION_ERROR", "Note author must be an existing user")
		}
		return nil, apperr.Internal("NOTE_CREATION_INTERNAL_ERROR", "Failed to create note")
	}
	note.Author = &models.User{ID: author.ID, Username: author.Username}
	return dto.NewNoteResponse(note), nil
}

// Update applies a partial update to an active note.
func (s *NoteService) Update(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := s.notes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("NOTE_NOT_FOUND", "Note not found")
	}
	if err != nil {
		return nil, apperr.Internal("NOTE_UPDATE_INTERNAL_ERROR", "Failed to update note")
	}

	if note.DeletedAt.Valid {
		return nil, apperr.Conflict("NOTE_UPDATE_DELETED", "Cannot update deleted note")
	}
	if req.Empty() {
		return nil, apperr.Validation("NOTE_UPDATE_VALIDATION_ERROR", "At least one field (title or content) must be provided for update")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperr.Validation("NOTE_UPDATE_VALIDATION_ERROR", err.Error())
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}

	if err := s.notes.Update(ctx, id, fields); err != nil {
		return nil, apperr.Internal("NOTE_UPDATE_INTERNAL_ERROR", "Failed to update note")
	}

	updated, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("NOTE_UPDATE_INTERNAL_ERROR", "Failed to update note")
	}
	return dto.NewNoteResponse(updated), nil
}

func (s *NoteService) Delete(ctx context.Context, id uint) error {
	note, err := s.notes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("NOTE_NOT_FOUND", "Note not found")
	}
	if err != nil {
		return apperr.Internal("NOTE_DELETION_INTERNAL_ERROR", "Failed to delete note")
	}
	if note.DeletedAt.Valid {
		return apperr.Conflict("NOTE_DELETION_REDUNDANT", "Note already deleted")
	}

	fields := map[string]interface{}{"deleted_at": time.Now()}
	if err := s.notes.Update(ctx, id, fields); err != nil {
		return apperr.Internal("NOTE_DELETION_INTERNAL_ERROR", "Failed to delete note")
	}
	return nil
}

func (s *NoteService) Undelete(ctx context.Context, id uint) error {
	note, err := s.notes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("NOTE_NOT_FOUND", "Note not found")
	}
	if err != nil {
		return apperr.Internal("NOTE_UNDELETION_INTERNAL_ERROR", "Failed to undelete note")
	}
	if !note.DeletedAt.Valid {
		return apperr.Conflict("NOTE_UNDELETION_REDUNDANT", "Note already not deleted")
	}

	fields := map[string]interface{}{"deleted_at": nil}
	if err := s.notes.Update(ctx, id, fields); err != nil {
		return apperr.Internal("NOTE_UNDELETION_INTERNAL_ERROR", "Failed to undelete note")
	}
	return nil
}
