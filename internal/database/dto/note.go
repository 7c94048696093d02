package dto

import (
	"time"

	"jotter/internal/database/models"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"omitempty,max=200"`
	Content string `json:"content"`
	UserID  uint   `json:"userId"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

func (r UpdateNoteRequest) Empty() bool {
	return r.Title == nil && r.Content == nil
}

// NoteAuthor is the embedded author projection on note responses.
type NoteAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type NoteResponse struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"userId"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	DeletedAt *time.Time  `json:"deletedAt"`
	Author    *NoteAuthor `json:"author,omitempty"`
}

func NewNoteResponse(note *models.Note) *NoteResponse {
	resp := &NoteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if note.DeletedAt.Valid {
		deletedAt := note.DeletedAt.Time
		resp.DeletedAt = &deletedAt
	}
	if note.Author != nil {
		resp.Author = &NoteAuthor{ID: note.Author.ID, Username: note.Author.Username}
	}
	return resp
}

func NewNoteResponses(notes []models.Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, *NewNoteResponse(&notes[i]))
	}
	return responses
}
