package dto

import (
	"time"

	"tenantnotes/model"
)

// NoteRequest is the body of note create and update requests.
type NoteRequest struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content" binding:"required,notblank"`
}

type NoteResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	UserID      int64     `json:"user_id"`
	TenantID    int64     `json:"tenant_id"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	author := note.AuthorEmail
	if author == "" {
		author = model.UnknownAuthor
	}
	return NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Content:     note.Content,
		UserID:      note.AuthorUserID,
		TenantID:    note.TenantID,
		AuthorEmail: author,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
