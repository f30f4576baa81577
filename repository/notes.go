package repository

import (
	"context"
	"fmt"
	"sort"

	"tenantnotes/model"
	"tenantnotes/utils"
)

// AdmitFunc decides whether a tenant on plan, currently holding count
// notes, may store one more. It runs inside the store's exclusive section.
type AdmitFunc func(plan model.Plan, count int) error

// NotesRepo gives tenant-scoped access to notes. Every lookup matches on
// both the note id and the tenant id, so a note owned by another tenant is
// indistinguishable from a missing one.
type NotesRepo struct {
	store *Store
}

func GetNotesRepo(store *Store) *NotesRepo {
	return &NotesRepo{store: store}
}

// CreateNote stores note for its tenant. The tenant's note count and
// current plan are read, admit is consulted and the note is inserted
// without releasing the lock, so concurrent creates cannot overshoot a
// quota. The note id counter only advances on a successful insert.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note, admit AdmitFunc) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ok := s.tenantByIDLocked(note.TenantID)
	if !ok {
		return nil, fmt.Errorf("%w: tenant %d does not exist", model.ErrValidation, note.TenantID)
	}
	ui, ok := s.userByIDLocked(note.AuthorUserID)
	if !ok || s.users[ui].TenantID != note.TenantID {
		return nil, fmt.Errorf("%w: author %d is not a member of tenant %d", model.ErrValidation, note.AuthorUserID, note.TenantID)
	}

	if admit != nil {
		if err := admit(s.tenants[ti].Plan, s.countNotesLocked(note.TenantID)); err != nil {
			return nil, err
		}
	}

	now := s.now()
	stored := model.Note{
		ID:           s.nextNoteID,
		Title:        note.Title,
		Content:      note.Content,
		AuthorUserID: note.AuthorUserID,
		TenantID:     note.TenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextNoteID++
	s.notes = append(s.notes, stored)

	return s.withAuthorLocked(stored), nil
}

// GetTenantNotes returns every note of the tenant, newest first.
func (r *NotesRepo) GetTenantNotes(ctx context.Context, tenantID int64) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*model.Note, 0)
	for i := range s.notes {
		if s.notes[i].TenantID == tenantID {
			notes = append(notes, s.withAuthorLocked(s.notes[i]))
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID > notes[j].ID
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (r *NotesRepo) GetNote(ctx context.Context, noteID, tenantID int64) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.noteLocked(noteID, tenantID)
	if !ok {
		return nil, fmt.Errorf("note %w", model.ErrNotFound)
	}
	return s.withAuthorLocked(s.notes[i]), nil
}

// UpdateNote replaces the title and content of a tenant's note.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID, tenantID int64, title, content string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.noteLocked(noteID, tenantID)
	if !ok {
		return nil, fmt.Errorf("note %w", model.ErrNotFound)
	}
	s.notes[i].Title = title
	s.notes[i].Content = content
	s.notes[i].UpdatedAt = s.now()

	return s.withAuthorLocked(s.notes[i]), nil
}

func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, tenantID int64) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.noteLocked(noteID, tenantID)
	if !ok {
		return fmt.Errorf("note %w", model.ErrNotFound)
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return nil
}

// CountTenantNotes counts the notes of the tenant
func (r *NotesRepo) CountTenantNotes(ctx context.Context, tenantID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countNotesLocked(tenantID), nil
}
