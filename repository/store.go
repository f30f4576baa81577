package repository

import (
	"sync"
	"time"

	"tenantnotes/model"
)

// Store is the process-local record store shared by the repos. Records are
// kept in insertion-ordered slices and found by linear scan. A single
// RWMutex guards everything: reads share it, mutations hold it exclusively,
// which is what makes NotesRepo.Create's quota check atomic.
type Store struct {
	mu sync.RWMutex

	tenants []model.Tenant
	users   []model.User
	notes   []model.Note

	nextTenantID int64
	nextUserID   int64
	nextNoteID   int64

	now func() time.Time
}

type StoreOption func(*Store)

// WithClock replaces time.Now, letting tests control timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nextTenantID: 1,
		nextUserID:   1,
		nextNoteID:   1,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextNoteID returns the id the next inserted note will receive.
func (s *Store) NextNoteID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextNoteID
}

// The helpers below expect the caller to hold s.mu.

func (s *Store) tenantByIDLocked(id int64) (int, bool) {
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) tenantBySlugLocked(slug string) (int, bool) {
	for i := range s.tenants {
		if s.tenants[i].Slug == slug {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) userByIDLocked(id int64) (int, bool) {
	for i := range s.users {
		if s.users[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) noteLocked(id, tenantID int64) (int, bool) {
	for i := range s.notes {
		if s.notes[i].ID == id && s.notes[i].TenantID == tenantID {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) countNotesLocked(tenantID int64) int {
	count := 0
	for i := range s.notes {
		if s.notes[i].TenantID == tenantID {
			count++
		}
	}
	return count
}

// withAuthorLocked returns a copy of the note annotated with its author's email.
func (s *Store) withAuthorLocked(n model.Note) *model.Note {
	n.AuthorEmail = model.UnknownAuthor
	if i, ok := s.userByIDLocked(n.AuthorUserID); ok {
		n.AuthorEmail = s.users[i].Email
	}
	return &n
}
