package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"tenantnotes/model"

	"github.com/stretchr/testify/require"
)

// steppingClock returns a time one second later on every call.
type steppingClock struct {
	mu   sync.Mutex
	next time.Time
}

func newSteppingClock() *steppingClock {
	return &steppingClock{next: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

type fixture struct {
	store   *Store
	tenants *TenantsRepo
	users   *UsersRepo
	notes   *NotesRepo

	acme, globex                    *model.Tenant
	acmeAdmin, acmeUser, globexUser *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := NewStore(WithClock(newSteppingClock().Now))
	require.NoError(t, SeedDefaults(ctx, store, "seeded-hash"))

	f := &fixture{
		store:   store,
		tenants: GetTenantsRepo(store),
		users:   GetUsersRepo(store),
		notes:   GetNotesRepo(store),
	}

	var err error
	f.acme, err = f.tenants.GetTenantBySlug(ctx, "acme")
	require.NoError(t, err)
	f.globex, err = f.tenants.GetTenantBySlug(ctx, "globex")
	require.NoError(t, err)
	f.acmeAdmin, _, err = f.users.FindUserByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	f.acmeUser, _, err = f.users.FindUserByEmail(ctx, "user@acme.test")
	require.NoError(t, err)
	f.globexUser, _, err = f.users.FindUserByEmail(ctx, "user@globex.test")
	require.NoError(t, err)
	return f
}

func (f *fixture) addNote(t *testing.T, author *model.User, title string) *model.Note {
	t.Helper()
	note, err := f.notes.CreateNote(context.Background(), &model.Note{
		Title:        title,
		Content:      title + " content",
		AuthorUserID: author.ID,
		TenantID:     author.TenantID,
	}, nil)
	require.NoError(t, err)
	return note
}
