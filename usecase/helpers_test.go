package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"tenantnotes/model"
	"tenantnotes/repository"
	"tenantnotes/services"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []services.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event services.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	subjects := make([]string, len(p.events))
	for i, e := range p.events {
		subjects[i] = e.Subject
	}
	return subjects
}

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

var errBrokerDown = errors.New("broker down")

type testEnv struct {
	store     *repository.Store
	notes     *NotesService
	tenants   *TenantService
	publisher *recordingPublisher

	acmeAdmin, acmeUser, globexAdmin, globexUser *model.Identity
}

func newTestEnv(t testingT) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := repository.NewStore()
	require.NoError(t, repository.SeedDefaults(ctx, store, "seeded-hash"))

	pub := &recordingPublisher{}
	env := &testEnv{
		store:     store,
		notes:     NewNotesService(repository.GetNotesRepo(store), pub),
		tenants:   NewTenantService(repository.GetTenantsRepo(store), pub),
		publisher: pub,
	}
	env.acmeAdmin = identityFor(t, store, "admin@acme.test")
	env.acmeUser = identityFor(t, store, "user@acme.test")
	env.globexAdmin = identityFor(t, store, "admin@globex.test")
	env.globexUser = identityFor(t, store, "user@globex.test")
	return env
}

func identityFor(t testingT, store *repository.Store, email string) *model.Identity {
	t.Helper()
	user, tenant, err := repository.GetUsersRepo(store).FindUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return &model.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
		TenantPlan: tenant.Plan,
	}
}

func (env *testEnv) count(t testingT, identity *model.Identity) int {
	t.Helper()
	notes, err := env.notes.ListNotes(context.Background(), identity)
	require.NoError(t, err)
	return len(notes)
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
}
