package repository

import (
	"context"
	"fmt"
	"strings"

	"tenantnotes/model"
	"tenantnotes/utils"
)

type UsersRepo struct {
	store *Store
}

func GetUsersRepo(store *Store) *UsersRepo {
	return &UsersRepo{store: store}
}

// AddUser inserts a user. The email must be unused and the tenant must exist.
func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	user.Email = normalizeEmail(user.Email)
	if user.Email == "" || user.PasswordHash == "" {
		return fmt.Errorf("%w: email and password required", model.ErrValidation)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", model.ErrValidation, user.Role)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenantByIDLocked(user.TenantID); !ok {
		return fmt.Errorf("%w: tenant %d does not exist", model.ErrValidation, user.TenantID)
	}
	for i := range s.users {
		if s.users[i].Email == user.Email {
			return fmt.Errorf("user %q %w", user.Email, model.ErrConflict)
		}
	}

	user.ID = s.nextUserID
	user.CreatedAt = s.now()
	s.nextUserID++
	s.users = append(s.users, *user)
	return nil
}

// FindUserByEmail returns the user and their tenant.
func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, *model.Tenant, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	email = normalizeEmail(email)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return s.userWithTenantLocked(i)
		}
	}
	return nil, nil, fmt.Errorf("user %w", model.ErrNotFound)
}

func (r *UsersRepo) FindUser(ctx context.Context, id int64) (*model.User, *model.Tenant, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.userByIDLocked(id)
	if !ok {
		return nil, nil, fmt.Errorf("user %w", model.ErrNotFound)
	}
	return s.userWithTenantLocked(i)
}

func (s *Store) userWithTenantLocked(i int) (*model.User, *model.Tenant, error) {
	user := s.users[i]
	ti, ok := s.tenantByIDLocked(user.TenantID)
	if !ok {
		return nil, nil, fmt.Errorf("tenant of user %d %w", user.ID, model.ErrNotFound)
	}
	tenant := s.tenants[ti]
	return &user, &tenant, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
