package repository

import (
	"context"
	"fmt"
	"strings"

	"tenantnotes/model"
	"tenantnotes/utils"
)

type TenantsRepo struct {
	store *Store
}

func GetTenantsRepo(store *Store) *TenantsRepo {
	return &TenantsRepo{store: store}
}

// CreateTenant inserts a tenant and fills in its id and creation time.
func (r *TenantsRepo) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	timer := utils.TrackDBOperation("insert", "tenants")
	defer timer.ObserveDuration()

	tenant.Slug = strings.TrimSpace(tenant.Slug)
	if !model.ValidSlug(tenant.Slug) {
		return fmt.Errorf("%w: invalid tenant slug %q", model.ErrValidation, tenant.Slug)
	}
	if strings.TrimSpace(tenant.Name) == "" {
		return fmt.Errorf("%w: tenant name is required", model.ErrValidation)
	}
	if tenant.Plan == "" {
		tenant.Plan = model.PlanFree
	}
	if !tenant.Plan.Valid() {
		return fmt.Errorf("%w: unknown plan %q", model.ErrValidation, tenant.Plan)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenantBySlugLocked(tenant.Slug); exists {
		return fmt.Errorf("tenant %q %w", tenant.Slug, model.ErrConflict)
	}

	tenant.ID = s.nextTenantID
	tenant.CreatedAt = s.now()
	s.nextTenantID++
	s.tenants = append(s.tenants, *tenant)
	return nil
}

func (r *TenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	timer := utils.TrackDBOperation("find", "tenants")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.tenantBySlugLocked(slug)
	if !ok {
		return nil, fmt.Errorf("tenant %w", model.ErrNotFound)
	}
	tenant := s.tenants[i]
	return &tenant, nil
}

func (r *TenantsRepo) GetTenantByID(ctx context.Context, id int64) (*model.Tenant, error) {
	timer := utils.TrackDBOperation("find", "tenants")
	defer timer.ObserveDuration()

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.tenantByIDLocked(id)
	if !ok {
		return nil, fmt.Errorf("tenant %w", model.ErrNotFound)
	}
	tenant := s.tenants[i]
	return &tenant, nil
}

// UpdateTenantPlan sets the plan of the tenant with the given slug. Setting
// the plan it already has is a successful no-op.
func (r *TenantsRepo) UpdateTenantPlan(ctx context.Context, slug string, plan model.Plan) (*model.Tenant, error) {
	timer := utils.TrackDBOperation("update", "tenants")
	defer timer.ObserveDuration()

	if !plan.Valid() {
		return nil, fmt.Errorf("%w: unknown plan %q", model.ErrValidation, plan)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.tenantBySlugLocked(slug)
	if !ok {
		return nil, fmt.Errorf("tenant %w", model.ErrNotFound)
	}
	s.tenants[i].Plan = plan
	tenant := s.tenants[i]
	return &tenant, nil
}
