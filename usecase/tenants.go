package usecase

import (
	"context"
	"fmt"
	"time"

	"tenantnotes/model"
	"tenantnotes/repository"
	"tenantnotes/services"
	"tenantnotes/utils"

	"go.uber.org/zap"
)

type TenantService struct {
	TenantsRepo *repository.TenantsRepo
	Publisher   services.EventPublisher
	Now         func() time.Time
}

func NewTenantService(repo *repository.TenantsRepo, publisher services.EventPublisher) *TenantService {
	if publisher == nil {
		publisher = services.NoopPublisher{}
	}
	return &TenantService{TenantsRepo: repo, Publisher: publisher, Now: time.Now}
}

// Upgrade moves the caller's own tenant to the pro plan. Only admins may
// upgrade, and only their own tenant; asking for any other slug is
// forbidden whether or not that tenant exists. Upgrading a pro tenant
// succeeds without change.
func (svc *TenantService) Upgrade(ctx context.Context, identity *model.Identity, slug string) (*model.Tenant, error) {
	if err := services.RequireRole(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	if slug != identity.TenantSlug {
		return nil, fmt.Errorf("%w: cannot upgrade other tenants", model.ErrForbidden)
	}

	tenant, err := svc.TenantsRepo.UpdateTenantPlan(ctx, slug, model.PlanPro)
	if err != nil {
		return nil, err
	}

	utils.TrackTenantUpgrade()
	zap.L().Info("tenant upgraded",
		zap.String("tenant", tenant.Slug),
		zap.Int64("tenant_id", tenant.ID),
		zap.Int64("user_id", identity.UserID),
	)
	publishEvent(ctx, svc.Publisher, svc.Now, services.Event{
		Subject:    services.SubjectTenantUpgraded,
		TenantID:   tenant.ID,
		ActorID:    identity.UserID,
		ResourceID: tenant.ID,
		Data:       map[string]string{"slug": tenant.Slug, "plan": string(tenant.Plan)},
	})
	return tenant, nil
}
