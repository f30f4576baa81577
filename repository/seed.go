package repository

import (
	"context"
	"fmt"

	"tenantnotes/model"
)

type seedUser struct {
	email string
	role  model.Role
}

type seedTenant struct {
	slug  string
	name  string
	users []seedUser
}

var defaultTenants = []seedTenant{
	{
		slug: "acme",
		name: "Acme Corporation",
		users: []seedUser{
			{email: "admin@acme.test", role: model.RoleAdmin},
			{email: "user@acme.test", role: model.RoleMember},
		},
	},
	{
		slug: "globex",
		name: "Globex Corporation",
		users: []seedUser{
			{email: "admin@globex.test", role: model.RoleAdmin},
			{email: "user@globex.test", role: model.RoleMember},
		},
	},
}

// SeedDefaults creates the acme and globex tenants on the free plan, each
// with one admin and one member sharing passwordHash.
func SeedDefaults(ctx context.Context, store *Store, passwordHash string) error {
	tenants := GetTenantsRepo(store)
	users := GetUsersRepo(store)

	for _, st := range defaultTenants {
		tenant := &model.Tenant{Slug: st.slug, Name: st.name, Plan: model.PlanFree}
		if err := tenants.CreateTenant(ctx, tenant); err != nil {
			return fmt.Errorf("seed tenant %s: %w", st.slug, err)
		}
		for _, su := range st.users {
			user := &model.User{
				Email:        su.email,
				PasswordHash: passwordHash,
				Role:         su.role,
				TenantID:     tenant.ID,
			}
			if err := users.AddUser(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", su.email, err)
			}
		}
	}
	return nil
}
