package model

// Identity is the set of claims carried by a verified session token. It
// reflects the user, tenant and plan as of token issuance.
type Identity struct {
	UserID     int64  `json:"userId"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	TenantID   int64  `json:"tenantId"`
	TenantSlug string `json:"tenantSlug"`
	TenantPlan Plan   `json:"tenantPlan"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
