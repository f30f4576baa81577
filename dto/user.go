package dto

import (
	"tenantnotes/model"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TenantResponse struct {
	ID   int64      `json:"id"`
	Slug string     `json:"slug"`
	Name string     `json:"name,omitempty"`
	Plan model.Plan `json:"plan"`
}

type UserResponse struct {
	ID     int64          `json:"id"`
	Email  string         `json:"email"`
	Role   model.Role     `json:"role"`
	Tenant TenantResponse `json:"tenant"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToTenantResponse(tenant *model.Tenant) TenantResponse {
	return TenantResponse{
		ID:   tenant.ID,
		Slug: tenant.Slug,
		Name: tenant.Name,
		Plan: tenant.Plan,
	}
}

func ToUserResponse(user *model.User, tenant *model.Tenant) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Tenant: ToTenantResponse(tenant),
	}
}
