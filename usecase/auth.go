package usecase

import (
	"context"
	"errors"
	"fmt"

	"tenantnotes/model"
	"tenantnotes/repository"
	"tenantnotes/services"
	"tenantnotes/utils"

	"go.uber.org/zap"
)

// ErrInvalidLogin is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidLogin = fmt.Errorf("%w: invalid credentials", model.ErrUnauthenticated)

type AuthService struct {
	UsersRepo *repository.UsersRepo
	Tokens    *services.TokenService
	Revoked   services.TokenRevoker

	// compared against when the email is unknown so both failures cost
	// one password verification
	dummyHash string
}

func NewAuthService(users *repository.UsersRepo, tokens *services.TokenService, revoked services.TokenRevoker) (*AuthService, error) {
	dummy, err := services.HashPassword("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare login: %w", err)
	}
	return &AuthService{UsersRepo: users, Tokens: tokens, Revoked: revoked, dummyHash: dummy}, nil
}

type LoginResult struct {
	Token  string
	User   *model.User
	Tenant *model.Tenant
}

// Login checks email and password and issues a token carrying the user's
// tenant and its current plan.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, tenant, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	stored := svc.dummyHash
	if user != nil {
		stored = user.PasswordHash
	}
	ok, verr := services.VerifyPassword(stored, password)
	if verr != nil {
		zap.L().Error("stored password hash is unreadable", zap.String("email", email), zap.Error(verr))
	}
	if user == nil || !ok {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidLogin
	}

	token, err := svc.Tokens.Issue(model.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
		TenantPlan: tenant.Plan,
	})
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	zap.L().Info("user logged in",
		zap.Int64("user_id", user.ID),
		zap.String("tenant", tenant.Slug),
	)
	return &LoginResult{Token: token, User: user, Tenant: tenant}, nil
}

// Logout revokes token until it would have expired anyway.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := svc.Tokens.Parse(token)
	if err != nil {
		return err
	}
	if svc.Revoked == nil {
		return nil
	}
	if err := svc.Revoked.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	utils.TrackAuthAttempt("success", "logout")
	return nil
}

// Me returns the caller and their tenant as currently stored, which may
// carry a newer plan than the token.
func (svc *AuthService) Me(ctx context.Context, identity *model.Identity) (*model.User, *model.Tenant, error) {
	user, tenant, err := svc.UsersRepo.FindUser(ctx, identity.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: user no longer exists", model.ErrInvalidCredential)
	}
	if err != nil {
		return nil, nil, err
	}
	return user, tenant, nil
}
