package services

import (
	"context"
	"fmt"
	"strings"

	"tenantnotes/model"
)

const bearerPrefix = "Bearer "

// ExtractCredential returns the token of a "Bearer <token>" header value.
// Any other scheme, or an empty token, counts as no credential.
func ExtractCredential(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// Gate turns a credential into an identity and enforces roles.
type Gate struct {
	Tokens  *TokenService
	Revoked TokenRevoker
}

func NewGate(tokens *TokenService, revoked TokenRevoker) *Gate {
	return &Gate{Tokens: tokens, Revoked: revoked}
}

// RequireAuthenticated fails with model.ErrUnauthenticated when no
// credential was presented and model.ErrInvalidCredential when it does not
// verify or has been revoked.
func (g *Gate) RequireAuthenticated(ctx context.Context, token string, present bool) (*model.Identity, error) {
	if !present || token == "" {
		return nil, model.ErrUnauthenticated
	}

	identity, err := g.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if g.Revoked != nil {
		revoked, err := g.Revoked.IsRevoked(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", model.ErrInvalidCredential)
		}
	}
	return identity, nil
}

// RequireRole fails with model.ErrForbidden when role is admin and the
// identity is not. Every authenticated identity satisfies member.
func RequireRole(identity *model.Identity, role model.Role) error {
	if role == model.RoleAdmin && identity.Role != model.RoleAdmin {
		return fmt.Errorf("%w: admin access required", model.ErrForbidden)
	}
	return nil
}
