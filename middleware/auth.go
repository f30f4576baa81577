package middleware

import (
	"tenantnotes/model"
	"tenantnotes/services"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

// AuthMiddleware verifies the bearer token and stores the caller's identity
// on the context. Requests without a valid token are rejected with 401.
func AuthMiddleware(gate *services.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := services.ExtractCredential(c.GetHeader("Authorization"))

		identity, err := gate.RequireAuthenticated(c.Request.Context(), token, present)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRole rejects callers without role with 403. It must run after
// AuthMiddleware.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			utils.RespondError(c, model.ErrUnauthenticated)
			return
		}
		if err := services.RequireRole(identity, role); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok && identity != nil
}

// CurrentToken returns the raw bearer token accepted by AuthMiddleware.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
