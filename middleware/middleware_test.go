package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tenantnotes/model"
	"tenantnotes/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestAuthMiddleware(t *testing.T) {
	tokens, err := services.NewTokenService("test_secret_key")
	require.NoError(t, err)
	revoked := services.NewMemoryTokenBlacklist(time.Now)
	gate := services.NewGate(tokens, revoked)

	member := model.Identity{
		UserID: 2, Email: "user@acme.test", Role: model.RoleMember,
		TenantID: 1, TenantSlug: "acme", TenantPlan: model.PlanFree,
	}
	admin := member
	admin.UserID, admin.Email, admin.Role = 1, "admin@acme.test", model.RoleAdmin

	memberToken, err := tokens.Issue(member)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(gate))
	r.GET("/whoami", func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email, "token": CurrentToken(c)})
	})
	r.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header http.Header
		status int
	}{
		{"no header", "/whoami", nil, http.StatusUnauthorized},
		{"empty bearer", "/whoami", http.Header{"Authorization": []string{"Bearer "}}, http.StatusUnauthorized},
		{"basic scheme", "/whoami", http.Header{"Authorization": []string{"Basic abc"}}, http.StatusUnauthorized},
		{"garbage token", "/whoami", bearer("garbage"), http.StatusUnauthorized},
		{"valid token", "/whoami", bearer(memberToken), http.StatusOK},
		{"member on admin route", "/admin", bearer(memberToken), http.StatusForbidden},
		{"admin on admin route", "/admin", bearer(adminToken), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, tt.path, tt.header)
			require.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("identity on context", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/whoami", bearer(memberToken))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "user@acme.test")
		require.Contains(t, w.Body.String(), memberToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		token, err := tokens.Issue(admin)
		require.NoError(t, err)
		require.NoError(t, revoked.Revoke(context.Background(), token, time.Now().Add(time.Hour)))

		w := perform(r, http.MethodGet, "/whoami", bearer(token))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, errorBody(t, w), "invalid or expired token")
	})
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := perform(r, http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateNoteID(t *testing.T) {
	r := gin.New()
	r.GET("/notes/:id", ValidateNoteID(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": NoteID(c)})
	})

	for _, path := range []string{"/notes/abc", "/notes/0", "/notes/-4", "/notes/1.5", "/notes/99999999999999999999"} {
		w := perform(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, "Invalid note ID", errorBody(t, w))
	}

	w := perform(r, http.MethodGet, "/notes/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":42}`, w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(60, 2)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	r := gin.New()
	r.POST("/auth/login", RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() int {
		return perform(r, http.MethodPost, "/auth/login", nil).Code
	}

	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	// one token per second refills
	clock = clock.Add(time.Second)
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	require.True(t, limiter.Allow("10.0.0.9"), "other clients have their own bucket")
}

func TestIPRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	require.True(t, limiter.Allow("10.0.0.1"))
	clock = clock.Add(limiter.idleTTL + time.Second)
	require.True(t, limiter.Allow("10.0.0.2"))
	require.Len(t, limiter.limiters, 1)
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("listed origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
		r.GET("/notes", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodGet, "/notes", http.Header{"Origin": []string{"http://localhost:3000"}})
		require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

		w = perform(r, http.MethodGet, "/notes", http.Header{"Origin": []string{"http://evil.test"}})
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"*"}))
		r.GET("/notes", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodGet, "/notes", http.Header{"Origin": []string{"http://any.test"}})
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

		w = perform(r, http.MethodOptions, "/notes", http.Header{"Origin": []string{"http://any.test"}})
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestEnhancedRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestTracingMiddleware(), EnhancedRecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal server error", errorBody(t, w))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestTracingMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestTracingMiddleware(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := perform(r, http.MethodGet, "/ping", nil)
	generated := w.Header().Get("X-Request-ID")
	require.Len(t, generated, 36)
	require.Equal(t, generated, w.Body.String())

	incoming := "3f2b8c1e-6a57-4d0b-9a55-0f6f1f3c2d11"
	w = perform(r, http.MethodGet, "/ping", http.Header{"X-Request-Id": []string{incoming}})
	require.Equal(t, incoming, w.Header().Get("X-Request-ID"))

	w = perform(r, http.MethodGet, "/ping", http.Header{"X-Request-Id": []string{"not a uuid"}})
	require.NotEqual(t, "not a uuid", w.Header().Get("X-Request-ID"))
}

func TestRequestSizeLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimiter(16), SecurityHeaders(), NoStoreMiddleware())
	r.POST("/notes", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":"far too long for the limit"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"t":"ok"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
