package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
)

const secret = "test-secret"

func newRouter(t *testing.T) (*gin.Engine, *security.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := security.NewTokenIssuer(secret, 0)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID())
	authed := r.Group("/", Authentication(issuer))
	authed.GET("/me", func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})
	authed.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, issuer
}

func do(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestAuthentication(t *testing.T) {
	r, issuer := newRouter(t)
	employeeToken, err := issuer.Issue("u1", model.RoleEmployee)
	require.NoError(t, err)

	legacy := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "u9", "role": "Employee"})
	legacyToken, err := legacy.SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		status        int
		message       string
		id            string
	}{
		{"no header", "", http.StatusUnauthorized, "Not authorized", ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "Not authorized", ""},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "Token failed", ""},
		{"valid token", "Bearer " + employeeToken, http.StatusOK, "", "u1"},
		{"lowercase scheme", "bearer " + employeeToken, http.StatusOK, "", "u1"},
		{"legacy subject field", "Bearer " + legacyToken, http.StatusOK, "", "u9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.authorization)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.message, message(t, w))
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.id, body["id"])
		})
	}
}

func TestAdminOnly(t *testing.T) {
	r, issuer := newRouter(t)
	employeeToken, err := issuer.Issue("u1", model.RoleEmployee)
	require.NoError(t, err)
	adminToken, err := issuer.Issue("a1", model.RoleAdmin)
	require.NoError(t, err)

	lower := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "a2", "role": "admin"})
	lowerToken, err := lower.SignedString([]byte(secret))
	require.NoError(t, err)

	w := do(r, "/admin", "Bearer "+employeeToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin only", message(t, w))

	assert.Equal(t, http.StatusOK, do(r, "/admin", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", "Bearer "+lowerToken).Code)

	w = do(r, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, "/me", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
