package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
)

const identityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (security.Identity, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authentication checks for a valid Bearer token and attaches the caller's identity.
func Authentication(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			common.WriteError(c, core.ErrNotAuthorized, false)
			return
		}

		identity, err := verifier.Verify(tokenStr)
		if err != nil {
			common.WriteError(c, core.ErrTokenFailed, false)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity attached by Authentication.
func GetIdentity(c *gin.Context) (security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return security.Identity{}, false
	}
	identity, ok := v.(security.Identity)
	return identity, ok
}

// AdminOnly must run after Authentication.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.IsAdmin() {
			common.WriteError(c, core.ErrAdminOnly, false)
			return
		}
		c.Next()
	}
}
