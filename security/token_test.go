package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
)

const testSecret = "test-secret-test-secret-test-secret"

func signMap(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)

	token, err := issuer.Issue("user-1", model.RoleEmployee)
	require.NoError(t, err)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, model.RoleEmployee, identity.Role)
	assert.False(t, identity.IsAdmin())
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", 0)
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not-a-token"},
		{"wrong secret", signMap(t, jwt.MapClaims{"id": "u1", "role": "Admin"}, "other-secret")},
		{"no subject", signMap(t, jwt.MapClaims{"role": "Admin"}, testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	token, err := issuer.Issue("user-1", model.RoleAdmin)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		name     string
		claims   map[string]interface{}
		expected string
	}{
		{"id only", map[string]interface{}{"id": "a"}, "a"},
		{"_id only", map[string]interface{}{"_id": "b"}, "b"},
		{"userId only", map[string]interface{}{"userId": "c"}, "c"},
		{"id wins over _id", map[string]interface{}{"id": "a", "_id": "b", "userId": "c"}, "a"},
		{"_id wins over userId", map[string]interface{}{"_id": "b", "userId": "c"}, "b"},
		{"empty id falls through", map[string]interface{}{"id": "", "userId": "c"}, "c"},
		{"numeric id", map[string]interface{}{"userId": float64(42)}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, ok := NormalizeIdentity(tt.claims)
			require.True(t, ok)
			assert.Equal(t, tt.expected, identity.ID)
		})
	}

	_, ok := NormalizeIdentity(map[string]interface{}{"role": "Admin"})
	assert.False(t, ok)
}

func TestVerifyLegacySubjectFields(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)

	token := signMap(t, jwt.MapClaims{"_id": "legacy", "role": "admin"}, testSecret)
	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "legacy", identity.ID)
	assert.True(t, identity.IsAdmin())
}
