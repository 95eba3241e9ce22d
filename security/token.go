package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
)

var ErrTokenInvalid = errors.New("token invalid")

// Identity is the caller resolved from a verified session token.
type Identity struct {
	ID   string     `json:"id"`
	Role model.Role `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}

// IdentityClaims is the payload minted by Issue.
type IdentityClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer signs with HS256. A ttl of zero mints tokens without exp.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required but was empty")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (ti *TokenIssuer) Issue(userID string, role model.Role) (string, error) {
	now := ti.now()
	claims := IdentityClaims{
		ID:   userID,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ti.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ti.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (ti *TokenIssuer) parseJwt(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(ti.now))
}

// Verify checks signature and expiry and returns the normalized identity.
func (ti *TokenIssuer) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrTokenInvalid
	}

	token, err := ti.parseJwt(tokenStr)
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}

	identity, ok := NormalizeIdentity(claims)
	if !ok {
		return Identity{}, fmt.Errorf("%w: no subject id", ErrTokenInvalid)
	}
	return identity, nil
}

// NormalizeIdentity folds the historical subject fields into one id,
// with precedence id > _id > userId.
func NormalizeIdentity(claims map[string]interface{}) (Identity, bool) {
	var identity Identity
	for _, key := range []string{"id", "_id", "userId"} {
		if id := claimString(claims[key]); id != "" {
			identity.ID = id
			break
		}
	}
	if identity.ID == "" {
		return Identity{}, false
	}
	identity.Role = model.Role(claimString(claims["role"]))
	return identity, true
}

func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}
