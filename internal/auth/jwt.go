package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a verified credential says about its bearer. Role is a
// snapshot taken when the token was issued and is not re-read from storage,
// so a role change only takes effect on the next login.
type Identity struct {
	UserID    string
	Role      types.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i Identity) IsReviewer() bool {
	return i.Role == types.RoleReviewer
}

// Claims is the credential payload: {sub, role} plus iat/exp.
type Claims struct {
	Role types.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 credentials with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue binds exactly the user id and current role into a new token.
func (t *Tokens) Issue(userID string, role types.Role) (string, error) {
	now := t.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a bearer token and returns the identity it carries.
func (t *Tokens) Resolve(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errs.Unauthenticated("Missing token")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return Identity{}, errs.Unauthenticated("Invalid or expired token")
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return Identity{}, errs.Unauthenticated("Invalid token claims")
	}

	identity := Identity{
		UserID:    claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}

	return identity, nil
}
