// Package tokens signs and validates the HS256 session tokens the dashboard
// issues after login. Tokens carry the caller's role; the role value is
// checked against the rbac package by the HTTP middleware, not here.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nyumbani/property-dashboard/rbac"
)

var (
	// ErrInvalidToken is returned when the token is malformed or its signature does not verify
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidIssuer is returned when the token issuer is not the configured issuer
	ErrInvalidIssuer = errors.New("invalid issuer")

	// ErrMissingSecret is returned when no signing key is configured
	ErrMissingSecret = errors.New("signing secret not configured")
)

// Claims represents the claims carried by a dashboard session token
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// ParsedClaims represents validated claims
type ParsedClaims struct {
	Sub       string
	Email     string
	Name      string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Config holds the shared signing settings
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Validator validates signed session tokens
type Validator struct {
	secret []byte
	issuer string
}

// NewValidator creates a new token validator
func NewValidator(cfg Config) (*Validator, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &Validator{secret: cfg.Secret, issuer: cfg.Issuer}, nil
}

// ValidateToken validates a token string and returns its claims
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*ParsedClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidIssuer, v.issuer, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	parsed := &ParsedClaims{
		Sub:     claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}
	return parsed, nil
}

// Issuer signs session tokens
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates a token issuer
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &Issuer{secret: cfg.Secret, issuer: cfg.Issuer, ttl: cfg.TTL, now: time.Now}, nil
}

// Issue signs a token for subject with the given role.
// Roles outside the rbac role set are refused.
func (i *Issuer) Issue(subject, email, name string, role rbac.Role) (string, error) {
	if !role.Valid() {
		return "", rbac.ErrInvalidRole
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
		Name:  name,
		Role:  string(role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
