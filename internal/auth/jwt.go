package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Claims is the validated identity carried by an access token.
type Claims struct {
	UserID         uuid.UUID
	Role           domain.Role
	OrganizationID *uuid.UUID
}

// Actor converts the claims into the actor used by services.
func (c Claims) Actor() domain.Actor {
	return domain.Actor{UserID: c.UserID, Role: c.Role, OrganizationID: c.OrganizationID}
}

// JWTManager handles JWT access token generation and validation.
// Tokens are minted by operators (see `geofence-api token`), never by end users.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// clockSkew tolerates drift between the operator machine that minted the
// token and the API host.
const clockSkew = 30 * time.Second

// accessClaims extends standard JWT claims with the user's role and organization.
type accessClaims struct {
	jwt.RegisteredClaims
	Role         string `json:"role"`
	Organization string `json:"org,omitempty"`
}

// GenerateAccessToken creates a signed HS256 JWT with user ID as subject and
// role / organization as custom claims.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role domain.Role, orgID *uuid.UUID) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("generate token: %w", domain.ErrValidation)
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role.String(),
	}
	if orgID != nil {
		claims.Organization = orgID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and validates a JWT access token. Only HS256
// tokens from this issuer with an expiry are accepted; an unknown role fails.
func (m *JWTManager) ValidateAccessToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, errors.New("token is empty")
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid role claim: %w", err)
	}

	out := Claims{UserID: userID, Role: role}
	if claims.Organization != "" {
		orgID, err := uuid.Parse(claims.Organization)
		if err != nil {
			return Claims{}, fmt.Errorf("invalid org claim: %w", err)
		}
		out.OrganizationID = &orgID
	}

	return out, nil
}
