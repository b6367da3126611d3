package utils

import (
	"errors"
	"os"
	"time"

	"propcare/config"
	"propcare/models"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingRole  = errors.New("token does not carry a known role")
)

// The secret comes from config, then the environment. Tokens cannot be
// verified without one.
func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}
	return []byte(secret), nil
}

// GenerateToken signs a token for the principal. Impersonation is never part
// of a token; it lives in the admin's session.
func GenerateToken(p models.Principal, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub":  p.UserID,
		"role": string(p.Role),
		"org":  p.OrgID,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// PrincipalFromToken validates the token and extracts the caller.
func PrincipalFromToken(tokenString string) (models.Principal, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Principal{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Principal{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	org, _ := claims["org"].(string)

	p := models.Principal{UserID: sub, Role: models.Role(role), OrgID: org}
	switch p.Role {
	case models.RolePlatformSuperAdmin, models.RoleOrgAdmin, models.RoleContractor, models.RoleTenant:
		return p, nil
	}
	return models.Principal{}, ErrMissingRole
}
