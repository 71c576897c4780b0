// Package service provides JWT session token issuance and verification
package service

import (
	"fmt"
	"time"

	"github.com/bookwise/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT token generation and validation. The signing
// secret is injected at construction and never read from ambient state.
type TokenGenerator struct {
	secret string
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string) *TokenGenerator {
	return &TokenGenerator{
		secret: secret,
	}
}

// GenerateToken creates a session token carrying the user ID and role.
//
// Tokens carry an issued-at claim but no expiry: sessions stay valid until
// the signing secret rotates. Existing clients depend on that behavior.
func (tg *TokenGenerator) GenerateToken(userID int, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": string(role),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies the token signature and returns the user ID and
// role it carries. Any malformed, tampered or wrong-algorithm token yields
// models.ErrInvalidToken.
func (tg *TokenGenerator) ValidateToken(tokenString string) (int, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}

	if !token.Valid {
		return 0, "", models.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", models.ErrInvalidToken
	}

	// Extract userID (JWT claims decode numbers as float64)
	userIDFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("%w: id claim missing", models.ErrInvalidToken)
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return 0, "", fmt.Errorf("%w: role claim missing", models.ErrInvalidToken)
	}

	role := models.Role(roleStr)
	if !role.Valid() {
		return 0, "", fmt.Errorf("%w: unknown role %q", models.ErrInvalidToken, roleStr)
	}

	return int(userIDFloat), role, nil
}
