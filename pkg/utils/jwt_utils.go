package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies JWT tokens. Override via JWT_SECRET.
var jwtSecretKey = []byte(func() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "default-jwt-secret"
}())

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// ErrWrongTokenType is returned when a token of one type is presented where
// the other is required (e.g. a refresh token on an authenticated route).
var ErrWrongTokenType = errors.New("wrong token type")

// Claims defines the JWT claims structure.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func signToken(userID int64, username, role, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rental-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return tokenString, nil
}

// GenerateAccessToken creates a new JWT access token for the given user.
func GenerateAccessToken(userID int64, username string, role string) (string, error) {
	return signToken(userID, username, role, TokenTypeAccess, AccessTokenTTL)
}

// GenerateRefreshToken creates a new JWT refresh token for the given user.
func GenerateRefreshToken(userID int64, username string, role string) (string, error) {
	return signToken(userID, username, role, TokenTypeRefresh, RefreshTokenTTL)
}

// ValidateToken parses and validates a JWT token string of the expected type.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, expectedType)
	}
	return claims, nil
}
