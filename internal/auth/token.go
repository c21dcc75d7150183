package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/healthhive/internal/domain"
)

// TokenManager issues and validates the JWT access/refresh token pair.
type TokenManager struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager for the named HMAC algorithm.
// Unknown algorithm names are rejected so a typo in configuration cannot
// silently downgrade signing.
func NewTokenManager(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	method, ok := hmacMethod(algorithm)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func hmacMethod(name string) (*jwt.SigningMethodHMAC, bool) {
	switch name {
	case "", "HS256":
		return jwt.SigningMethodHS256, true
	case "HS384":
		return jwt.SigningMethodHS384, true
	case "HS512":
		return jwt.SigningMethodHS512, true
	default:
		return nil, false
	}
}

// Claims describes the JWT payload: subject is the user's email, ID the
// numeric user id and Kind the token type ("access" or "refresh").
type Claims struct {
	UserID int64            `json:"id"`
	Kind   domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Generate builds and signs a token of the given kind for the user.
func (tm *TokenManager) Generate(email string, userID int64, kind domain.TokenKind) (string, time.Time, error) {
	ttl := tm.accessTTL
	if kind == domain.TokenKindRefresh {
		ttl = tm.refreshTTL
	}
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// GeneratePair issues the access and refresh tokens returned by the
// registration and login flows.
func (tm *TokenManager) GeneratePair(email string, userID int64) (*domain.TokenPair, error) {
	access, _, err := tm.Generate(email, userID, domain.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := tm.Generate(email, userID, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Parse validates signature and expiry and returns the claims. Expired and
// malformed tokens are reported with the same error shape; callers surface a
// generic invalid/expired message either way.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != tm.method {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ParseKind is Parse plus enforcement of the "type" claim.
func (tm *TokenManager) ParseKind(tokenStr string, kind domain.TokenKind) (*Claims, error) {
	claims, err := tm.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("expected %s token, got %s", kind, claims.Kind)
	}
	return claims, nil
}
