// utils/auth.go
package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"travelapp-backend/policy"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers malformed, expired and wrongly typed tokens.
var ErrInvalidToken = errors.New("token is invalid or expired")

// Hash password
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken digests a token id for storage.
func HashToken(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID    uint   `json:"user_id"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token with its id and expiry.
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{Secret: []byte(secret), AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

func (m *TokenManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *TokenManager) IssueAccess(userID uint, isStaff bool) (IssuedToken, error) {
	return m.issue(userID, isStaff, TokenTypeAccess, m.AccessTTL)
}

func (m *TokenManager) IssueRefresh(userID uint, isStaff bool) (IssuedToken, error) {
	return m.issue(userID, isStaff, TokenTypeRefresh, m.RefreshTTL)
}

func (m *TokenManager) issue(userID uint, isStaff bool, tokenType string, ttl time.Duration) (IssuedToken, error) {
	if len(m.Secret) == 0 {
		return IssuedToken{}, errors.New("JWT_SECRET not set")
	}
	now := m.now()
	id := uuid.NewString()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID:    userID,
		IsStaff:   isStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return IssuedToken{Token: signed, ID: id, ExpiresAt: expiresAt}, nil
}

// Parse verifies signature, expiry and token type.
func (m *TokenManager) Parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IdentityResolver turns an access token into a caller.
type IdentityResolver interface {
	Resolve(ctx context.Context, accessToken string) (policy.Caller, error)
}

const callerKey = "caller"

type callerContextKey struct{}

// WithCaller stores the caller on a context for transport-agnostic code.
func WithCaller(ctx context.Context, caller policy.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the anonymous caller when none was stored.
func CallerFromContext(ctx context.Context) policy.Caller {
	caller, _ := ctx.Value(callerContextKey{}).(policy.Caller)
	return caller
}

// CurrentCaller returns the caller identified by AuthMiddleware.
func CurrentCaller(c *gin.Context) policy.Caller {
	if value, exists := c.Get(callerKey); exists {
		if caller, ok := value.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Anonymous
}

// Auth middleware. Requests without an Authorization header continue as the
// anonymous caller; a header that does not carry a valid access token is
// rejected with 401.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(callerKey, policy.Anonymous)
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid Authorization header")
			c.Abort()
			return
		}

		caller, err := resolver.Resolve(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Given token not valid for any token type")
			c.Abort()
			return
		}

		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}
