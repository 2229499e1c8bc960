package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/utils"
)

var errInvalidCredentials = apperrors.AccessDenied(false, "No active account found with the given credentials")

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

// TokenPair is an access token with the refresh token that renews it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService is the identity provider: it registers users, exchanges
// credentials for tokens and resolves access tokens into callers.
type AuthService struct {
	users      *repository.UserRepository
	tokens     *repository.RefreshTokenRepository
	manager    *utils.TokenManager
	bcryptCost int
	logger     *slog.Logger
	clock      clock
}

func NewAuthService(users *repository.UserRepository, tokens *repository.RefreshTokenRepository, manager *utils.TokenManager, bcryptCost int, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		manager:    manager,
		bcryptCost: bcryptCost,
		logger:     resolveLogger(logger).With("module", "auth", "layer", "service"),
	}
}

// Register creates a user through self-service sign-up and signs them in.
func (s *AuthService) Register(ctx context.Context, caller policy.Caller, in RegisterInput) (*models.User, TokenPair, error) {
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityRegistration, nil); err != nil {
		return nil, TokenPair{}, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, TokenPair{}, apperrors.Validation("username", "This field is required.")
	}
	if in.Password == "" {
		return nil, TokenPair{}, apperrors.Validation("password", "This field is required.")
	}
	if in.Password != in.Password2 {
		return nil, TokenPair{}, apperrors.Validation("password", "Passwords must match.")
	}
	taken, err := s.users.UsernameTaken(ctx, username, 0)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if taken {
		return nil, TokenPair{}, apperrors.Validation("username", "A user with that username already exists.")
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(in.Email),
		Password: hash,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.logger.Info("user registered", "event", "auth.register", "user_id", user.ID)
	return user, pair, nil
}

// Login exchanges a username and password for a token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenPair{}, errInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("load user %q: %w", username, err)
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.Password) {
		s.logger.Warn("login failed", "event", "auth.login_failed", "user_id", user.ID)
		return TokenPair{}, errInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}
	now := s.clock.now().UTC()
	user.LastLogin = &now
	if err := s.users.TouchLastLogin(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", "event", "auth.last_login", "user_id", user.ID, "error", err)
	}
	s.logger.Info("user logged in", "event", "auth.login", "user_id", user.ID)
	return pair, nil
}

// Refresh issues a new access token for a stored, unexpired refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.manager.Parse(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", apperrors.AccessDenied(false, "Token is invalid or expired")
	}
	if _, err := s.tokens.FindValid(ctx, utils.HashToken(claims.ID), s.clock.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.AccessDenied(false, "Token is invalid or expired")
		}
		return "", fmt.Errorf("look up refresh token: %w", err)
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if apperrors.IsNotFound(err) || (err == nil && !user.IsActive) {
		return "", errInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	access, err := s.manager.IssueAccess(user.ID, user.IsStaff)
	if err != nil {
		return "", err
	}
	return access.Token, nil
}

// Logout revokes a refresh token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.manager.Parse(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return apperrors.AccessDenied(false, "Token is invalid or expired")
	}
	revoked, err := s.tokens.DeleteByHash(ctx, utils.HashToken(claims.ID))
	if err != nil {
		return err
	}
	s.logger.Info("refresh token revoked", "event", "auth.logout", "user_id", claims.UserID, "revoked", revoked)
	return nil
}

// Resolve turns an access token into the caller it identifies. The staff flag
// is read from storage so demotions apply to tokens already issued.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (policy.Caller, error) {
	claims, err := s.manager.Parse(accessToken, utils.TokenTypeAccess)
	if err != nil {
		return policy.Anonymous, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return policy.Anonymous, err
	}
	if !user.IsActive {
		return policy.Anonymous, utils.ErrInvalidToken
	}
	return policy.User(user.ID, user.IsStaff), nil
}

// PurgeExpiredTokens drops refresh tokens past their expiry.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	purged, err := s.tokens.PurgeExpired(ctx, s.clock.now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("expired refresh tokens purged", "event", "auth.purge", "count", purged)
	}
	return purged, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (TokenPair, error) {
	access, err := s.manager.IssueAccess(user.ID, user.IsStaff)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.manager.IssueRefresh(user.ID, user.IsStaff)
	if err != nil {
		return TokenPair{}, err
	}
	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(refresh.ID),
		ExpiresAt: refresh.ExpiresAt,
	}
	if err := s.tokens.Create(ctx, stored); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access.Token, Refresh: refresh.Token}, nil
}
