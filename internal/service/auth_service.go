package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/blacklist"
	"github.com/tenantkit/backend/pkg/hash"
	"github.com/tenantkit/backend/pkg/jwt"
)

// AuthService owns credential verification, token lifecycle and the
// token-to-user resolution used by the authentication middleware. It is the
// only component that turns a bearer token into a user: routes never decode
// tokens themselves.
type AuthService struct {
	userRepo       repository.UserRepository
	tokenService   *jwt.TokenService
	tokenBlacklist *blacklist.TokenBlacklist
	logger         *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenService *jwt.TokenService,
	tokenBlacklist *blacklist.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		logger:         logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Tokens *domain.TokenPair `json:"tokens"`
	User   *domain.User      `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	valid, err := hash.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.tokenService.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is advisory.
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &LoginResponse{Tokens: tokens, User: user}, nil
}

// Refresh validates a refresh token, rotates the pair and revokes the token
// that was just used. Any failure is reported as ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenService.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.tokenBlacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("refresh lookup failed: %w", err)
	}

	tokens, err := s.tokenService.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if claims.ExpiresAt != nil {
		if err := s.tokenBlacklist.Revoke(ctx, refreshToken, claims.ExpiresAt.Time); err != nil {
			s.logger.Warn("failed to revoke rotated refresh token", zap.Error(err))
		}
	}

	return tokens, nil
}

// Logout revokes both tokens for their remaining lifetimes. Tokens that fail
// validation are simply skipped: logout never errors on already-dead tokens.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.tokenService.ValidateAccess(accessToken); err == nil && claims.ExpiresAt != nil {
		if err := s.tokenBlacklist.Revoke(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}

	if refreshToken != "" {
		if claims, err := s.tokenService.ValidateRefresh(refreshToken); err == nil && claims.ExpiresAt != nil {
			if err := s.tokenBlacklist.Revoke(ctx, refreshToken, claims.ExpiresAt.Time); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
	}

	return nil
}

// Authenticate is the single strict resolution path: validate the access
// token, consult the revocation list, then load the user. UserNotFound maps
// to 401 at the boundary; a deleted user's token must not leak whether the
// account ever existed.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenService.ValidateAccess(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.tokenBlacklist.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

// AuthenticateOptional is the lenient variant for endpoints that serve both
// anonymous and authenticated callers: it layers on Authenticate and returns
// nil instead of failing.
func (s *AuthService) AuthenticateOptional(ctx context.Context, accessToken string) *domain.User {
	if accessToken == "" {
		return nil
	}
	user, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return nil
	}
	return user
}
