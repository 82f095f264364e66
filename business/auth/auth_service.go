package auth

import (
	"context"
	"errors"
	"fmt"
	redisrepo "plantnet/internal/repository/redis"
	"plantnet/pkg/logger"
	"plantnet/pkg/utils"
	"time"
)

// The rest of the system never issues or inspects tokens; it only consumes
// the email this service resolves for a request.

type authService struct {
	tokens *redisrepo.TokenRepository
	ttl    time.Duration
}

func NewAuthService(tokens *redisrepo.TokenRepository, ttl time.Duration) *authService {
	return &authService{
		tokens: tokens,
		ttl:    ttl,
	}
}

// IssueToken mints a session token for an email and registers it in Redis so
// logout can revoke it before expiry.
func (s *authService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}

	token, err := utils.GenerateJWT(email, s.ttl)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}

	now := time.Now()
	data := redisrepo.SessionData{
		Email:     email,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.tokens.StoreToken(ctx, email, token, data, s.ttl); err != nil {
		logger.Error("Failed to store session", err)
		return "", err
	}

	return token, nil
}

// ValidateToken verifies the signature and the Redis session, returning the
// authenticated email.
func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseJWT(token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	email, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return "", err
	}

	if email != claims.Email {
		return "", errors.New("token identity mismatch")
	}

	return email, nil
}

func (s *authService) RevokeToken(ctx context.Context, token string) error {
	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		logger.Error("Failed to revoke session", err)
		return err
	}

	return nil
}
