package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"barorder/internal/errors"
)

const msgInvalidCredentials = "invalid username or password"

// Service checks the single admin account configured for the venue.
type Service struct {
	username     string
	passwordHash []byte
	tokens       *Tokens
	logger       *zap.Logger
}

func NewService(username, passwordHash string, tokens *Tokens, logger *zap.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger,
	}
}

// Login exchanges admin credentials for a token. With no password hash
// configured every login fails.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if len(s.passwordHash) == 0 {
		s.logger.Warn("admin login attempted but no password hash is configured")
		return "", time.Time{}, errors.NewUnauthorizedError(msgInvalidCredentials)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		s.logger.Info("admin login rejected", zap.String("username", username))
		return "", time.Time{}, errors.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(username)
	if err != nil {
		return "", time.Time{}, errors.NewRemoteCallError("failed to generate token", err)
	}

	s.logger.Info("admin logged in", zap.String("username", username))
	return token, expiresAt, nil
}

// HashPassword hashes an admin password for the configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
