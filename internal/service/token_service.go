package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

// ErrInvalidBrowserToken means the browser cookie is missing, forged or expired.
var ErrInvalidBrowserToken = errors.New("invalid browser token")

// TokenService issues and resolves the signed cookie that identifies a browser.
type TokenService struct {
	manager model.BrowserTokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.BrowserTokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue creates a new browser ID and its signed token.
func (s *TokenService) Issue() (uuid.UUID, string, error) {
	browserID := uuid.New()

	token, err := s.manager.Generate(browserID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("issue browser token: %w", err)
	}

	s.logger.Debug("Token service: issued browser token", "browser_id", browserID)
	return browserID, token, nil
}

// Resolve returns the browser ID a token was issued for.
func (s *TokenService) Resolve(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidBrowserToken
	}

	browserID, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: rejected browser token", "error", err.Error())
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidBrowserToken, err.Error())
	}
	if browserID == uuid.Nil {
		return uuid.Nil, ErrInvalidBrowserToken
	}

	return browserID, nil
}
