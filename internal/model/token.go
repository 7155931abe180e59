package model

import "github.com/google/uuid"

// BrowserTokenManager signs and verifies the cookie that identifies a browser.
type BrowserTokenManager interface {
	Generate(browserID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
