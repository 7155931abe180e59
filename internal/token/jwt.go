package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/tutordash-web/internal/model"
)

// Claims represents browser cookie claims.
type Claims struct {
	jwt.RegisteredClaims
	BrowserID uuid.UUID `json:"bid"`
	TokenType string    `json:"typ"`
}

// JWT implements BrowserTokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a new browser token manager. Tokens live for ttl.
func NewJWT(secretKey string, ttl time.Duration) model.BrowserTokenManager {
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

const (
	issuer      = "tutordash-web"
	typeBrowser = "browser"
)

// Generate signs a token identifying browserID.
func (j *JWT) Generate(browserID uuid.UUID) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		BrowserID: browserID,
		TokenType: typeBrowser,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign browser token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the token and returns the browser ID it carries.
func (j *JWT) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse browser token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("browser token is invalid")
	}
	if claims.TokenType != typeBrowser {
		return uuid.Nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.BrowserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("browser token has no browser id")
	}
	return claims.BrowserID, nil
}
