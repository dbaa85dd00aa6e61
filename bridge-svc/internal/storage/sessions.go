package storage

import (
	"context"
	"errors"
	"fmt"

	"menu-bridge/bridge-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid access token")

// JWTSessions resolves the session from the HS256 access token carried in the
// request context. The user id is the token subject.
type JWTSessions struct {
	Secret []byte
}

func NewJWTSessions(secret []byte) *JWTSessions {
	return &JWTSessions{Secret: secret}
}

func (s *JWTSessions) Session(ctx context.Context) (*domain.Session, error) {
	raw := domain.AccessToken(ctx)
	if raw == "" {
		return nil, nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	session := &domain.Session{AccessToken: raw, UserID: claims.Subject}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
