// Package session is the identity provider: it issues and verifies the
// JWTs that scope every core call to the acting user, and keeps session
// liveness in Redis so tokens can be revoked on logout.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kindling/internal/models"
)

const sessionKeyPrefix = "sess:"

// Manager issues, verifies, and revokes user sessions.
type Manager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	logger *slog.Logger
}

// NewManager builds a session Manager. redisClient may be nil, in which case
// sessions cannot be revoked before expiry and verification is JWT-only.
func NewManager(secret string, ttl time.Duration, redisClient *redis.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  redisClient,
		logger: logger,
	}
}

// Issue creates a signed token for the user and registers the session.
func (m *Manager) Issue(ctx context.Context, userID string) (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if m.redis != nil {
		if err := m.redis.Set(ctx, sessionKeyPrefix+jti, userID, m.ttl).Err(); err != nil {
			// The token is still valid by signature; session registration is
			// what enables early revocation.
			m.logger.WarnContext(ctx, "session registration failed", "error", err)
		}
	}

	return token, nil
}

// Verify validates a token and returns the user id it identifies.
func (m *Manager) Verify(ctx context.Context, tokenString string) (string, error) {
	claims, err := m.parseClaims(tokenString)
	if err != nil {
		return "", err
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", models.NewUnauthorizedError("Invalid token subject")
	}

	if m.redis != nil {
		jti, _ := claims["jti"].(string)
		if jti == "" {
			return "", models.NewUnauthorizedError("Invalid token structure - missing jti")
		}
		exists, err := m.redis.Exists(ctx, sessionKeyPrefix+jti).Result()
		if err != nil {
			// Fail open: signature and expiry were already checked.
			m.logger.WarnContext(ctx, "session liveness check failed", "error", err)
		} else if exists == 0 {
			return "", models.NewUnauthorizedError("Session revoked or expired")
		}
	}

	return userID, nil
}

// Revoke deletes the session behind the token. Verification failures are
// reported; a missing session is not an error.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parseClaims(tokenString)
	if err != nil {
		return err
	}

	if m.redis == nil {
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	if err := m.redis.Del(ctx, sessionKeyPrefix+jti).Err(); err != nil {
		return models.NewRemoteError("session revoke", err)
	}
	return nil
}

func (m *Manager) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}
	return claims, nil
}
