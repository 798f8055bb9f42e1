// Package auth implements the session manager, the credential verifier
// and the middleware that resolves the current user for a request.
package auth

import (
	"bytes"
	"context"
	"encoding/gob"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionCookie is the name of the HTTP-only cookie carrying the token.
const SessionCookie = "session_id"

// SessionTTL bounds how long a session lives in Redis. Expiry is enforced
// by key expiration; there is no sweeper.
const SessionTTL = time.Hour * 24 * 7

// Session is the payload stored against a token. It references the user
// by id only; the record itself is re-fetched on every request so profile
// edits are visible immediately.
type Session struct {
	UserID string
}

// SessionManager issues and resolves session tokens backed by Redis.
type SessionManager struct {
	RedisClient *redis.Client
}

func NewSessionManager(r *redis.Client) *SessionManager {
	return &SessionManager{RedisClient: r}
}

// Create stores s under a fresh token and returns the token.
func (m *SessionManager) Create(ctx context.Context, s Session) (string, error) {
	token := uuid.New().String()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		log.Printf("failed to encode session data for id=%v: %v", token, err)
		return "", err
	}

	status := m.RedisClient.SetEX(ctx, token, buf.Bytes(), SessionTTL)
	if status.Err() != nil {
		return "", status.Err()
	}

	return token, nil
}

// Get resolves a token to its session, or nil when the token is unknown
// or expired.
func (m *SessionManager) Get(ctx context.Context, token string) (*Session, error) {
	res := m.RedisClient.Get(ctx, token)
	if res.Err() != nil {
		if res.Err() == redis.Nil {
			return nil, nil
		}

		return nil, res.Err()
	}

	b, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := gob.NewDecoder(bytes.NewBuffer(b)).Decode(&sess); err != nil {
		log.Printf("failed to decode session id=%v: %v", token, err)
		return nil, err
	}

	return &sess, nil
}

// Delete invalidates a token. Deleting an unknown token is not an error.
func (m *SessionManager) Delete(ctx context.Context, token string) error {
	return m.RedisClient.Del(ctx, token).Err()
}
