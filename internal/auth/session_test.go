package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionManager(client), mr
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, Session{UserID: "uid-1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := mgr.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "uid-1", sess.UserID)
}

func TestSessionManager_Get_UnknownToken(t *testing.T) {
	mgr, _ := newTestManager(t)

	sess, err := mgr.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionManager_Delete(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, Session{UserID: "uid-1"})
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(ctx, token))

	sess, err := mgr.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Deleting again is still fine.
	assert.NoError(t, mgr.Delete(ctx, token))
}

func TestSessionManager_Expiry(t *testing.T) {
	mgr, mr := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, Session{UserID: "uid-1"})
	require.NoError(t, err)

	ttl := mr.TTL(token)
	assert.Equal(t, SessionTTL, ttl)

	mr.FastForward(SessionTTL + time.Minute)

	sess, err := mgr.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
