package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)

	repo := NewSessionRedis(client, "")

	assert.NotNil(t, repo.client)
	assert.Equal(t, "session", repo.prefix, "empty prefix falls back to default")
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{"success: create session", createTestSession("session-001", 1, 16*time.Hour), false},
		{"failure: expired session", createTestSession("expired-session", 1, -time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mr := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, mr.Exists(repo.sessionKey(tt.session.ID)))
				return
			}
			require.NoError(t, err)
			assert.True(t, mr.Exists(repo.sessionKey(tt.session.ID)))
			assert.Greater(t, mr.TTL(repo.sessionKey(tt.session.ID)), time.Duration(0))

			isMember, err := mr.SIsMember(repo.userSessionsKey(tt.session.UserID), tt.session.ID)
			require.NoError(t, err)
			assert.True(t, isMember)
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("find-me", 7, time.Hour)))

	found, err := repo.FindByID(ctx, "find-me")
	require.NoError(t, err)
	assert.Equal(t, "find-me", found.ID)
	assert.Equal(t, uint(7), found.UserID)
	assert.Equal(t, "test-agent", found.UserAgent)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	// key expiry in redis behaves like a deleted session
	mr.FastForward(2 * time.Hour)
	_, err = repo.FindByID(ctx, "find-me")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_FindByID_CorruptedPayload(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	require.NoError(t, mr.Set(repo.sessionKey("broken"), "{not json"))

	_, err := repo.FindByID(context.Background(), "broken")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, createTestSession("revoke-me", 1, time.Hour)))

	require.NoError(t, repo.Revoke(ctx, "revoke-me"))

	found, err := repo.FindByID(ctx, "revoke-me")
	require.NoError(t, err)
	assert.NotNil(t, found.RevokedAt)
	assert.True(t, found.IsRevoked())

	isMember, err := mr.SIsMember(repo.userSessionsKey(1), "revoke-me")
	require.NoError(t, err)
	assert.False(t, isMember, "revoked session should leave the user index")

	assert.ErrorIs(t, repo.Revoke(ctx, "nonexistent"), usecase.ErrSessionNotFound)
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("active-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("active-2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("other-user", 2, time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "active-1"))

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "should only count active sessions")

	// dangling ids are pruned from the index
	mr.Del(repo.sessionKey("active-2"))
	count, err = repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	members, _ := mr.Members(repo.userSessionsKey(1))
	assert.Empty(t, members)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	now := time.Now()
	older := &entity.Session{ID: "oldest", UserID: 1, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour)}
	newer := &entity.Session{ID: "newest", UserID: 1, CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))

	_, err := repo.FindByID(ctx, "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, "newest")
	assert.NoError(t, err)

	// no sessions left to evict is not an error
	assert.NoError(t, repo.DeleteOldestByUserID(ctx, 42))
}

func TestSessionRedis_KeyGeneration(t *testing.T) {
	t.Parallel()

	repo := NewSessionRedis(nil, "test-prefix")

	assert.Equal(t, "test-prefix:session-id", repo.sessionKey("session-id"))
	assert.Equal(t, "test-prefix:user:123", repo.userSessionsKey(123))
}

func TestSessionRedis_FindByID_RedisError(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")
	mock.ExpectGet("session:abc").SetErr(errors.New("connection reset"))

	_, err := repo.FindByID(context.Background(), "abc")

	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_CountByUserID_RedisError(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")
	mock.ExpectSMembers("session:user:9").SetErr(errors.New("READONLY"))

	_, err := repo.CountByUserID(context.Background(), 9)

	assert.EqualError(t, err, "READONLY")
	assert.NoError(t, mock.ExpectationsWereMet())
}
