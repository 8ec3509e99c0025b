package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/usecase"
	"postboard/internal/platform/db/dbtest"
)

func setupSessionRepo(t *testing.T) (*sessionGorm, *gorm.DB) {
	t.Helper()
	gdb := dbtest.Open(t, &SessionModel{})
	return NewSessionGorm(gdb), gdb
}

// seedSession creates a test session directly in the database.
func seedSession(t *testing.T, db *gorm.DB, id string, userID uint, createdAt, expiresAt time.Time, revokedAt *time.Time) {
	t.Helper()

	model := &SessionModel{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	require.NoError(t, db.Create(model).Error, "failed to seed session")
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo, _ := setupSessionRepo(t)
	ctx := context.Background()
	now := time.Now()

	session := &entity.Session{
		ID:        "6f1c1c1e-1f0b-4b59-9a63-3f5a8c6d1e01",
		UserID:    1,
		UserAgent: "Mozilla/5.0",
		IPAddress: "192.168.1.1",
		CreatedAt: now,
		ExpiresAt: now.Add(16 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, found.UserID)
	assert.Equal(t, session.UserAgent, found.UserAgent)
	assert.True(t, found.IsValid())

	// primary key collision
	assert.Error(t, repo.Create(ctx, session))

	_, err = repo.FindByID(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sessionID   string
		seed        bool
		expectedErr error
	}{
		{name: "success: revoke session", sessionID: "revoke-me", seed: true},
		{name: "failure: session not found", sessionID: "nonexistent-id", expectedErr: usecase.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, gdb := setupSessionRepo(t)
			if tt.seed {
				seedSession(t, gdb, tt.sessionID, 1, time.Now(), time.Now().Add(time.Hour), nil)
			}

			err := repo.Revoke(context.Background(), tt.sessionID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			found, err := repo.FindByID(context.Background(), tt.sessionID)
			require.NoError(t, err)
			assert.True(t, found.IsRevoked())

			// revoking twice is not an error
			assert.NoError(t, repo.Revoke(context.Background(), tt.sessionID))
		})
	}
}

func TestSessionGorm_CountByUserID(t *testing.T) {
	t.Parallel()

	repo, gdb := setupSessionRepo(t)
	now := time.Now()
	seedSession(t, gdb, "active-1", 1, now, now.Add(time.Hour), nil)
	seedSession(t, gdb, "active-2", 1, now, now.Add(time.Hour), nil)
	seedSession(t, gdb, "expired", 1, now.Add(-2*time.Hour), now.Add(-time.Hour), nil)
	seedSession(t, gdb, "revoked", 1, now, now.Add(time.Hour), &now)
	seedSession(t, gdb, "other-user", 2, now, now.Add(time.Hour), nil)

	count, err := repo.CountByUserID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count, "should only count active sessions")
}

func TestSessionGorm_DeleteOldestByUserID(t *testing.T) {
	t.Parallel()

	repo, gdb := setupSessionRepo(t)
	now := time.Now()
	seedSession(t, gdb, "oldest-session", 1, now.Add(-2*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "newest-session", 1, now.Add(-time.Hour), now.Add(time.Hour), nil)

	require.NoError(t, repo.DeleteOldestByUserID(context.Background(), 1))

	_, err := repo.FindByID(context.Background(), "oldest-session")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "oldest session should be deleted")
	_, err = repo.FindByID(context.Background(), "newest-session")
	assert.NoError(t, err, "newest session should still exist")

	// nothing left to evict for an unknown user
	assert.NoError(t, repo.DeleteOldestByUserID(context.Background(), 42))
}
