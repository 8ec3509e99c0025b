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

func setupUserRepo(t *testing.T) (*userGorm, *gorm.DB) {
	t.Helper()
	gdb := dbtest.Open(t, &entity.User{})
	return NewUserGorm(gdb), gdb
}

func TestNewUserGorm(t *testing.T) {
	repo, _ := setupUserRepo(t)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo, _ := setupUserRepo(t)

		user := &entity.User{Email: "test@example.com", Username: "tester", Password: "hashed_password"}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, _ := setupUserRepo(t)
		require.NoError(t, repo.Create(context.Background(),
			&entity.User{Email: "dup@example.com", Username: "first", Password: "p1"}))

		err := repo.Create(context.Background(),
			&entity.User{Email: "dup@example.com", Username: "second", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo, _ := setupUserRepo(t)
		require.NoError(t, repo.Create(context.Background(),
			&entity.User{Email: "one@example.com", Username: "taken", Password: "p1"}))

		err := repo.Create(context.Background(),
			&entity.User{Email: "two@example.com", Username: "taken", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
	})

	t.Run("nil user error", func(t *testing.T) {
		repo, _ := setupUserRepo(t)

		assert.Error(t, repo.Create(context.Background(), nil))
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo, _ := setupUserRepo(t)
	ctx := context.Background()

	users := []*entity.User{
		{Email: "user1@example.com", Username: "user_one", Password: "pass1"},
		{Email: "user2@example.com", Username: "user_two", Password: "pass2"},
		{Email: "user3@example.com", Username: "user_three", Password: "pass3"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u), "failed to create test data")
	}

	t.Run("by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "user2@example.com")
		require.NoError(t, err)
		assert.Equal(t, users[1].ID, found.ID)
		assert.Equal(t, "pass2", found.Password)
	})

	t.Run("by username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "user_three")
		require.NoError(t, err)
		assert.Equal(t, users[2].ID, found.ID)
	})

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, users[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "user_one", found.Username)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "notfound@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)

		_, err = repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_Timestamps(t *testing.T) {
	repo, _ := setupUserRepo(t)

	beforeCreate := time.Now()
	user := &entity.User{Email: "timestamp@example.com", Username: "stamp", Password: "password"}
	require.NoError(t, repo.Create(context.Background(), user))
	afterCreate := time.Now()

	assert.False(t, user.CreatedAt.Before(beforeCreate), "CreatedAt is before creation time")
	assert.False(t, user.CreatedAt.After(afterCreate), "CreatedAt is after creation time")

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
}
