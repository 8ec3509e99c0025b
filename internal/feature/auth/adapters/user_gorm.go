// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/usecase"
	"postboard/internal/platform/db"
)

// userGorm is the GORM implementation of usecase.UserRepository.
// It works against both the postgres and sqlite dialects.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. A unique index violation on username or email
// is reported as usecase.ErrUserAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userGorm) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
