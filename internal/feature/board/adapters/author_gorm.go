package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/domain/entity"
	"postboard/internal/feature/board/usecase"
)

// authorGorm reads the users table owned by the auth feature.
type authorGorm struct {
	db *gorm.DB
}

var _ usecase.AuthorRepository = (*authorGorm)(nil)

// NewAuthorGorm creates a new instance of authorGorm.
func NewAuthorGorm(db *gorm.DB) *authorGorm {
	return &authorGorm{db: db}
}

func (r *authorGorm) FindByUsername(ctx context.Context, username string) (*entity.Author, error) {
	var a entity.Author
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &a, nil
}
