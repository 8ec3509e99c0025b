package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/domain/entity"
	"postboard/internal/feature/board/usecase"
	"postboard/internal/platform/db"
)

type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentGorm creates a new instance of commentGorm.
func NewCommentGorm(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

func (r *commentGorm) Create(ctx context.Context, c *entity.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *commentGorm) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentGorm) ListByPostID(ctx context.Context, postID uint) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Select("comments.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.id ASC").
		Find(&comments).Error
	return comments, err
}
