// Package adapters provides GORM repositories for the board feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/domain/entity"
	"postboard/internal/feature/board/usecase"
)

// postGorm is the GORM implementation of usecase.PostRepository.
type postGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure postGorm implements PostRepository.
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm creates a new instance of postGorm.
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

func (r *postGorm) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Select("posts.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = posts.user_id")
}

func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var p entity.Post
	if err := r.withAuthor(ctx).Where("posts.id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postGorm) ListAll(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.withAuthor(ctx).Order("posts.id ASC").Find(&posts).Error
	return posts, err
}

func (r *postGorm) ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.withAuthor(ctx).Where("posts.user_id = ?", userID).Order("posts.id ASC").Find(&posts).Error
	return posts, err
}

// UpdateOwned matches on both id and user_id so a post cannot change hands
// between the owner check and the write.
func (r *postGorm) UpdateOwned(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ? AND user_id = ?", post.ID, post.UserID).
		Updates(map[string]any{"title": post.Title, "content": post.Content})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteOwned removes the children explicitly so the cascade holds even on
// stores that do not enforce foreign keys.
func (r *postGorm) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entity.Post
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPostNotFound
			}
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Interaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, id).Error
	})
}
