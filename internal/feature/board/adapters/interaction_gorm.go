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

// interactionGorm stores likes. The unique index idx_interaction_user_post
// is the final guard against two likes by the same user.
type interactionGorm struct {
	db *gorm.DB
}

var _ usecase.InteractionRepository = (*interactionGorm)(nil)

// NewInteractionGorm creates a new instance of interactionGorm.
func NewInteractionGorm(db *gorm.DB) *interactionGorm {
	return &interactionGorm{db: db}
}

func (r *interactionGorm) Create(ctx context.Context, i *entity.Interaction) error {
	if i.Reaction == "" {
		i.Reaction = entity.ReactionLike
	}
	if err := r.db.WithContext(ctx).Create(i).Error; err != nil {
		switch {
		case db.IsDuplicateKey(err):
			return domain.ErrDuplicateInteraction
		case db.IsForeignKeyViolation(err):
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *interactionGorm) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.Interaction{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

func (r *interactionGorm) FindByID(ctx context.Context, id uint) (*entity.Interaction, error) {
	var i entity.Interaction
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *interactionGorm) ListLikers(ctx context.Context, postID uint) ([]entity.Liker, error) {
	var likers []entity.Liker
	err := r.db.WithContext(ctx).
		Table("interactions").
		Select("interactions.user_id AS user_id, users.username AS username").
		Joins("JOIN users ON users.id = interactions.user_id").
		Where("interactions.post_id = ? AND interactions.reaction = ?", postID, entity.ReactionLike).
		Order("interactions.id ASC").
		Scan(&likers).Error
	return likers, err
}
