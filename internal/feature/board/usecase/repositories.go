// Package usecase implements the authorization and interaction rules of the board.
package usecase

import (
	"context"

	"postboard/internal/feature/board/domain/entity"
)

// PostRepository abstracts post storage.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error

	// FindByID returns domain.ErrPostNotFound when the post does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// ListAll returns every post, oldest first, with AuthorName filled.
	ListAll(ctx context.Context) ([]entity.Post, error)

	// ListByUserID returns the posts of one user, oldest first.
	ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error)

	// UpdateOwned writes title and content only when post.UserID still owns
	// the row. It returns domain.ErrPostNotFound when no row matched.
	UpdateOwned(ctx context.Context, post *entity.Post) error

	// DeleteOwned removes the post with its comments and interactions in one
	// transaction. It returns domain.ErrPostNotFound when no owned row matched.
	DeleteOwned(ctx context.Context, id, ownerID uint) error
}

// CommentRepository abstracts comment storage.
type CommentRepository interface {
	// Create returns domain.ErrPostNotFound when the post is gone.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID returns domain.ErrCommentNotFound when the comment does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)

	// ListByPostID returns comments in creation order, with AuthorName filled.
	ListByPostID(ctx context.Context, postID uint) ([]entity.Comment, error)
}

// InteractionRepository abstracts like storage.
type InteractionRepository interface {
	// Create returns domain.ErrDuplicateInteraction when the unique index on
	// (user_id, post_id) rejects the row and domain.ErrPostNotFound when the
	// post is gone.
	Create(ctx context.Context, interaction *entity.Interaction) error

	Exists(ctx context.Context, userID, postID uint) (bool, error)

	// FindByID returns domain.ErrInteractionNotFound when the row does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Interaction, error)

	// ListLikers returns the users who liked the post in like order.
	ListLikers(ctx context.Context, postID uint) ([]entity.Liker, error)
}

// AuthorRepository looks up users as authors.
type AuthorRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when nobody has the username.
	FindByUsername(ctx context.Context, username string) (*entity.Author, error)
}
