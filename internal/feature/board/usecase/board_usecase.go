package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/domain/entity"
)

// BoardUsecase enforces who may change which post and keeps likes and
// comments consistent with the posts they belong to.
// The actor is always the authenticated user ID resolved by the transport layer.
type BoardUsecase struct {
	posts        PostRepository
	comments     CommentRepository
	interactions InteractionRepository
	authors      AuthorRepository
}

// NewBoardUsecase creates a new BoardUsecase.
func NewBoardUsecase(posts PostRepository, comments CommentRepository, interactions InteractionRepository, authors AuthorRepository) *BoardUsecase {
	return &BoardUsecase{
		posts:        posts,
		comments:     comments,
		interactions: interactions,
		authors:      authors,
	}
}

func validatePost(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	switch {
	case title == "":
		return "", "", fmt.Errorf("%w: title is required", domain.ErrValidation)
	case utf8.RuneCountInString(title) > entity.MaxTitleLength:
		return "", "", fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, entity.MaxTitleLength)
	case content == "":
		return "", "", fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return title, content, nil
}

// CreatePost publishes a post owned by the actor.
func (u *BoardUsecase) CreatePost(ctx context.Context, actorID uint, title, content string) (*entity.Post, error) {
	title, content, err := validatePost(title, content)
	if err != nil {
		return nil, err
	}
	post := &entity.Post{UserID: actorID, Title: title, Content: content}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost returns a single post.
func (u *BoardUsecase) GetPost(ctx context.Context, postID uint) (*entity.Post, error) {
	return u.posts.FindByID(ctx, postID)
}

// ownedPost loads the post and checks the actor owns it.
func (u *BoardUsecase) ownedPost(ctx context.Context, actorID, postID uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(actorID) {
		return nil, domain.ErrUnauthorized
	}
	return post, nil
}

// EditPost replaces the title and content of a post the actor owns.
func (u *BoardUsecase) EditPost(ctx context.Context, actorID, postID uint, title, content string) (*entity.Post, error) {
	post, err := u.ownedPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	title, content, err = validatePost(title, content)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := u.posts.UpdateOwned(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post the actor owns together with its comments and likes.
func (u *BoardUsecase) DeletePost(ctx context.Context, actorID, postID uint) error {
	if _, err := u.ownedPost(ctx, actorID, postID); err != nil {
		return err
	}
	return u.posts.DeleteOwned(ctx, postID, actorID)
}

// AddComment attaches a comment to any existing post.
func (u *BoardUsecase) AddComment(ctx context.Context, actorID, postID uint, body string) (*entity.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(body) > entity.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", domain.ErrValidation, entity.MaxCommentLength)
	}
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{Body: body, UserID: actorID, PostID: postID}
	if err := u.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// LikePost records a like. The checks run in a fixed order: the post must
// exist, must not belong to the actor and must not already be liked by them.
// The unique index on (user_id, post_id) catches likes that race past Exists.
func (u *BoardUsecase) LikePost(ctx context.Context, actorID, postID uint) (*entity.Interaction, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnedBy(actorID) {
		return nil, domain.ErrSelfInteraction
	}

	exists, err := u.interactions.Exists(ctx, actorID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateInteraction
	}

	like := &entity.Interaction{UserID: actorID, PostID: postID, Reaction: entity.ReactionLike}
	if err := u.interactions.Create(ctx, like); err != nil {
		if errors.Is(err, domain.ErrDuplicateInteraction) || errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}
	return like, nil
}

// ListLikers returns who liked the post, in like order. A missing post has no likers.
func (u *BoardUsecase) ListLikers(ctx context.Context, postID uint) ([]entity.Liker, error) {
	likers, err := u.interactions.ListLikers(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likers == nil {
		likers = []entity.Liker{}
	}
	return likers, nil
}

// ListComments returns the comments of the post in creation order.
// A missing post has no comments.
func (u *BoardUsecase) ListComments(ctx context.Context, postID uint) ([]entity.Comment, error) {
	comments, err := u.comments.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []entity.Comment{}
	}
	return comments, nil
}

// Feed returns every post with its comments and likers, marking the ones the actor liked.
func (u *BoardUsecase) Feed(ctx context.Context, actorID uint) ([]entity.PostSummary, error) {
	posts, err := u.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]entity.PostSummary, 0, len(posts))
	for _, p := range posts {
		comments, err := u.ListComments(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		likers, err := u.ListLikers(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		summary := entity.PostSummary{Post: p, Comments: comments, LikedUsers: make([]string, 0, len(likers))}
		for _, l := range likers {
			summary.LikedUsers = append(summary.LikedUsers, l.Username)
			if l.UserID == actorID {
				summary.Liked = true
			}
		}
		feed = append(feed, summary)
	}
	return feed, nil
}

// ListUserPosts returns a user's profile and posts.
func (u *BoardUsecase) ListUserPosts(ctx context.Context, username string) (*entity.Author, []entity.Post, error) {
	author, err := u.authors.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := u.posts.ListByUserID(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	return author, posts, nil
}
