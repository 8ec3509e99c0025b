// Package domain holds the error taxonomy of the board feature.
package domain

import "errors"

var (
	// ErrUnauthorized is returned when the actor does not own the post.
	ErrUnauthorized = errors.New("you are not allowed to modify this post")

	// ErrPostNotFound is returned when no post has the requested ID.
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when no comment has the requested ID.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrInteractionNotFound is returned when no interaction has the requested ID.
	ErrInteractionNotFound = errors.New("interaction not found")

	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("user not found")

	// ErrValidation wraps input problems. The wrapping message names the field.
	ErrValidation = errors.New("validation failed")

	// ErrSelfInteraction is returned when a user likes their own post.
	ErrSelfInteraction = errors.New("cannot like own post")

	// ErrDuplicateInteraction is returned when the user already liked the post.
	ErrDuplicateInteraction = errors.New("post already liked")
)
