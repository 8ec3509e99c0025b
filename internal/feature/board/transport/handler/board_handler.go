// Package handler exposes the board over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/domain/entity"
	"postboard/internal/feature/board/transport/http/dto"
	"postboard/internal/platform/actor"
)

// BoardUsecase defines the board operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type BoardUsecase interface {
	CreatePost(ctx context.Context, actorID uint, title, content string) (*entity.Post, error)
	GetPost(ctx context.Context, postID uint) (*entity.Post, error)
	EditPost(ctx context.Context, actorID, postID uint, title, content string) (*entity.Post, error)
	DeletePost(ctx context.Context, actorID, postID uint) error
	AddComment(ctx context.Context, actorID, postID uint, body string) (*entity.Comment, error)
	LikePost(ctx context.Context, actorID, postID uint) (*entity.Interaction, error)
	ListLikers(ctx context.Context, postID uint) ([]entity.Liker, error)
	ListComments(ctx context.Context, postID uint) ([]entity.Comment, error)
	Feed(ctx context.Context, actorID uint) ([]entity.PostSummary, error)
	ListUserPosts(ctx context.Context, username string) (*entity.Author, []entity.Post, error)
}

// EventRecorder counts board events.
type EventRecorder interface {
	RecordEvent(event string)
}

// BoardHandler serves posts, comments and likes.
type BoardHandler struct {
	board  BoardUsecase
	events EventRecorder
	log    logrus.FieldLogger
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(board BoardUsecase, events EventRecorder, log logrus.FieldLogger) *BoardHandler {
	return &BoardHandler{board: board, events: events, log: log}
}

// postID parses the :id path parameter. A malformed id is answered like a missing post.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrPostNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

// currentActor returns the actor attached by the auth middleware.
func currentActor(c *gin.Context) (actor.Actor, bool) {
	a, ok := actor.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
	}
	return a, ok
}

// statusFor maps board errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrInteractionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSelfInteraction),
		errors.Is(err, domain.ErrDuplicateInteraction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response. Unexpected errors are logged and hidden.
func (h *BoardHandler) respondError(c *gin.Context, err error, fields logrus.Fields) {
	status := statusFor(err)
	entry := h.log.WithFields(fields).WithField("error", err)
	if status == http.StatusInternalServerError {
		entry.Error("board request failed")
		c.JSON(status, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	entry.Debug("board request rejected")
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
