package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/transport/http/dto"
	"postboard/internal/platform/http/validation"
	"postboard/internal/platform/metrics"
)

// likeMessages are the rejection texts shown next to the like button.
var likeMessages = map[error]string{
	domain.ErrSelfInteraction:      "You cannot like your own post",
	domain.ErrDuplicateInteraction: "You have already liked this post",
	domain.ErrPostNotFound:         "Post not found",
}

// AddComment handles POST /post/:id/comment.
func (h *BoardHandler) AddComment(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	var req dto.CommentReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Message(err)})
		return
	}

	comment, err := h.board.AddComment(c.Request.Context(), a.ID, id, req.Body())
	if err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID, "post_id": id})
		return
	}
	comment.AuthorName = a.Username

	h.events.RecordEvent(metrics.EventCommentAdded)
	h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id, "comment_id": comment.ID}).Info("comment added")
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// LikePost handles POST /like/:id.
func (h *BoardHandler) LikePost(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	if _, err := h.board.LikePost(c.Request.Context(), a.ID, id); err != nil {
		for sentinel, msg := range likeMessages {
			if errors.Is(err, sentinel) {
				h.events.RecordEvent(metrics.EventLikeRejected)
				h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id, "reason": err}).Debug("like rejected")
				c.JSON(statusFor(err), dto.LikeResponse{Success: false, Error: msg})
				return
			}
		}
		h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id, "error": err}).Error("like failed")
		c.JSON(http.StatusInternalServerError, dto.LikeResponse{Success: false, Error: "internal server error"})
		return
	}

	h.events.RecordEvent(metrics.EventLikeAdded)
	h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id}).Info("post liked")
	c.JSON(http.StatusOK, dto.LikeResponse{Success: true, Username: a.Username})
}

// ViewComments handles GET /view_comments/:id.
func (h *BoardHandler) ViewComments(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.board.GetPost(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"post_id": id})
		return
	}
	comments, err := h.board.ListComments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"post_id": id})
		return
	}
	c.JSON(http.StatusOK, dto.CommentsResponse{Post: dto.FromPost(post), Comments: dto.FromComments(comments)})
}

// Likes handles GET /post/:id/likes.
func (h *BoardHandler) Likes(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if _, err := h.board.GetPost(c.Request.Context(), id); err != nil {
		h.respondError(c, err, logrus.Fields{"post_id": id})
		return
	}
	likers, err := h.board.ListLikers(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"post_id": id})
		return
	}
	c.JSON(http.StatusOK, dto.LikersResponse{PostID: id, Count: len(likers), Likers: dto.FromLikers(likers)})
}
