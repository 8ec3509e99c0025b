package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/board/domain"
	"postboard/internal/feature/board/transport/http/dto"
	"postboard/internal/platform/http/validation"
	"postboard/internal/platform/metrics"
)

// AddPost handles POST /add_post.
func (h *BoardHandler) AddPost(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.PostReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Message(err)})
		return
	}

	post, err := h.board.CreatePost(c.Request.Context(), a.ID, req.Title, req.Content)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID})
		return
	}
	post.AuthorName = a.Username

	h.events.RecordEvent(metrics.EventPostCreated)
	h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": post.ID}).Info("post created")
	c.JSON(http.StatusCreated, dto.FromPost(post))
}

// EditForm handles GET /post/:id/edit and returns the post for its owner.
func (h *BoardHandler) EditForm(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.board.GetPost(c.Request.Context(), id)
	if err == nil && !post.OwnedBy(a.ID) {
		err = domain.ErrUnauthorized
	}
	if err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID, "post_id": id})
		return
	}
	c.JSON(http.StatusOK, dto.FromPost(post))
}

// EditPost handles POST /post/:id/edit.
func (h *BoardHandler) EditPost(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	// An unreadable body is treated as empty so a non-owner still gets 403.
	var req dto.EditPostReq
	if err := c.ShouldBind(&req); err != nil {
		req = dto.EditPostReq{}
	}

	post, err := h.board.EditPost(c.Request.Context(), a.ID, id, req.Title, req.Content)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID, "post_id": id})
		return
	}

	h.events.RecordEvent(metrics.EventPostEdited)
	h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id}).Info("post edited")
	c.JSON(http.StatusOK, dto.FromPost(post))
}

// DeletePost handles POST /post/:id/delete.
func (h *BoardHandler) DeletePost(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.board.DeletePost(c.Request.Context(), a.ID, id); err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID, "post_id": id})
		return
	}

	h.events.RecordEvent(metrics.EventPostDeleted)
	h.log.WithFields(logrus.Fields{"actor": a.ID, "post_id": id}).Info("post deleted")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Your post has been deleted"})
}
