package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/board/transport/http/dto"
)

// Home handles GET /home.
func (h *BoardHandler) Home(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	feed, err := h.board.Feed(c.Request.Context(), a.ID)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"actor": a.ID})
		return
	}
	c.JSON(http.StatusOK, dto.FromFeed(feed))
}

// UserPosts handles GET /user/:username.
func (h *BoardHandler) UserPosts(c *gin.Context) {
	username := c.Param("username")
	author, posts, err := h.board.ListUserPosts(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err, logrus.Fields{"username": username})
		return
	}
	for i := range posts {
		posts[i].AuthorName = author.Username
	}
	c.JSON(http.StatusOK, dto.UserPostsResponse{
		UserID:   author.ID,
		Username: author.Username,
		Posts:    dto.FromPosts(posts),
	})
}
