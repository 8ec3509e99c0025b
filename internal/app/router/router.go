// Package router wires every HTTP route of postboard onto a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authhandler "postboard/internal/feature/auth/transport/handler"
	boardhandler "postboard/internal/feature/board/transport/handler"
	"postboard/internal/platform/http/handler"
	"postboard/internal/platform/logger"
	"postboard/internal/platform/metrics"
)

// Guard builds the middleware that attaches the acting user.
type Guard interface {
	Required() gin.HandlerFunc
	Optional() gin.HandlerFunc
}

// Handlers groups the HTTP handlers the router dispatches to.
type Handlers struct {
	Health *handler.HealthHandler
	Auth   *authhandler.AuthHandler
	Board  *boardhandler.BoardHandler
}

// Limiter throttles a route per client.
type Limiter interface {
	Middleware(log logrus.FieldLogger) gin.HandlerFunc
}

// NewRouter builds the engine. Routes that mutate the board sit behind guard.Required().
func NewRouter(h Handlers, guard Guard, login Limiter, m *metrics.Metrics, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log), m.Middleware())

	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/home") })
	r.POST("/register", h.Auth.Register)
	r.POST("/login", login.Middleware(log), h.Auth.Login)
	r.GET("/user/:username", h.Board.UserPosts)
	r.GET("/view_comments/:id", h.Board.ViewComments)
	r.GET("/post/:id/likes", h.Board.Likes)

	r.GET("/logout", guard.Optional(), h.Auth.Logout)

	auth := r.Group("/")
	auth.Use(guard.Required())
	{
		auth.GET("/me", h.Auth.Me)
		auth.GET("/home", h.Board.Home)
		auth.POST("/add_post", h.Board.AddPost)
		auth.GET("/post/:id/edit", h.Board.EditForm)
		auth.POST("/post/:id/edit", h.Board.EditPost)
		auth.POST("/post/:id/delete", h.Board.DeletePost)
		auth.POST("/post/:id/comment", h.Board.AddComment)
		auth.POST("/like/:id", h.Board.LikePost)
	}

	return r
}
