// Package di builds the object graph of the server from its configuration.
package di

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"postboard/internal/app/router"
	authadapters "postboard/internal/feature/auth/adapters"
	authentity "postboard/internal/feature/auth/domain/entity"
	authhandler "postboard/internal/feature/auth/transport/handler"
	"postboard/internal/feature/auth/transport/middleware"
	authusecase "postboard/internal/feature/auth/usecase"
	boardadapters "postboard/internal/feature/board/adapters"
	boardentity "postboard/internal/feature/board/domain/entity"
	boardhandler "postboard/internal/feature/board/transport/handler"
	boardusecase "postboard/internal/feature/board/usecase"
	"postboard/internal/platform/config"
	"postboard/internal/platform/cookie"
	"postboard/internal/platform/http/handler"
	jwtmw "postboard/internal/platform/jwt"
	"postboard/internal/platform/metrics"
	"postboard/internal/shared/ratelimiter"
)

// Models lists every table the server owns, in migration order.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&boardentity.Post{},
		&boardentity.Comment{},
		&boardentity.Interaction{},
	}
}

// NewServer assembles repositories, usecases and handlers into a gin engine.
// A nil rdb keeps sessions in the database.
func NewServer(cfg config.Config, gdb *gorm.DB, rdb *redis.Client, log logrus.FieldLogger) (*gin.Engine, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	m := metrics.New()

	// auth
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.SessionTTL)
	cookies := cookie.NewStore([]byte(cfg.SessionSecret), cfg.SessionTTL, cfg.CookieSecure)
	authUC := authusecase.NewAuthUsecase(
		authadapters.NewUserGorm(gdb),
		NewSessionRepository(rdb, gdb),
		tokens,
		authusecase.Options{SessionTTL: cfg.SessionTTL, MaxSessionsPerUser: cfg.MaxSessionsPerUser},
	)

	// board
	boardUC := boardusecase.NewBoardUsecase(
		boardadapters.NewPostGorm(gdb),
		boardadapters.NewCommentGorm(gdb),
		boardadapters.NewInteractionGorm(gdb),
		boardadapters.NewAuthorGorm(gdb),
	)

	handlers := router.Handlers{
		Health: handler.NewHealthHandler(sqlDB),
		Auth:   authhandler.NewAuthHandler(authUC, cookies, m, log),
		Board:  boardhandler.NewBoardHandler(boardUC, m, log),
	}
	guard := middleware.NewResolver(authUC, tokens, cookies, log)

	loginLimiter := ratelimiter.NewRateLimiter(cfg.LoginAttemptsPerMinute, time.Minute)

	return router.NewRouter(handlers, guard, loginLimiter, m, log), nil
}
