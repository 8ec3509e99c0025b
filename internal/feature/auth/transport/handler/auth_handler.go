// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"postboard/internal/feature/auth/domain/entity"
	"postboard/internal/feature/auth/transport/http/dto"
	"postboard/internal/feature/auth/usecase"
	"postboard/internal/platform/actor"
	"postboard/internal/platform/http/validation"
	"postboard/internal/platform/metrics"
)

// AuthUsecase defines the auth operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, email, username, password string) (*entity.User, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
}

// SessionCookie writes and clears the browser session cookie.
type SessionCookie interface {
	Save(w http.ResponseWriter, r *http.Request, sessionID string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// EventRecorder counts auth events.
type EventRecorder interface {
	RecordEvent(event string)
}

// AuthHandler handles registration, login and logout requests.
type AuthHandler struct {
	auth    AuthUsecase
	cookies SessionCookie
	events  EventRecorder
	log     logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, cookies SessionCookie, events EventRecorder, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, events: events, log: log}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Register handles POST /register.
//   - 400 when the form does not validate
//   - 409 when the username or email is taken
//   - 201 with the new user on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBind(&req); err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Warn("signup validation failed")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Message(err)})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		entry := h.log.WithFields(logrus.Fields{"error": err, "username": req.Username, "remote_ip": c.ClientIP()})
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			entry.Warn("signup rejected")
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			entry.Warn("signup rejected")
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: usecase.ErrUserAlreadyExists.Error()})
		default:
			entry.Error("signup failed")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.events.RecordEvent(metrics.EventSignup)
	h.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user signup successful")
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /login. It sets the session cookie and returns a bearer
// token bound to the same session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Warn("login validation failed")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Message(err)})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			h.events.RecordEvent(metrics.EventLoginFailed)
			h.log.WithFields(logrus.Fields{"remote_ip": c.ClientIP()}).Warn("login failed")
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		h.log.WithFields(logrus.Fields{"error": err, "remote_ip": c.ClientIP()}).Error("login failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	if err := h.cookies.Save(c.Writer, c.Request, res.Session.ID); err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "user_id": res.User.ID}).Error("failed to write session cookie")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	h.events.RecordEvent(metrics.EventLogin)
	h.log.WithFields(logrus.Fields{"user_id": res.User.ID, "remote_ip": c.ClientIP()}).Info("user login successful")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.Session.ExpiresAt,
		User:      toUserResponse(res.User),
	})
}

// Logout handles GET /logout. It succeeds whether or not anyone was logged in.
func (h *AuthHandler) Logout(c *gin.Context) {
	if a, ok := actor.FromContext(c); ok {
		if err := h.auth.Logout(c.Request.Context(), a.SessionID); err != nil {
			h.log.WithFields(logrus.Fields{"error": err, "user_id": a.ID}).Error("failed to revoke session")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
			return
		}
		h.log.WithField("user_id", a.ID).Info("user logged out")
	}
	if err := h.cookies.Clear(c.Writer, c.Request); err != nil {
		h.log.WithField("error", err).Warn("failed to clear session cookie")
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	a, ok := actor.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), a.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		h.log.WithFields(logrus.Fields{"error": err, "user_id": a.ID}).Error("failed to load current user")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
