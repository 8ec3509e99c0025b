package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"postboard/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 6
	minUsernameLength = 4
	maxUsernameLength = 20

	defaultSessionTTL  = 16 * time.Hour
	defaultMaxSessions = 5
)

// dummyHash is compared against when the email is unknown so that
// a failed login costs the same whichever field was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUserAlreadyExists when
	// the username or email violates a unique index.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername returns ErrUserNotFound if no user has the username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns ErrUserNotFound if no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator issues bearer tokens bound to a session.
type TokenGenerator interface {
	GenerateToken(userID uint, username, sessionID string) (string, error)
}

// Options tunes session handling.
type Options struct {
	SessionTTL         time.Duration
	MaxSessionsPerUser int
}

// LoginInput is what a client presents to log in.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User    *entity.User
	Session *entity.Session
	Token   string
}

// AuthUsecase implements registration, login and session resolution.
type AuthUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
	opts     Options
}

// NewAuthUsecase creates a new AuthUsecase. Zero options fall back to defaults.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, opts Options) *AuthUsecase {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.MaxSessionsPerUser <= 0 {
		opts.MaxSessionsPerUser = defaultMaxSessions
	}
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		opts:     opts,
	}
}

func validateSignup(email, username, password string) error {
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("%w: username must be between %d and %d characters long",
			ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// ensureFree returns ErrUserAlreadyExists when find locates a user.
func ensureFree(ctx context.Context, find func(context.Context, string) (*entity.User, error), key string) error {
	_, err := find(ctx, key)
	switch {
	case err == nil:
		return ErrUserAlreadyExists
	case errors.Is(err, ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Signup registers a new user with a hashed password.
// The unique indexes on username and email back the pre-checks done here.
func (u *AuthUsecase) Signup(ctx context.Context, email, username, password string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := validateSignup(email, username, password); err != nil {
		return nil, err
	}

	if err := ensureFree(ctx, u.users.FindByUsername, username); err != nil {
		return nil, err
	}
	if err := ensureFree(ctx, u.users.FindByEmail, email); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Username: username, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials, opens a session and issues a token for it.
// The bcrypt comparison always runs, even for an unknown email.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.enforceSessionLimit(ctx, user.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.opts.SessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// enforceSessionLimit evicts the oldest sessions until a new one fits.
func (u *AuthUsecase) enforceSessionLimit(ctx context.Context, userID uint) error {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= int64(u.opts.MaxSessionsPerUser); count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return fmt.Errorf("failed to evict session: %w", err)
		}
	}
	return nil
}

// Logout revokes the session. An unknown session is already logged out.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	err := u.sessions.Revoke(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Authenticate resolves a session id into the user that owns it.
func (u *AuthUsecase) Authenticate(ctx context.Context, sessionID string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return u.users.FindByID(ctx, session.UserID)
}

// CurrentUser loads the profile of an already authenticated actor.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
