package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// Error variables
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
)

// UserGetter defines the read operation the session issuer needs.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserSaver defines the write operation the session issuer needs.
type UserSaver interface {
	Save(ctx context.Context, username, email, passwordHash, role string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for minting identity tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64, username, role string) (string, error)
}

// AuthService handles registration and login. It is the only component
// that computes or verifies password hashes.
type AuthService struct {
	reader UserGetter
	writer UserSaver
	jwt    JWTGenerator
	events EventWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserGetter, writer UserSaver, jwt JWTGenerator, events EventWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		events: events,
	}
}

// Register creates a new user with role "user" and returns a signed
// token plus the public identity.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.AuthResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingFields
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, username, email, string(hashedPassword), models.RoleUser)
	if err != nil {
		logger.Log.Errorw("failed to save user", "error", err)
		return nil, err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "error", err)
		return nil, err
	}

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventUserRegistered,
		UserID:   user.UserID,
		EntityID: user.UserID,
	})

	return &models.AuthResult{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Login authenticates a user by email and password and returns a signed
// token plus the public identity. Unknown email and wrong password are
// indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "error", err)
		return nil, err
	}

	return &models.AuthResult{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
