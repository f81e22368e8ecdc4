package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// Error variables
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserReader defines read operations on user records.
type UserReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations on user records.
type UserWriter interface {
	Update(ctx context.Context, userID int64, username, email string) (int64, error)
	Delete(ctx context.Context, userID int64) (int64, error)
}

// UsersService handles user profiles. Updates and deletes require the
// caller to be the target user or an admin.
type UsersService struct {
	reader UserReader
	writer UserWriter
	events EventWriter
}

// NewUsersService creates a new UsersService instance.
func NewUsersService(reader UserReader, writer UserWriter, events EventWriter) *UsersService {
	return &UsersService{
		reader: reader,
		writer: writer,
		events: events,
	}
}

// List returns every user record. The admin-only check happens at the
// request boundary.
func (svc *UsersService) List(ctx context.Context) ([]models.UserDB, error) {
	return svc.reader.List(ctx)
}

// Get returns one user record.
func (svc *UsersService) Get(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update changes the username and email of the target user. The new
// values must not collide with another user's.
func (svc *UsersService) Update(ctx context.Context, callerID int64, callerRole string, targetID int64, username, email string) error {
	if callerID != targetID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		return ErrMissingFields
	}

	user, err := svc.reader.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Email != email {
		other, err := svc.reader.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if other != nil {
			return ErrEmailAlreadyExists
		}
	}

	if user.Username != username {
		other, err := svc.reader.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if other != nil {
			return ErrUsernameTaken
		}
	}

	rowsAffected, err := svc.writer.Update(ctx, targetID, username, email)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", targetID, "error", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes the target user; the store cascades their collection
// entries and reviews.
func (svc *UsersService) Delete(ctx context.Context, callerID int64, callerRole string, targetID int64) error {
	if callerID != targetID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	rowsAffected, err := svc.writer.Delete(ctx, targetID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", targetID, "error", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventUserDeleted,
		UserID:   callerID,
		EntityID: targetID,
	})

	return nil
}
