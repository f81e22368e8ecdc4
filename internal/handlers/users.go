package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
	"github.com/gamecollect/backend/internal/services"
)

// UserService defines the interface that the users service must implement.
type UserService interface {
	List(ctx context.Context) ([]models.UserDB, error)
	Get(ctx context.Context, userID int64) (*models.UserDB, error)
	Update(ctx context.Context, callerID int64, callerRole string, targetID int64, username, email string) error
	Delete(ctx context.Context, callerID int64, callerRole string, targetID int64) error
}

// UserResponse represents a user's public profile
// swagger:model UserResponse
type UserResponse struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateUserRequest represents the JSON body for updating a profile
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// Username
	// required: true
	Username string `json:"username"`

	// Email
	// required: true
	Email string `json:"email"`
}

func toUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewListUsersHandler returns an HTTP handler that lists all accounts.
// Admin only.
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} handlers.UserResponse "All accounts"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Admin role required"
// @Router /api/users [get]
func NewListUsersHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}
		if claims.Role != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// NewGetUserHandler returns an HTTP handler for a single account profile.
// @Summary Get a user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.UserResponse "Public profile"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/users/{id} [get]
func NewGetUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toUserResponse(user))
	}
}

// NewUpdateUserHandler returns an HTTP handler that updates a profile.
// Callers may update themselves; admins may update anyone.
// @Summary Update a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Param id path int true "User id"
// @Param updateUserRequest body handlers.UpdateUserRequest true "New profile state"
// @Success 204 "Updated"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the account owner"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Username or email taken"
// @Router /api/users/{id} [put]
func NewUpdateUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := svc.Update(r.Context(), claims.UserID, claims.Role, id, req.Username, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "Username and email are required")
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Insufficient permissions")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrEmailAlreadyExists):
				writeError(w, http.StatusConflict, "Email already registered")
			case errors.Is(err, services.ErrUsernameTaken):
				writeError(w, http.StatusConflict, "Username already taken")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewDeleteUserHandler returns an HTTP handler that deletes an account with
// its reviews and collection. Callers may delete themselves; admins anyone.
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the account owner"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/users/{id} [delete]
func NewDeleteUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, claims.Role, id); err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Insufficient permissions")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
