package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
	"github.com/gamecollect/backend/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResult, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// AuthResponse represents a successful registration or login response
// swagger:model AuthResponse
type AuthResponse struct {
	// Signed identity token
	Token string `json:"token"`

	// User id
	UserID int64 `json:"userId"`

	// Username
	Username string `json:"username"`

	// Role, "user" or "admin"
	Role string `json:"role"`
}

// AuthErrorResponse represents an error response for auth endpoints
// swagger:model AuthErrorResponse
type AuthErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user account with role "user", hashes the password and returns a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.AuthResponse "Token and public identity"
// @Failure 400 {object} handlers.AuthErrorResponse "Missing fields / invalid request"
// @Failure 409 {object} handlers.AuthErrorResponse "Email already registered"
// @Router /api/auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		result, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Email already registered",
				})
			case errors.Is(err, services.ErrMissingFields):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Username, email and password are required",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AuthResponse{
			Token:    result.Token,
			UserID:   result.UserID,
			Username: result.Username,
			Role:     result.Role,
		})
	}
}
