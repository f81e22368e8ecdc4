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

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary Log in with email and password
// @Description Verifies credentials and returns a signed token with the user's identity.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "User login request"
// @Success 200 {object} handlers.AuthResponse "Token and public identity"
// @Failure 400 {object} handlers.AuthErrorResponse "Invalid request"
// @Failure 401 {object} handlers.AuthErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Invalid email or password",
				})
			case errors.Is(err, services.ErrMissingFields):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Email and password are required",
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
