package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gamecollect/backend/internal/jwt"
	"github.com/gamecollect/backend/internal/middlewares"
)

// ErrorResponse represents a generic error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// callerClaims extracts the authenticated identity stored by the auth
// middleware. Writes a 401 and returns nil when the request carries none.
func callerClaims(w http.ResponseWriter, r *http.Request) *jwt.Claims {
	claims := middlewares.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return claims
}

// pathID parses the named chi URL parameter as an int64 id.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
