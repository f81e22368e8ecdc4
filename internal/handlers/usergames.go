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

// CollectionService defines the interface that the collections service must
// implement. All operations act on the authenticated caller's collection.
type CollectionService interface {
	List(ctx context.Context, callerID int64) ([]models.UserGameDetail, error)
	Add(ctx context.Context, callerID int64, gameID int64) (*models.UserGameDetail, error)
	Remove(ctx context.Context, callerID int64, gameID int64) error
}

// AddUserGameRequest represents the JSON body for adding a game to the
// caller's collection
// swagger:model AddUserGameRequest
type AddUserGameRequest struct {
	// Catalog game id
	// required: true
	GameID int64 `json:"gameId"`
}

// NewListUserGamesHandler returns an HTTP handler that lists the caller's
// collection.
// @Summary List the caller's collection
// @Tags usergames
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.UserGameDetail "Collection entries with game summaries"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/usergames [get]
func NewListUserGamesHandler(svc CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		entries, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if entries == nil {
			entries = []models.UserGameDetail{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(entries)
	}
}

// NewAddUserGameHandler returns an HTTP handler that adds a catalog game to
// the caller's collection.
// @Summary Add a game to the caller's collection
// @Tags usergames
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param addUserGameRequest body handlers.AddUserGameRequest true "Game to add"
// @Success 201 {object} models.UserGameDetail "Created collection entry"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Game not found"
// @Failure 409 {object} handlers.ErrorResponse "Game already in collection"
// @Router /api/usergames [post]
func NewAddUserGameHandler(svc CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		var req AddUserGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		entry, err := svc.Add(r.Context(), claims.UserID, req.GameID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrGameNotFound):
				writeError(w, http.StatusNotFound, "Game not found")
			case errors.Is(err, services.ErrAlreadyInCollection):
				writeError(w, http.StatusConflict, "Game already in collection")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}
}

// NewRemoveUserGameHandler returns an HTTP handler that removes a game from
// the caller's collection. The URL carries the game id, not the entry id.
// @Summary Remove a game from the caller's collection
// @Tags usergames
// @Security BearerAuth
// @Param gameId path int true "Catalog game id"
// @Success 204 "Removed"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Game not in collection"
// @Router /api/usergames/{gameId} [delete]
func NewRemoveUserGameHandler(svc CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		gameID, ok := pathID(w, r, "gameId")
		if !ok {
			return
		}

		if err := svc.Remove(r.Context(), claims.UserID, gameID); err != nil {
			switch {
			case errors.Is(err, services.ErrNotInCollection):
				writeError(w, http.StatusNotFound, "Game not in collection")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
