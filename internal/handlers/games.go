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

// GameService defines the interface that the games service must implement.
type GameService interface {
	Create(ctx context.Context, callerID int64, game *models.GameDB) (*models.GameDB, error)
	List(ctx context.Context) ([]models.GameDetail, error)
	Get(ctx context.Context, gameID int64) (*models.GameDetail, error)
	Update(ctx context.Context, callerID int64, game *models.GameDB) error
	Delete(ctx context.Context, callerID int64, gameID int64) error
}

// GameRequest represents the JSON body for creating or updating a catalog game
// swagger:model GameRequest
type GameRequest struct {
	// Game id, must match the URL id on update
	GameID int64 `json:"gameId"`

	// Title
	// required: true
	Title string `json:"title"`

	// Platform
	// required: true
	Platform string `json:"platform"`

	// Release year
	ReleaseYear int `json:"releaseYear"`

	// Cover image URL
	ImageURL *string `json:"imageUrl"`

	// Collector rarity label
	Rarity *string `json:"rarity"`
}

// GameResponse represents a catalog game
// swagger:model GameResponse
type GameResponse struct {
	GameID      int64   `json:"gameId"`
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	ReleaseYear int     `json:"releaseYear"`
	ImageURL    *string `json:"imageUrl"`
	Rarity      *string `json:"rarity"`
}

// GameDetailResponse represents a catalog game with its reviews and collectors
// swagger:model GameDetailResponse
type GameDetailResponse struct {
	GameID      int64                     `json:"gameId"`
	Title       string                    `json:"title"`
	Platform    string                    `json:"platform"`
	ReleaseYear int                       `json:"releaseYear"`
	ImageURL    *string                   `json:"imageUrl"`
	Rarity      *string                   `json:"rarity"`
	Reviews     []models.ReviewWithAuthor `json:"reviews"`
	Collectors  []models.UserGameDetail   `json:"collectors"`
}

func toGameDetailResponse(d *models.GameDetail) GameDetailResponse {
	return GameDetailResponse{
		GameID:      d.GameID,
		Title:       d.Title,
		Platform:    d.Platform,
		ReleaseYear: d.ReleaseYear,
		ImageURL:    d.ImageURL,
		Rarity:      d.Rarity,
		Reviews:     d.Reviews,
		Collectors:  d.Collectors,
	}
}

// NewCreateGameHandler returns an HTTP handler that adds a game to the catalog.
// @Summary Create a catalog game
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param gameRequest body handlers.GameRequest true "Game to create"
// @Success 201 {object} handlers.GameResponse "Created game"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Admin role required"
// @Router /api/games [post]
func NewCreateGameHandler(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		var req GameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		game, err := svc.Create(r.Context(), claims.UserID, &models.GameDB{
			Title:       req.Title,
			Platform:    req.Platform,
			ReleaseYear: req.ReleaseYear,
			ImageURL:    req.ImageURL,
			Rarity:      req.Rarity,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "Title and platform are required")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(GameResponse{
			GameID:      game.GameID,
			Title:       game.Title,
			Platform:    game.Platform,
			ReleaseYear: game.ReleaseYear,
			ImageURL:    game.ImageURL,
			Rarity:      game.Rarity,
		})
	}
}

// NewListGamesHandler returns an HTTP handler that lists the catalog with
// reviews and collectors attached to every game.
// @Summary List catalog games
// @Tags games
// @Security BearerAuth
// @Produce json
// @Success 200 {array} handlers.GameDetailResponse "Catalog"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/games [get]
func NewListGamesHandler(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := make([]GameDetailResponse, 0, len(details))
		for i := range details {
			resp = append(resp, toGameDetailResponse(&details[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// NewGetGameHandler returns an HTTP handler for a single catalog game.
// @Summary Get a catalog game
// @Tags games
// @Security BearerAuth
// @Produce json
// @Param id path int true "Game id"
// @Success 200 {object} handlers.GameDetailResponse "Game with reviews and collectors"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Game not found"
// @Router /api/games/{id} [get]
func NewGetGameHandler(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrGameNotFound):
				writeError(w, http.StatusNotFound, "Game not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toGameDetailResponse(detail))
	}
}

// NewUpdateGameHandler returns an HTTP handler that replaces a catalog game.
// @Summary Update a catalog game
// @Tags games
// @Security BearerAuth
// @Accept json
// @Param id path int true "Game id"
// @Param gameRequest body handlers.GameRequest true "New game state"
// @Success 204 "Updated"
// @Failure 400 {object} handlers.ErrorResponse "Id mismatch / missing fields"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Admin role required"
// @Failure 404 {object} handlers.ErrorResponse "Game not found"
// @Router /api/games/{id} [put]
func NewUpdateGameHandler(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req GameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.GameID != id {
			writeError(w, http.StatusBadRequest, "URL id does not match game id")
			return
		}

		err := svc.Update(r.Context(), claims.UserID, &models.GameDB{
			GameID:      id,
			Title:       req.Title,
			Platform:    req.Platform,
			ReleaseYear: req.ReleaseYear,
			ImageURL:    req.ImageURL,
			Rarity:      req.Rarity,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "Title and platform are required")
			case errors.Is(err, services.ErrGameNotFound):
				writeError(w, http.StatusNotFound, "Game not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewDeleteGameHandler returns an HTTP handler that removes a catalog game
// together with its reviews and collection entries.
// @Summary Delete a catalog game
// @Tags games
// @Security BearerAuth
// @Param id path int true "Game id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Admin role required"
// @Failure 404 {object} handlers.ErrorResponse "Game not found"
// @Router /api/games/{id} [delete]
func NewDeleteGameHandler(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, id); err != nil {
			switch {
			case errors.Is(err, services.ErrGameNotFound):
				writeError(w, http.StatusNotFound, "Game not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
