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

// ReviewService defines the interface that the reviews service must implement.
type ReviewService interface {
	Create(ctx context.Context, callerID int64, gameID int64, rating int, comment *string) (*models.ReviewWithAuthor, error)
	List(ctx context.Context) ([]models.ReviewWithAuthor, error)
	Get(ctx context.Context, reviewID int64) (*models.ReviewWithAuthor, error)
	Update(ctx context.Context, callerID int64, callerRole string, reviewID int64, rating int, comment *string) error
	Delete(ctx context.Context, callerID int64, callerRole string, reviewID int64) error
}

// CreateReviewRequest represents the JSON body for publishing a review
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	// Reviewed game id
	// required: true
	GameID int64 `json:"gameId"`

	// Rating, 1 to 5
	// required: true
	Rating int `json:"rating"`

	// Free-form comment
	Comment *string `json:"comment"`
}

// UpdateReviewRequest represents the JSON body for editing a review
// swagger:model UpdateReviewRequest
type UpdateReviewRequest struct {
	// Review id, must match the URL id
	ReviewID int64 `json:"reviewId"`

	// Rating, 1 to 5
	// required: true
	Rating int `json:"rating"`

	// Free-form comment
	Comment *string `json:"comment"`
}

// NewCreateReviewHandler returns an HTTP handler that publishes a review.
// @Summary Publish a review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param createReviewRequest body handlers.CreateReviewRequest true "Review to publish"
// @Success 200 {object} models.ReviewWithAuthor "Published review with author username"
// @Failure 400 {object} handlers.ErrorResponse "Rating out of range / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Game not found"
// @Router /api/reviews [post]
func NewCreateReviewHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		var req CreateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		review, err := svc.Create(r.Context(), claims.UserID, req.GameID, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRating):
				writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			case errors.Is(err, services.ErrGameNotFound):
				writeError(w, http.StatusNotFound, "Game not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(review)
	}
}

// NewListReviewsHandler returns an HTTP handler that lists all reviews.
// @Summary List reviews
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ReviewWithAuthor "All reviews"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/reviews [get]
func NewListReviewsHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if reviews == nil {
			reviews = []models.ReviewWithAuthor{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(reviews)
	}
}

// NewGetReviewHandler returns an HTTP handler for a single review.
// @Summary Get a review
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path int true "Review id"
// @Success 200 {object} models.ReviewWithAuthor "Review with author username"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Review not found"
// @Router /api/reviews/{id} [get]
func NewGetReviewHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		review, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrReviewNotFound):
				writeError(w, http.StatusNotFound, "Review not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(review)
	}
}

// NewUpdateReviewHandler returns an HTTP handler that edits a review. Only
// the author or an admin may edit; editing resets the publication timestamp.
// @Summary Update a review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Param id path int true "Review id"
// @Param updateReviewRequest body handlers.UpdateReviewRequest true "New review state"
// @Success 204 "Updated"
// @Failure 400 {object} handlers.ErrorResponse "Id mismatch / rating out of range"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the author"
// @Failure 404 {object} handlers.ErrorResponse "Review not found"
// @Router /api/reviews/{id} [put]
func NewUpdateReviewHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(w, r)
		if claims == nil {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req UpdateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ReviewID != id {
			writeError(w, http.StatusBadRequest, "URL id does not match review id")
			return
		}

		err := svc.Update(r.Context(), claims.UserID, claims.Role, id, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRating):
				writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Insufficient permissions")
			case errors.Is(err, services.ErrReviewNotFound):
				writeError(w, http.StatusNotFound, "Review not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewDeleteReviewHandler returns an HTTP handler that removes a review.
// Only the author or an admin may delete.
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param id path int true "Review id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the author"
// @Failure 404 {object} handlers.ErrorResponse "Review not found"
// @Router /api/reviews/{id} [delete]
func NewDeleteReviewHandler(svc ReviewService) http.HandlerFunc {
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
			case errors.Is(err, services.ErrReviewNotFound):
				writeError(w, http.StatusNotFound, "Review not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
