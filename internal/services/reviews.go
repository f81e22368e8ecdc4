package services

import (
	"context"
	"errors"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// Error variables
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrForbidden      = errors.New("operation not allowed for this caller")
)

// ReviewReader defines read operations on reviews.
type ReviewReader interface {
	GetByID(ctx context.Context, reviewID int64) (*models.ReviewDB, error)
	GetDetail(ctx context.Context, reviewID int64) (*models.ReviewWithAuthor, error)
	List(ctx context.Context) ([]models.ReviewWithAuthor, error)
}

// ReviewWriter defines write operations on reviews.
type ReviewWriter interface {
	Save(ctx context.Context, userID, gameID int64, rating int, comment *string) (*models.ReviewDB, error)
	Update(ctx context.Context, reviewID int64, rating int, comment *string) (int64, error)
	Delete(ctx context.Context, reviewID int64) (int64, error)
}

// GameGetter checks that a referenced game exists.
type GameGetter interface {
	GetByID(ctx context.Context, gameID int64) (*models.GameDB, error)
}

// ReviewsService handles the review board. The author is always the
// caller; updates and deletes require the author or an admin.
type ReviewsService struct {
	reader ReviewReader
	writer ReviewWriter
	games  GameGetter
	cache  GameCache
	events EventWriter
}

// NewReviewsService creates a new ReviewsService instance.
func NewReviewsService(reader ReviewReader, writer ReviewWriter, games GameGetter, cache GameCache, events EventWriter) *ReviewsService {
	return &ReviewsService{
		reader: reader,
		writer: writer,
		games:  games,
		cache:  cache,
		events: events,
	}
}

// Create stores a review authored by the caller.
func (svc *ReviewsService) Create(ctx context.Context, callerID, gameID int64, rating int, comment *string) (*models.ReviewWithAuthor, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	game, err := svc.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	saved, err := svc.writer.Save(ctx, callerID, gameID, rating, comment)
	if err != nil {
		logger.Log.Errorw("failed to save review", "user_id", callerID, "game_id", gameID, "error", err)
		return nil, err
	}

	detail, err := svc.reader.GetDetail(ctx, saved.ReviewID)
	if err != nil {
		return nil, err
	}

	svc.invalidate(ctx, gameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventReviewCreated,
		UserID:   callerID,
		EntityID: saved.ReviewID,
		GameID:   gameID,
	})

	return detail, nil
}

// List returns every review projected with its author's username.
func (svc *ReviewsService) List(ctx context.Context) ([]models.ReviewWithAuthor, error) {
	return svc.reader.List(ctx)
}

// Get returns one review projected with its author's username.
func (svc *ReviewsService) Get(ctx context.Context, reviewID int64) (*models.ReviewWithAuthor, error) {
	review, err := svc.reader.GetDetail(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// Update changes a review's rating and comment and resets its
// publication timestamp. Only the author or an admin may update.
func (svc *ReviewsService) Update(ctx context.Context, callerID int64, callerRole string, reviewID int64, rating int, comment *string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	review, err := svc.reader.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}

	if review.UserID != callerID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	if _, err := svc.writer.Update(ctx, reviewID, rating, comment); err != nil {
		logger.Log.Errorw("failed to update review", "review_id", reviewID, "error", err)
		return err
	}

	svc.invalidate(ctx, review.GameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventReviewUpdated,
		UserID:   callerID,
		EntityID: reviewID,
		GameID:   review.GameID,
	})

	return nil
}

// Delete removes a review. Only the author or an admin may delete.
func (svc *ReviewsService) Delete(ctx context.Context, callerID int64, callerRole string, reviewID int64) error {
	review, err := svc.reader.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}

	if review.UserID != callerID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	if _, err := svc.writer.Delete(ctx, reviewID); err != nil {
		logger.Log.Errorw("failed to delete review", "review_id", reviewID, "error", err)
		return err
	}

	svc.invalidate(ctx, review.GameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventReviewDeleted,
		UserID:   callerID,
		EntityID: reviewID,
		GameID:   review.GameID,
	})

	return nil
}

func (svc *ReviewsService) invalidate(ctx context.Context, gameID int64) {
	if svc.cache == nil {
		return
	}
	_ = svc.cache.DeleteGame(ctx, gameID)
}
