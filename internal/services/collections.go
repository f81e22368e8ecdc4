package services

import (
	"context"
	"errors"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
	"github.com/gamecollect/backend/internal/repositories"
)

// Error variables
var (
	ErrAlreadyInCollection = errors.New("game already in collection")
	ErrNotInCollection     = errors.New("game not in collection")
)

// UserGameReader defines read operations on collection entries.
type UserGameReader interface {
	GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.UserGameDB, error)
	GetDetail(ctx context.Context, userGameID int64) (*models.UserGameDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]models.UserGameDetail, error)
}

// UserGameWriter defines write operations on collection entries.
type UserGameWriter interface {
	Save(ctx context.Context, userID, gameID int64) (*models.UserGameDB, error)
	Delete(ctx context.Context, userID, gameID int64) (int64, error)
}

// CollectionsService handles a caller's personal game collection. Every
// operation is scoped to the caller id; no other user's entries are
// reachable through it.
type CollectionsService struct {
	reader UserGameReader
	writer UserGameWriter
	games  GameGetter
	cache  GameCache
	events EventWriter
}

// NewCollectionsService creates a new CollectionsService instance.
func NewCollectionsService(reader UserGameReader, writer UserGameWriter, games GameGetter, cache GameCache, events EventWriter) *CollectionsService {
	return &CollectionsService{
		reader: reader,
		writer: writer,
		games:  games,
		cache:  cache,
		events: events,
	}
}

// List returns the caller's collection entries, each projected with the
// game's title, platform and image.
func (svc *CollectionsService) List(ctx context.Context, callerID int64) ([]models.UserGameDetail, error) {
	return svc.reader.ListByUser(ctx, callerID)
}

// Add puts a game into the caller's collection with a null personal
// rating. At most one entry per (user, game) pair.
func (svc *CollectionsService) Add(ctx context.Context, callerID, gameID int64) (*models.UserGameDetail, error) {
	game, err := svc.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	existing, err := svc.reader.GetByUserAndGame(ctx, callerID, gameID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInCollection
	}

	saved, err := svc.writer.Save(ctx, callerID, gameID)
	if err != nil {
		// A concurrent Add can win between the existence check and the
		// insert; the unique constraint still reports it as a duplicate.
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, ErrAlreadyInCollection
		}
		logger.Log.Errorw("failed to add collection entry", "user_id", callerID, "game_id", gameID, "error", err)
		return nil, err
	}

	detail, err := svc.reader.GetDetail(ctx, saved.UserGameID)
	if err != nil {
		return nil, err
	}

	svc.invalidate(ctx, gameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventCollectionAdded,
		UserID:   callerID,
		EntityID: saved.UserGameID,
		GameID:   gameID,
	})

	return detail, nil
}

// Remove takes a game out of the caller's collection.
func (svc *CollectionsService) Remove(ctx context.Context, callerID, gameID int64) error {
	rowsAffected, err := svc.writer.Delete(ctx, callerID, gameID)
	if err != nil {
		logger.Log.Errorw("failed to remove collection entry", "user_id", callerID, "game_id", gameID, "error", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrNotInCollection
	}

	svc.invalidate(ctx, gameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:   models.EventCollectionRemoved,
		UserID: callerID,
		GameID: gameID,
	})

	return nil
}

func (svc *CollectionsService) invalidate(ctx context.Context, gameID int64) {
	if svc.cache == nil {
		return
	}
	_ = svc.cache.DeleteGame(ctx, gameID)
}
