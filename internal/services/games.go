package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// ErrGameNotFound is returned when a referenced game does not exist,
// including when a concurrent delete removed it mid-update.
var ErrGameNotFound = errors.New("game not found")

// GameReader defines read operations on the catalog.
type GameReader interface {
	GetByID(ctx context.Context, gameID int64) (*models.GameDB, error)
	List(ctx context.Context) ([]models.GameDB, error)
}

// GameWriter defines write operations on the catalog.
type GameWriter interface {
	Save(ctx context.Context, game *models.GameDB) (*models.GameDB, error)
	Update(ctx context.Context, game *models.GameDB) (int64, error)
	Delete(ctx context.Context, gameID int64) (int64, error)
}

// ReviewLister lists reviews for projections.
type ReviewLister interface {
	List(ctx context.Context) ([]models.ReviewWithAuthor, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.ReviewWithAuthor, error)
}

// CollectionLister lists collection entries for projections.
type CollectionLister interface {
	List(ctx context.Context) ([]models.UserGameDetail, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.UserGameDetail, error)
}

// GameCache caches game projections. May be nil, in which case every
// read goes to the store.
type GameCache interface {
	GetGame(ctx context.Context, gameID int64) (*models.GameDetail, error)
	SetGame(ctx context.Context, detail *models.GameDetail) error
	DeleteGame(ctx context.Context, gameID int64) error
}

// GamesService handles the game catalog.
type GamesService struct {
	reader     GameReader
	writer     GameWriter
	reviews    ReviewLister
	collection CollectionLister
	cache      GameCache
	events     EventWriter
}

// NewGamesService creates a new GamesService instance.
func NewGamesService(
	reader GameReader,
	writer GameWriter,
	reviews ReviewLister,
	collection CollectionLister,
	cache GameCache,
	events EventWriter,
) *GamesService {
	return &GamesService{
		reader:     reader,
		writer:     writer,
		reviews:    reviews,
		collection: collection,
		cache:      cache,
		events:     events,
	}
}

// Create stores a new catalog entry. Title and platform are required.
func (svc *GamesService) Create(ctx context.Context, callerID int64, game *models.GameDB) (*models.GameDB, error) {
	if strings.TrimSpace(game.Title) == "" || strings.TrimSpace(game.Platform) == "" {
		return nil, ErrMissingFields
	}

	saved, err := svc.writer.Save(ctx, game)
	if err != nil {
		logger.Log.Errorw("failed to create game", "title", game.Title, "error", err)
		return nil, err
	}

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventGameCreated,
		UserID:   callerID,
		EntityID: saved.GameID,
		GameID:   saved.GameID,
	})

	return saved, nil
}

// List returns every game projected with its reviews and collection
// memberships.
func (svc *GamesService) List(ctx context.Context) ([]models.GameDetail, error) {
	games, err := svc.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	reviews, err := svc.reviews.List(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := svc.collection.List(ctx)
	if err != nil {
		return nil, err
	}

	reviewsByGame := make(map[int64][]models.ReviewWithAuthor)
	for _, r := range reviews {
		reviewsByGame[r.GameID] = append(reviewsByGame[r.GameID], r)
	}
	entriesByGame := make(map[int64][]models.UserGameDetail)
	for _, e := range entries {
		entriesByGame[e.GameID] = append(entriesByGame[e.GameID], e)
	}

	details := make([]models.GameDetail, 0, len(games))
	for _, g := range games {
		details = append(details, models.GameDetail{
			GameDB:     g,
			Reviews:    orEmptyReviews(reviewsByGame[g.GameID]),
			Collectors: orEmptyEntries(entriesByGame[g.GameID]),
		})
	}

	return details, nil
}

// Get returns one game projection, served from the cache when warm.
func (svc *GamesService) Get(ctx context.Context, gameID int64) (*models.GameDetail, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.GetGame(ctx, gameID); err == nil && cached != nil {
			return cached, nil
		}
	}

	game, err := svc.reader.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	reviews, err := svc.reviews.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	entries, err := svc.collection.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	detail := &models.GameDetail{
		GameDB:     *game,
		Reviews:    orEmptyReviews(reviews),
		Collectors: orEmptyEntries(entries),
	}

	if svc.cache != nil {
		// Cache failures only cost the next read a store round trip.
		_ = svc.cache.SetGame(ctx, detail)
	}

	return detail, nil
}

// Update overwrites a catalog entry. Returns ErrGameNotFound when the
// row vanished between the caller's read and this write.
func (svc *GamesService) Update(ctx context.Context, callerID int64, game *models.GameDB) error {
	if strings.TrimSpace(game.Title) == "" || strings.TrimSpace(game.Platform) == "" {
		return ErrMissingFields
	}

	rowsAffected, err := svc.writer.Update(ctx, game)
	if err != nil {
		logger.Log.Errorw("failed to update game", "game_id", game.GameID, "error", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrGameNotFound
	}

	svc.invalidate(ctx, game.GameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventGameUpdated,
		UserID:   callerID,
		EntityID: game.GameID,
		GameID:   game.GameID,
	})

	return nil
}

// Delete removes a catalog entry; the store cascades its reviews and
// collection entries.
func (svc *GamesService) Delete(ctx context.Context, callerID, gameID int64) error {
	rowsAffected, err := svc.writer.Delete(ctx, gameID)
	if err != nil {
		logger.Log.Errorw("failed to delete game", "game_id", gameID, "error", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrGameNotFound
	}

	svc.invalidate(ctx, gameID)

	publishEvent(ctx, svc.events, models.Event{
		Type:     models.EventGameDeleted,
		UserID:   callerID,
		EntityID: gameID,
		GameID:   gameID,
	})

	return nil
}

func (svc *GamesService) invalidate(ctx context.Context, gameID int64) {
	if svc.cache == nil {
		return
	}
	_ = svc.cache.DeleteGame(ctx, gameID)
}

func orEmptyReviews(reviews []models.ReviewWithAuthor) []models.ReviewWithAuthor {
	if reviews == nil {
		return []models.ReviewWithAuthor{}
	}
	return reviews
}

func orEmptyEntries(entries []models.UserGameDetail) []models.UserGameDetail {
	if entries == nil {
		return []models.UserGameDetail{}
	}
	return entries
}
