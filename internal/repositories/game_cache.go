package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// GameCacheRepository stores game projections in Redis with a TTL.
// Reads come from here when warm; every game/review/collection mutation
// invalidates the key, the TTL bounds staleness for the rest.
type GameCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewGameCacheRepository(client *redis.Client, expiration time.Duration) *GameCacheRepository {
	return &GameCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func gameKey(gameID int64) string {
	return fmt.Sprintf("game_detail:%d", gameID)
}

// GetGame fetches the cached projection. A cache miss returns (nil, nil).
func (r *GameCacheRepository) GetGame(ctx context.Context, gameID int64) (*models.GameDetail, error) {
	val, err := r.client.Get(ctx, gameKey(gameID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to read game cache", "game_id", gameID, "error", err)
		return nil, err
	}

	var detail models.GameDetail
	if err := json.Unmarshal([]byte(val), &detail); err != nil {
		logger.Log.Errorw("failed to decode cached game", "game_id", gameID, "error", err)
		return nil, err
	}

	return &detail, nil
}

// SetGame caches the projection with the configured expiration.
func (r *GameCacheRepository) SetGame(ctx context.Context, detail *models.GameDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, gameKey(detail.GameID), data, r.exp).Err(); err != nil {
		logger.Log.Errorw("failed to write game cache", "game_id", detail.GameID, "error", err)
		return err
	}

	return nil
}

// DeleteGame drops the cached projection.
func (r *GameCacheRepository) DeleteGame(ctx context.Context, gameID int64) error {
	if err := r.client.Del(ctx, gameKey(gameID)).Err(); err != nil {
		logger.Log.Errorw("failed to invalidate game cache", "game_id", gameID, "error", err)
		return err
	}
	return nil
}
