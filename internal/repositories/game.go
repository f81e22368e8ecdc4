package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// GameReadRepository reads catalog entries.
type GameReadRepository struct {
	db *sqlx.DB
}

func NewGameReadRepository(db *sqlx.DB) *GameReadRepository {
	return &GameReadRepository{db: db}
}

func (r *GameReadRepository) GetByID(ctx context.Context, gameID int64) (*models.GameDB, error) {
	const query = `
		SELECT game_id, title, platform, release_year, image_url, rarity
		FROM games
		WHERE game_id = $1
	`

	var game models.GameDB
	err := r.db.GetContext(ctx, &game, query, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get game", "game_id", gameID, "error", err)
		return nil, err
	}

	return &game, nil
}

func (r *GameReadRepository) List(ctx context.Context) ([]models.GameDB, error) {
	const query = `
		SELECT game_id, title, platform, release_year, image_url, rarity
		FROM games
		ORDER BY game_id
	`

	games := []models.GameDB{}
	if err := r.db.SelectContext(ctx, &games, query); err != nil {
		logger.Log.Errorw("failed to list games", "error", err)
		return nil, err
	}

	return games, nil
}

// GameWriteRepository mutates catalog entries.
type GameWriteRepository struct {
	db *sqlx.DB
}

func NewGameWriteRepository(db *sqlx.DB) *GameWriteRepository {
	return &GameWriteRepository{db: db}
}

func (r *GameWriteRepository) Save(ctx context.Context, game *models.GameDB) (*models.GameDB, error) {
	const query = `
		INSERT INTO games (title, platform, release_year, image_url, rarity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING game_id, title, platform, release_year, image_url, rarity
	`

	var saved models.GameDB
	err := r.db.GetContext(ctx, &saved, query,
		game.Title, game.Platform, game.ReleaseYear, game.ImageURL, game.Rarity)
	if err != nil {
		logger.Log.Errorw("failed to save game", "title", game.Title, "error", err)
		return nil, err
	}

	return &saved, nil
}

// Update overwrites a game row. A zero rows-affected result means the
// row vanished between the caller's read and this write.
func (r *GameWriteRepository) Update(ctx context.Context, game *models.GameDB) (int64, error) {
	const query = `
		UPDATE games
		SET title = $2, platform = $3, release_year = $4, image_url = $5, rarity = $6
		WHERE game_id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		game.GameID, game.Title, game.Platform, game.ReleaseYear, game.ImageURL, game.Rarity)
	if err != nil {
		logger.Log.Errorw("failed to update game", "game_id", game.GameID, "error", err)
		return 0, err
	}

	return res.RowsAffected()
}

// Delete removes a game and, explicitly, its reviews and collection
// entries in one transaction. Returns the number of game rows removed.
func (r *GameWriteRepository) Delete(ctx context.Context, gameID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE game_id = $1`, gameID); err != nil {
		logger.Log.Errorw("failed to delete game reviews", "game_id", gameID, "error", err)
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_games WHERE game_id = $1`, gameID); err != nil {
		logger.Log.Errorw("failed to delete game collection entries", "game_id", gameID, "error", err)
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		logger.Log.Errorw("failed to delete game", "game_id", gameID, "error", err)
		return 0, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit game delete", "game_id", gameID, "error", err)
		return 0, err
	}

	return rowsAffected, nil
}
