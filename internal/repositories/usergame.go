package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// ErrDuplicateEntry reports a violated UNIQUE (user_id, game_id)
// constraint on inserts that raced past the existence check.
var ErrDuplicateEntry = errors.New("collection entry already exists")

// UserGameReadRepository reads collection entries. Projections join the
// owner's username and the game's title, platform and image.
type UserGameReadRepository struct {
	db *sqlx.DB
}

func NewUserGameReadRepository(db *sqlx.DB) *UserGameReadRepository {
	return &UserGameReadRepository{db: db}
}

func (r *UserGameReadRepository) GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.UserGameDB, error) {
	const query = `
		SELECT user_game_id, user_id, game_id, personal_rating, added_at
		FROM user_games
		WHERE user_id = $1 AND game_id = $2
	`

	var entry models.UserGameDB
	err := r.db.GetContext(ctx, &entry, query, userID, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get collection entry", "user_id", userID, "game_id", gameID, "error", err)
		return nil, err
	}

	return &entry, nil
}

func (r *UserGameReadRepository) GetDetail(ctx context.Context, userGameID int64) (*models.UserGameDetail, error) {
	const query = `
		SELECT ug.user_game_id, ug.user_id, u.username, ug.game_id,
		       g.title, g.platform, g.image_url, ug.personal_rating, ug.added_at
		FROM user_games ug
		JOIN users u ON u.user_id = ug.user_id
		JOIN games g ON g.game_id = ug.game_id
		WHERE ug.user_game_id = $1
	`

	var entry models.UserGameDetail
	err := r.db.GetContext(ctx, &entry, query, userGameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get collection entry detail", "user_game_id", userGameID, "error", err)
		return nil, err
	}

	return &entry, nil
}

func (r *UserGameReadRepository) List(ctx context.Context) ([]models.UserGameDetail, error) {
	const query = `
		SELECT ug.user_game_id, ug.user_id, u.username, ug.game_id,
		       g.title, g.platform, g.image_url, ug.personal_rating, ug.added_at
		FROM user_games ug
		JOIN users u ON u.user_id = ug.user_id
		JOIN games g ON g.game_id = ug.game_id
		ORDER BY ug.user_game_id
	`

	entries := []models.UserGameDetail{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		logger.Log.Errorw("failed to list collection entries", "error", err)
		return nil, err
	}

	return entries, nil
}

func (r *UserGameReadRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserGameDetail, error) {
	const query = `
		SELECT ug.user_game_id, ug.user_id, u.username, ug.game_id,
		       g.title, g.platform, g.image_url, ug.personal_rating, ug.added_at
		FROM user_games ug
		JOIN users u ON u.user_id = ug.user_id
		JOIN games g ON g.game_id = ug.game_id
		WHERE ug.user_id = $1
		ORDER BY ug.added_at
	`

	entries := []models.UserGameDetail{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		logger.Log.Errorw("failed to list collection", "user_id", userID, "error", err)
		return nil, err
	}

	return entries, nil
}

func (r *UserGameReadRepository) ListByGame(ctx context.Context, gameID int64) ([]models.UserGameDetail, error) {
	const query = `
		SELECT ug.user_game_id, ug.user_id, u.username, ug.game_id,
		       g.title, g.platform, g.image_url, ug.personal_rating, ug.added_at
		FROM user_games ug
		JOIN users u ON u.user_id = ug.user_id
		JOIN games g ON g.game_id = ug.game_id
		WHERE ug.game_id = $1
		ORDER BY ug.added_at
	`

	entries := []models.UserGameDetail{}
	if err := r.db.SelectContext(ctx, &entries, query, gameID); err != nil {
		logger.Log.Errorw("failed to list collectors", "game_id", gameID, "error", err)
		return nil, err
	}

	return entries, nil
}

// UserGameWriteRepository mutates collection entries.
type UserGameWriteRepository struct {
	db *sqlx.DB
}

func NewUserGameWriteRepository(db *sqlx.DB) *UserGameWriteRepository {
	return &UserGameWriteRepository{db: db}
}

// Save inserts a collection entry with a null personal rating.
func (r *UserGameWriteRepository) Save(ctx context.Context, userID, gameID int64) (*models.UserGameDB, error) {
	const query = `
		INSERT INTO user_games (user_id, game_id, added_at)
		VALUES ($1, $2, NOW())
		RETURNING user_game_id, user_id, game_id, personal_rating, added_at
	`

	var entry models.UserGameDB
	if err := r.db.GetContext(ctx, &entry, query, userID, gameID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEntry
		}
		logger.Log.Errorw("failed to save collection entry", "user_id", userID, "game_id", gameID, "error", err)
		return nil, err
	}

	return &entry, nil
}

func (r *UserGameWriteRepository) Delete(ctx context.Context, userID, gameID int64) (int64, error) {
	const query = `DELETE FROM user_games WHERE user_id = $1 AND game_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, gameID)
	if err != nil {
		logger.Log.Errorw("failed to delete collection entry", "user_id", userID, "game_id", gameID, "error", err)
		return 0, err
	}

	return res.RowsAffected()
}
