package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gamecollect/backend/internal/logger"
)

// schema is the full DDL for the service. Statements are idempotent so
// the migration can run on every boot when enabled.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       BIGSERIAL PRIMARY KEY,
	username      VARCHAR(100) NOT NULL,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role          VARCHAR(50) NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS games (
	game_id      BIGSERIAL PRIMARY KEY,
	title        VARCHAR(255) NOT NULL,
	platform     VARCHAR(100) NOT NULL,
	release_year INT NOT NULL DEFAULT 0,
	image_url    TEXT,
	rarity       VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS user_games (
	user_game_id    BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	game_id         BIGINT NOT NULL REFERENCES games (game_id) ON DELETE CASCADE,
	personal_rating INT,
	added_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, game_id)
);

CREATE TABLE IF NOT EXISTS reviews (
	review_id    BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	game_id      BIGINT NOT NULL REFERENCES games (game_id) ON DELETE CASCADE,
	rating       INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment      TEXT,
	published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reviews_game_id ON reviews (game_id);
CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews (user_id);
CREATE INDEX IF NOT EXISTS idx_user_games_game_id ON user_games (game_id);
`

// Migrate applies the schema to the database.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	logger.Log.Info("database schema migrated")
	return nil
}
