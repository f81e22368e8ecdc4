package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// UserReadRepository reads user records. All Get methods return
// (nil, nil) when no row matches.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get user by id", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "error", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get user by username", "username", username, "error", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		ORDER BY user_id
	`

	users := []models.UserDB{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}

	return users, nil
}

// UserWriteRepository mutates user records. Delete removes the user's
// reviews and collection entries in the same transaction: the cascade
// is owned by the store, not by the entity.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash, role string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING user_id, username, email, password_hash, role, created_at
	`

	var user models.UserDB
	if err := r.db.GetContext(ctx, &user, query, username, email, passwordHash, role); err != nil {
		logger.Log.Errorw("failed to save user", "username", username, "error", err)
		return nil, err
	}

	return &user, nil
}

// Update changes the username and email of a user. Returns the number
// of rows affected (zero when the user no longer exists).
func (r *UserWriteRepository) Update(ctx context.Context, userID int64, username, email string) (int64, error) {
	const query = `
		UPDATE users
		SET username = $2, email = $3
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, username, email)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "error", err)
		return 0, err
	}

	return res.RowsAffected()
}

// Delete removes a user and, explicitly, every review and collection
// entry referencing them. Returns the number of user rows removed.
func (r *UserWriteRepository) Delete(ctx context.Context, userID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE user_id = $1`, userID); err != nil {
		logger.Log.Errorw("failed to delete user reviews", "user_id", userID, "error", err)
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_games WHERE user_id = $1`, userID); err != nil {
		logger.Log.Errorw("failed to delete user collection", "user_id", userID, "error", err)
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "error", err)
		return 0, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit user delete", "user_id", userID, "error", err)
		return 0, err
	}

	return rowsAffected, nil
}
