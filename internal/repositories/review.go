package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// ReviewReadRepository reads reviews, plain or joined with the author's
// username for response projections.
type ReviewReadRepository struct {
	db *sqlx.DB
}

func NewReviewReadRepository(db *sqlx.DB) *ReviewReadRepository {
	return &ReviewReadRepository{db: db}
}

func (r *ReviewReadRepository) GetByID(ctx context.Context, reviewID int64) (*models.ReviewDB, error) {
	const query = `
		SELECT review_id, user_id, game_id, rating, comment, published_at
		FROM reviews
		WHERE review_id = $1
	`

	var review models.ReviewDB
	err := r.db.GetContext(ctx, &review, query, reviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get review", "review_id", reviewID, "error", err)
		return nil, err
	}

	return &review, nil
}

func (r *ReviewReadRepository) GetDetail(ctx context.Context, reviewID int64) (*models.ReviewWithAuthor, error) {
	const query = `
		SELECT r.review_id, r.user_id, u.username, r.game_id, r.rating, r.comment, r.published_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.review_id = $1
	`

	var review models.ReviewWithAuthor
	err := r.db.GetContext(ctx, &review, query, reviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get review detail", "review_id", reviewID, "error", err)
		return nil, err
	}

	return &review, nil
}

func (r *ReviewReadRepository) List(ctx context.Context) ([]models.ReviewWithAuthor, error) {
	const query = `
		SELECT r.review_id, r.user_id, u.username, r.game_id, r.rating, r.comment, r.published_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		ORDER BY r.review_id
	`

	reviews := []models.ReviewWithAuthor{}
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		logger.Log.Errorw("failed to list reviews", "error", err)
		return nil, err
	}

	return reviews, nil
}

func (r *ReviewReadRepository) ListByGame(ctx context.Context, gameID int64) ([]models.ReviewWithAuthor, error) {
	const query = `
		SELECT r.review_id, r.user_id, u.username, r.game_id, r.rating, r.comment, r.published_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.game_id = $1
		ORDER BY r.review_id
	`

	reviews := []models.ReviewWithAuthor{}
	if err := r.db.SelectContext(ctx, &reviews, query, gameID); err != nil {
		logger.Log.Errorw("failed to list reviews for game", "game_id", gameID, "error", err)
		return nil, err
	}

	return reviews, nil
}

// ReviewWriteRepository mutates reviews.
type ReviewWriteRepository struct {
	db *sqlx.DB
}

func NewReviewWriteRepository(db *sqlx.DB) *ReviewWriteRepository {
	return &ReviewWriteRepository{db: db}
}

func (r *ReviewWriteRepository) Save(ctx context.Context, userID, gameID int64, rating int, comment *string) (*models.ReviewDB, error) {
	const query = `
		INSERT INTO reviews (user_id, game_id, rating, comment, published_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING review_id, user_id, game_id, rating, comment, published_at
	`

	var review models.ReviewDB
	if err := r.db.GetContext(ctx, &review, query, userID, gameID, rating, comment); err != nil {
		logger.Log.Errorw("failed to save review", "user_id", userID, "game_id", gameID, "error", err)
		return nil, err
	}

	return &review, nil
}

// Update changes the rating and comment and resets the publication
// timestamp. Returns the number of rows affected.
func (r *ReviewWriteRepository) Update(ctx context.Context, reviewID int64, rating int, comment *string) (int64, error) {
	const query = `
		UPDATE reviews
		SET rating = $2, comment = $3, published_at = NOW()
		WHERE review_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, reviewID, rating, comment)
	if err != nil {
		logger.Log.Errorw("failed to update review", "review_id", reviewID, "error", err)
		return 0, err
	}

	return res.RowsAffected()
}

func (r *ReviewWriteRepository) Delete(ctx context.Context, reviewID int64) (int64, error) {
	const query = `DELETE FROM reviews WHERE review_id = $1`

	res, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		logger.Log.Errorw("failed to delete review", "review_id", reviewID, "error", err)
		return 0, err
	}

	return res.RowsAffected()
}
