package models

import (
	"time"
)

// ReviewDB represents a review record in the database.
type ReviewDB struct {
	ReviewID    int64     `db:"review_id"`    // Primary key
	UserID      int64     `db:"user_id"`      // Author
	GameID      int64     `db:"game_id"`      // Reviewed game
	Rating      int       `db:"rating"`       // 1..5
	Comment     *string   `db:"comment"`      // Optional text
	PublishedAt time.Time `db:"published_at"` // Reset on every update
}

// ReviewWithAuthor is a review projected with its author's username.
type ReviewWithAuthor struct {
	ReviewID    int64     `db:"review_id" json:"reviewId"`
	UserID      int64     `db:"user_id" json:"userId"`
	Username    string    `db:"username" json:"username"`
	GameID      int64     `db:"game_id" json:"gameId"`
	Rating      int       `db:"rating" json:"rating"`
	Comment     *string   `db:"comment" json:"comment"`
	PublishedAt time.Time `db:"published_at" json:"publishedAt"`
}
