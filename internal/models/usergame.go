package models

import (
	"time"
)

// UserGameDB represents a collection entry: one game owned by one user.
// The (user_id, game_id) pair is unique in storage.
type UserGameDB struct {
	UserGameID     int64     `db:"user_game_id"`    // Primary key
	UserID         int64     `db:"user_id"`         // Owner
	GameID         int64     `db:"game_id"`         // Collected game
	PersonalRating *int      `db:"personal_rating"` // Optional 1..5, null on insert
	AddedAt        time.Time `db:"added_at"`        // When the game was added
}

// UserGameDetail is a collection entry projected with the owner's
// username and the game's title, platform and image.
type UserGameDetail struct {
	UserGameID     int64     `db:"user_game_id" json:"userGameId"`
	UserID         int64     `db:"user_id" json:"userId"`
	Username       string    `db:"username" json:"username"`
	GameID         int64     `db:"game_id" json:"gameId"`
	Title          string    `db:"title" json:"title"`
	Platform       string    `db:"platform" json:"platform"`
	ImageURL       *string   `db:"image_url" json:"imageUrl"`
	PersonalRating *int      `db:"personal_rating" json:"personalRating"`
	AddedAt        time.Time `db:"added_at" json:"addedAt"`
}
