package models

// GameDB represents a catalog entry in the database.
type GameDB struct {
	GameID      int64   `db:"game_id"`      // Primary key
	Title       string  `db:"title"`        // Required
	Platform    string  `db:"platform"`     // Required
	ReleaseYear int     `db:"release_year"` // Original release year
	ImageURL    *string `db:"image_url"`    // Optional cover image
	Rarity      *string `db:"rarity"`       // Optional rarity tag
}

// GameDetail is the read projection of a game: the catalog entry plus
// its reviews and the collections it appears in.
type GameDetail struct {
	GameDB
	Reviews    []ReviewWithAuthor `json:"reviews"`
	Collectors []UserGameDetail   `json:"collectors"`
}
