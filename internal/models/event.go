package models

// Activity event types published by the services.
const (
	EventUserRegistered    = "user.registered"
	EventUserDeleted       = "user.deleted"
	EventGameCreated       = "game.created"
	EventGameUpdated       = "game.updated"
	EventGameDeleted       = "game.deleted"
	EventReviewCreated     = "review.created"
	EventReviewUpdated     = "review.updated"
	EventReviewDeleted     = "review.deleted"
	EventCollectionAdded   = "collection.added"
	EventCollectionRemoved = "collection.removed"
)

// Event is an activity record published to the event stream after a
// successful mutation. Publishing is fire-and-forget.
type Event struct {
	EventID   string `json:"event_id"`          // uuid
	Type      string `json:"type"`              // one of the Event* constants
	UserID    int64  `json:"user_id"`           // acting user
	EntityID  int64  `json:"entity_id"`         // id of the mutated entity
	GameID    int64  `json:"game_id,omitempty"` // related game, when relevant
	Timestamp int64  `json:"timestamp"`         // unix seconds
}
