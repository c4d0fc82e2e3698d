package domain

import "time"

// FavoriteAction is the toggle direction of a favorite event.
type FavoriteAction string

const (
	FavoriteAdd    FavoriteAction = "add"
	FavoriteRemove FavoriteAction = "remove"
)

// FavoriteEvent is a favorite/unfavorite toggle emitted by the UI. Events
// for the same listing are processed in order; redeliveries are dropped by
// the dedup layer.
type FavoriteEvent struct {
	UserID    string
	ListingID string
	Action    FavoriteAction
	Timestamp time.Time
}
