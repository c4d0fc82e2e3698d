package ports

import (
	"context"

	"github.com/stayease/marketplace-system/internal/core/domain"
)

// FavoritesRepository persists the per-user set of favorite listings.
type FavoritesRepository interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	ListIDs(ctx context.Context, userID string) ([]string, error)
}

// FavoriteService processes favorite toggle events.
type FavoriteService interface {
	Process(ctx context.Context, event domain.FavoriteEvent) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.Listing, error)
}
