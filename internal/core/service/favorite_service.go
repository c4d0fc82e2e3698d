package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID, listingID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID, listingID, action string, ts time.Time) error
}

type favoriteService struct {
	favorites ports.FavoritesRepository
	listings  ports.ListingRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewFavoriteService returns a FavoriteService implementation.
func NewFavoriteService(
	favorites ports.FavoritesRepository,
	listings ports.ListingRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.FavoriteService {
	return &favoriteService{
		favorites: favorites,
		listings:  listings,
		dedup:     dedup,
		log:       log,
	}
}

// Process validates, deduplicates, and applies a single favorite toggle.
func (s *favoriteService) Process(ctx context.Context, in domain.FavoriteEvent) error {
	// Idempotency check: silently skip redeliveries.
	isDup, err := s.dedup.IsDuplicate(ctx, in.UserID, in.ListingID, string(in.Action), in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("listing_id", in.ListingID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("listing_id", in.ListingID).Str("action", string(in.Action)).Msg("duplicate favorite event skipped")
		return nil
	}

	// The listing must exist before a toggle is applied.
	if _, err := s.listings.FindByID(ctx, in.ListingID); err != nil {
		return fmt.Errorf("process favorite: %w", err)
	}

	// Mark before writing so redeliveries during a retry are dropped.
	if markErr := s.dedup.Mark(ctx, in.UserID, in.ListingID, string(in.Action), in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("listing_id", in.ListingID).Msg("failed to set dedup key")
	}

	switch in.Action {
	case domain.FavoriteAdd:
		err = s.favorites.Add(ctx, in.UserID, in.ListingID)
	case domain.FavoriteRemove:
		err = s.favorites.Remove(ctx, in.UserID, in.ListingID)
	default:
		return fmt.Errorf("process favorite: unknown action %q", in.Action)
	}
	if err != nil {
		return fmt.Errorf("process favorite: %w", err)
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("listing_id", in.ListingID).
		Str("action", string(in.Action)).
		Msg("favorite event processed")

	return nil
}

// ListFavorites resolves a user's favorite ids into full listings. Listings
// removed from the catalog since being favorited are skipped.
func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]*domain.Listing, error) {
	ids, err := s.favorites.ListIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]*domain.Listing, 0, len(ids))
	for _, id := range ids {
		listing, err := s.listings.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				continue
			}
			return nil, fmt.Errorf("list favorites: %w", err)
		}
		out = append(out, listing)
	}
	return out, nil
}
