package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type listingService struct {
	repo ports.ListingRepository
	log  zerolog.Logger
}

// NewListingService returns a ListingService implementation over the given
// catalog repository.
func NewListingService(repo ports.ListingRepository, log zerolog.Logger) ports.ListingService {
	return &listingService{repo: repo, log: log}
}

// Create publishes a new listing for a host.
func (s *listingService) Create(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	listing := &domain.Listing{
		ID:            uuid.NewString(),
		HostID:        input.HostID,
		Title:         input.Title,
		Location:      input.Location,
		PricePerNight: input.PricePerNight,
		Type:          input.Type,
		Beds:          input.Beds,
		Baths:         input.Baths,
		MaxGuests:     input.MaxGuests,
		Amenities:     input.Amenities,
		Images:        input.Images,
		Description:   input.Description,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.log.Error().Err(err).Str("host_id", input.HostID).Msg("failed to create listing")
		return nil, err
	}

	s.log.Info().Str("listing_id", listing.ID).Str("host_id", listing.HostID).Msg("listing published")
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a catalog page. Page and limit are normalized here so the
// repository only sees sane values.
func (s *listingService) List(ctx context.Context, filter ports.ListListingsFilter) ([]*domain.Listing, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	return s.repo.List(ctx, filter)
}

// Quote prices a prospective stay on a listing.
func (s *listingService) Quote(ctx context.Context, listingID string, checkIn, checkOut time.Time, guests int) (*domain.Quote, error) {
	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return listing.QuoteFor(checkIn, checkOut, guests)
}
