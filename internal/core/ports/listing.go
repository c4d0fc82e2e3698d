package ports

import (
	"context"
	"time"

	"github.com/stayease/marketplace-system/internal/core/domain"
)

// ListListingsFilter carries all query parameters for browsing the catalog.
type ListListingsFilter struct {
	Search   string  // optional: case-insensitive substring over title or location
	Type     string  // optional: property type
	PriceMin float64 // optional: price_per_night >= PriceMin
	PriceMax float64 // optional: price_per_night <= PriceMax (0 = no ceiling)
	Page     int     // 1-based
	Limit    int     // max rows per page (capped by the service)
}

// ListingRepository defines persistence operations for the listing catalog.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// List returns a page of listings matching filter and the total count.
	List(ctx context.Context, filter ListListingsFilter) ([]*domain.Listing, int64, error)
}

// CreateListingInput is the final draft submitted by the listing wizard.
type CreateListingInput struct {
	HostID        string
	Title         string
	Location      string
	PricePerNight float64
	Type          domain.PropertyType
	Beds          int
	Baths         int
	MaxGuests     int
	Amenities     []string
	Images        []string
	Description   string
}

// ListingService exposes catalog browsing, publication and pricing.
type ListingService interface {
	Create(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListListingsFilter) ([]*domain.Listing, int64, error)
	Quote(ctx context.Context, listingID string, checkIn, checkOut time.Time, guests int) (*domain.Quote, error)
}
