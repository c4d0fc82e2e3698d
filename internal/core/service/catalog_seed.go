package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// SeedCatalog loads the demo listing set into an empty catalog. It is a
// no-op when the catalog already holds listings.
func SeedCatalog(ctx context.Context, repo ports.ListingRepository) error {
	_, total, err := repo.List(ctx, ports.ListListingsFilter{Page: 1, Limit: 1})
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if total > 0 {
		return nil
	}

	for _, l := range fixtureListings() {
		if err := repo.Create(ctx, l); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return nil
}

// fixtureListings are the demo properties shown before any host has
// published a real one.
func fixtureListings() []*domain.Listing {
	now := time.Now().UTC()
	demo := []struct {
		title     string
		location  string
		price     float64
		ptype     domain.PropertyType
		beds      int
		baths     int
		guests    int
		rating    float64
		reviews   int
		superhost bool
	}{
		{"Modern Downtown Loft", "New York, NY", 150, domain.PropertyApartment, 2, 1, 4, 4.8, 42, true},
		{"Cozy Beach House", "Santa Monica, CA", 220, domain.PropertyHouse, 3, 2, 6, 4.9, 67, false},
		{"Mountain View Cabin", "Aspen, CO", 180, domain.PropertyCabin, 2, 1, 4, 4.7, 89, true},
		{"Historic City Center", "Boston, MA", 95, domain.PropertyRoom, 1, 1, 2, 4.6, 124, false},
		{"Luxury Penthouse", "Miami, FL", 350, domain.PropertyApartment, 3, 2, 6, 4.9, 56, true},
		{"Charming Cottage", "Portland, OR", 125, domain.PropertyHouse, 2, 1, 4, 4.5, 78, false},
	}

	listings := make([]*domain.Listing, 0, len(demo))
	for _, d := range demo {
		listings = append(listings, &domain.Listing{
			ID:            uuid.NewString(),
			Title:         d.title,
			Location:      d.location,
			PricePerNight: d.price,
			Type:          d.ptype,
			Beds:          d.beds,
			Baths:         d.baths,
			MaxGuests:     d.guests,
			Rating:        d.rating,
			ReviewCount:   d.reviews,
			Amenities:     []string{"WiFi", "Kitchen", "Heating"},
			Superhost:     d.superhost,
			CreatedAt:     now,
		})
	}
	return listings
}
