package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// stubListingRepo is a map-backed catalog used by the listing and favorites
// tests.
type stubListingRepo struct {
	listings   map[string]*domain.Listing
	lastFilter ports.ListListingsFilter
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) error {
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) List(_ context.Context, filter ports.ListListingsFilter) ([]*domain.Listing, int64, error) {
	r.lastFilter = filter
	out := make([]*domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		clone := *l
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func TestListingService_Create(t *testing.T) {
	repo := newStubListingRepo()
	svc := NewListingService(repo, zerolog.Nop())

	listing, err := svc.Create(context.Background(), ports.CreateListingInput{
		HostID:        "host-1",
		Title:         "Modern Downtown Loft",
		Location:      "New York, NY",
		PricePerNight: 150,
		Type:          domain.PropertyApartment,
		Beds:          2,
		Baths:         1,
		MaxGuests:     4,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if listing.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if listing.HostID != "host-1" {
		t.Fatalf("unexpected host: %s", listing.HostID)
	}
	if _, ok := repo.listings[listing.ID]; !ok {
		t.Fatalf("listing not persisted")
	}
}

func TestListingService_List_NormalizesPaging(t *testing.T) {
	repo := newStubListingRepo()
	svc := NewListingService(repo, zerolog.Nop())

	if _, _, err := svc.List(context.Background(), ports.ListListingsFilter{Page: 0, Limit: 0}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultPageLimit {
		t.Fatalf("paging not normalized: %+v", repo.lastFilter)
	}

	if _, _, err := svc.List(context.Background(), ports.ListListingsFilter{Page: 2, Limit: 5000}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("limit not capped: %d", repo.lastFilter.Limit)
	}
}

func TestListingService_Quote(t *testing.T) {
	repo := newStubListingRepo()
	svc := NewListingService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateListingInput{
		HostID:        "host-1",
		Title:         "Cabin",
		Location:      "Aspen, CO",
		PricePerNight: 180,
		Type:          domain.PropertyCabin,
		Beds:          2,
		Baths:         1,
		MaxGuests:     4,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	quote, err := svc.Quote(context.Background(), created.ID, checkIn, checkOut, 2)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if quote.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", quote.Nights)
	}
	if quote.Total != 540 {
		t.Fatalf("expected total 540, got %v", quote.Total)
	}
}

func TestListingService_Quote_Invalid(t *testing.T) {
	repo := newStubListingRepo()
	svc := NewListingService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), ports.CreateListingInput{
		HostID: "host-1", Title: "Cabin", Location: "Aspen, CO",
		PricePerNight: 180, Type: domain.PropertyCabin, Beds: 2, Baths: 1, MaxGuests: 4,
	})

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Check-out not after check-in.
	if _, err := svc.Quote(context.Background(), created.ID, day, day, 2); !errors.Is(err, domain.ErrInvalidQuote) {
		t.Fatalf("expected ErrInvalidQuote, got %v", err)
	}
	// Too many guests.
	if _, err := svc.Quote(context.Background(), created.ID, day, day.AddDate(0, 0, 2), 9); !errors.Is(err, domain.ErrInvalidQuote) {
		t.Fatalf("expected ErrInvalidQuote for guest overflow, got %v", err)
	}
	// Unknown listing.
	if _, err := svc.Quote(context.Background(), "missing", day, day.AddDate(0, 0, 2), 2); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListingQuote_PartialNightRoundsUp(t *testing.T) {
	l := &domain.Listing{ID: "l1", PricePerNight: 100, MaxGuests: 2}

	checkIn := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	quote, err := l.QuoteFor(checkIn, checkOut, 2)
	if err != nil {
		t.Fatalf("QuoteFor returned error: %v", err)
	}
	if quote.Nights != 2 {
		t.Fatalf("expected 2 nights (44h rounded up), got %d", quote.Nights)
	}
}
