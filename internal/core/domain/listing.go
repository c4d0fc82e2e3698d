package domain

import (
	"errors"
	"math"
	"time"
)

// PropertyType classifies what kind of space a listing offers.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyCabin     PropertyType = "cabin"
	PropertyRoom      PropertyType = "room"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyCabin, PropertyRoom:
		return true
	}
	return false
}

var ErrListingNotFound = errors.New("listing not found")
var ErrInvalidQuote = errors.New("invalid quote request")

// Listing is a published vacation-rental property.
type Listing struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	HostID        string       `json:"host_id" bson:"host_id"`
	Title         string       `json:"title" bson:"title"`
	Location      string       `json:"location" bson:"location"`
	PricePerNight float64      `json:"price_per_night" bson:"price_per_night"`
	Type          PropertyType `json:"type" bson:"type"`
	Beds          int          `json:"beds" bson:"beds"`
	Baths         int          `json:"baths" bson:"baths"`
	MaxGuests     int          `json:"max_guests" bson:"max_guests"`
	Rating        float64      `json:"rating" bson:"rating"`
	ReviewCount   int          `json:"review_count" bson:"review_count"`
	Amenities     []string     `json:"amenities" bson:"amenities"`
	Images        []string     `json:"images" bson:"images"`
	Description   string       `json:"description" bson:"description"`
	Superhost     bool         `json:"superhost" bson:"superhost"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
}

// Quote is the price breakdown for a prospective stay.
type Quote struct {
	ListingID     string    `json:"listing_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	Nights        int       `json:"nights"`
	PricePerNight float64   `json:"price_per_night"`
	Total         float64   `json:"total"`
}

// QuoteFor prices a stay on this listing. Partial nights round up.
func (l *Listing) QuoteFor(checkIn, checkOut time.Time, guests int) (*Quote, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidQuote
	}
	if guests < 1 || guests > l.MaxGuests {
		return nil, ErrInvalidQuote
	}

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	return &Quote{
		ListingID:     l.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        guests,
		Nights:        nights,
		PricePerNight: l.PricePerNight,
		Total:         float64(nights) * l.PricePerNight,
	}, nil
}
