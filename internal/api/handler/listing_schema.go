package handler

import "time"

type createListingRequest struct {
	Title         string   `json:"title"           validate:"required"`
	Location      string   `json:"location"        validate:"required"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	Type          string   `json:"type"            validate:"required,oneof=apartment house cabin room"`
	Beds          int      `json:"beds"            validate:"required,min=1"`
	Baths         int      `json:"baths"           validate:"required,min=1"`
	MaxGuests     int      `json:"max_guests"      validate:"required,min=1"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	Description   string   `json:"description"`
}

type listingResponse struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"price_per_night"`
	Type          string    `json:"type"`
	Beds          int       `json:"beds"`
	Baths         int       `json:"baths"`
	MaxGuests     int       `json:"max_guests"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Amenities     []string  `json:"amenities"`
	Images        []string  `json:"images"`
	Description   string    `json:"description,omitempty"`
	Superhost     bool      `json:"superhost"`
	CreatedAt     time.Time `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listListingsResponse struct {
	Data       []listingResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type quoteResponse struct {
	ListingID     string    `json:"listing_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	Nights        int       `json:"nights"`
	PricePerNight float64   `json:"price_per_night"`
	Total         float64   `json:"total"`
}
