package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/marketplace-system/internal/api/metrics"
	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

type ListingHandler struct {
	listings ports.ListingService
}

func NewListingHandler(listings ports.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Create publishes a new listing. Host accounts only (enforced by RBAC
// middleware on the route).
//
// @Summary      Publish a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        body  body      createListingRequest  true  "Listing draft"
// @Success      201   {object}  listingResponse
// @Failure      400   {object}  map[string]string
// @Router       /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	hostID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.listings.Create(c.Request().Context(), ports.CreateListingInput{
		HostID:        hostID,
		Title:         req.Title,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		Type:          domain.PropertyType(req.Type),
		Beds:          req.Beds,
		Baths:         req.Baths,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		Images:        req.Images,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toListingResponse(listing))
}

// Get returns one listing.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  listingResponse
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

// List browses the catalog with search and filters.
//
// @Summary      Browse listings
// @Tags         listings
// @Produce      json
// @Param        search     query     string  false  "Substring over title or location"
// @Param        type       query     string  false  "Property type"
// @Param        price_min  query     number  false  "Minimum nightly price"
// @Param        price_max  query     number  false  "Maximum nightly price"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listListingsResponse
// @Router       /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	filter := ports.ListListingsFilter{
		Search: c.QueryParam("search"),
		Type:   c.QueryParam("type"),
	}
	filter.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	filter.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	listings, total, err := h.listings.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	data := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		data = append(data, *toListingResponse(l))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return c.JSON(http.StatusOK, listListingsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
	})
}

// Quote prices a prospective stay: nights times nightly price.
//
// @Summary      Price a stay
// @Tags         listings
// @Produce      json
// @Param        id         path      string  true   "Listing id"
// @Param        check_in   query     string  true   "Check-in date (RFC3339)"
// @Param        check_out  query     string  true   "Check-out date (RFC3339)"
// @Param        guests     query     int     false  "Guest count (default 1)"
// @Success      200        {object}  quoteResponse
// @Failure      422        {object}  map[string]string
// @Router       /listings/{id}/quote [get]
func (h *ListingHandler) Quote(c echo.Context) error {
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be an RFC3339 or YYYY-MM-DD date")
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be an RFC3339 or YYYY-MM-DD date")
	}
	guests := 1
	if raw := c.QueryParam("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "guests must be an integer")
		}
	}

	quote, err := h.listings.Quote(c.Request().Context(), c.Param("id"), checkIn, checkOut, guests)
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.QuoteRequestsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, quoteResponse{
		ListingID:     quote.ListingID,
		CheckIn:       quote.CheckIn,
		CheckOut:      quote.CheckOut,
		Guests:        quote.Guests,
		Nights:        quote.Nights,
		PricePerNight: quote.PricePerNight,
		Total:         quote.Total,
	})
}

func toListingResponse(l *domain.Listing) *listingResponse {
	return &listingResponse{
		ID:            l.ID,
		HostID:        l.HostID,
		Title:         l.Title,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		Type:          string(l.Type),
		Beds:          l.Beds,
		Baths:         l.Baths,
		MaxGuests:     l.MaxGuests,
		Rating:        l.Rating,
		ReviewCount:   l.ReviewCount,
		Amenities:     l.Amenities,
		Images:        l.Images,
		Description:   l.Description,
		Superhost:     l.Superhost,
		CreatedAt:     l.CreatedAt,
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
