package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/marketplace-system/internal/api/metrics"
	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// FavoriteEnqueuer is the piece of the dispatcher the handler needs.
type FavoriteEnqueuer interface {
	Enqueue(event domain.FavoriteEvent)
}

type FavoritesHandler struct {
	queue     FavoriteEnqueuer
	favorites ports.FavoriteService
}

func NewFavoritesHandler(queue FavoriteEnqueuer, favorites ports.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{queue: queue, favorites: favorites}
}

type favoriteEventRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	Action    string `json:"action"     validate:"required,oneof=add remove"`
	Timestamp string `json:"timestamp"`
}

// Toggle enqueues a favorite/unfavorite event for asynchronous processing.
//
// @Summary      Toggle a favorite
// @Tags         favorites
// @Accept       json
// @Success      202
// @Failure      400  {object}  map[string]string
// @Router       /favorites/events [post]
func (h *FavoritesHandler) Toggle(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req favoriteEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "timestamp must be RFC3339")
		}
		ts = parsed
	}

	h.queue.Enqueue(domain.FavoriteEvent{
		UserID:    userID,
		ListingID: req.ListingID,
		Action:    domain.FavoriteAction(req.Action),
		Timestamp: ts,
	})

	metrics.FavoriteEventsTotal.WithLabelValues("enqueued").Inc()
	return c.NoContent(http.StatusAccepted)
}

// List returns the caller's favorite listings.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {array}  listingResponse
// @Router       /favorites [get]
func (h *FavoritesHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	listings, err := h.favorites.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, *toListingResponse(l))
	}
	return c.JSON(http.StatusOK, out)
}
