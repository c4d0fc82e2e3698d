package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// AdminHandler exposes the debug surface over the directory and its audit
// trail. Passwords never leave this layer.
type AdminHandler struct {
	directory ports.UserDirectory
	history   ports.HistoryLog
}

func NewAdminHandler(directory ports.UserDirectory, history ports.HistoryLog) *AdminHandler {
	return &AdminHandler{directory: directory, history: history}
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Type      string `json:"type"`
	Avatar    string `json:"avatar,omitempty"`
}

type historyEntryResponse struct {
	Timestamp string         `json:"timestamp"`
	Users     []userResponse `json:"users"`
}

// ListUsers returns every directory record in creation order.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.directory.All(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// History returns the snapshot log, oldest first.
//
// @Summary      Directory history
// @Tags         admin
// @Produce      json
// @Success      200  {array}  historyEntryResponse
// @Router       /admin/history [get]
func (h *AdminHandler) History(c echo.Context) error {
	entries, err := h.history.ReadAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		users := make([]userResponse, 0, len(e.Data.Users))
		for i := range e.Data.Users {
			users = append(users, toUserResponse(&e.Data.Users[i]))
		}
		out = append(out, historyEntryResponse{Timestamp: e.Timestamp, Users: users})
	}
	return c.JSON(http.StatusOK, out)
}

// ClearHistory resets the snapshot log.
//
// @Summary      Clear directory history
// @Tags         admin
// @Success      204
// @Router       /admin/history [delete]
func (h *AdminHandler) ClearHistory(c echo.Context) error {
	if err := h.history.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Type:      string(u.Type),
		Avatar:    u.Avatar,
	}
}
