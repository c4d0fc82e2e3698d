package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and fast-fails before any service call: a missing user id means the
// middleware did not run or the token carried no subject.
func ctxIdentity(c echo.Context) (userID, accountType string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	accountType, _ = c.Get("type").(string)
	return userID, accountType, nil
}
