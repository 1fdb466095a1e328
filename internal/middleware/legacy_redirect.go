package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// LegacyImageRedirect permanently redirects /image and /image/* to /images and /images/*.
// Register it with e.Pre so it runs before routing.
func LegacyImageRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path != "/image" && !strings.HasPrefix(path, "/image/") {
				return next(c)
			}

			target := "/images" + strings.TrimPrefix(path, "/image")
			if rawQuery := c.Request().URL.RawQuery; rawQuery != "" {
				target += "?" + rawQuery
			}
			return c.Redirect(http.StatusPermanentRedirect, target)
		}
	}
}
