package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kkh1902/promptsave-sub001/internal/middleware"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler renders every error as {"error": "<message>"}.
// Errors that are not *echo.HTTPError become 500 carrying the error text.
func NewHTTPErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			message = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = he.Internal
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error(c.Request().Method, " ", c.Request().URL.Path, ": ", err)
		} else {
			log.Debug(c.Request().Method, " ", c.Request().URL.Path, " -> ", status, ": ", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"error": message})
		}
		if err != nil {
			log.Error("failed to write error response: ", err)
		}
	}
}

// serviceError maps service and repository errors onto the HTTP error taxonomy
func serviceError(err error) error {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		he = echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgLoginRequired)
	case errors.Is(err, services.ErrForbidden):
		he = echo.NewHTTPError(http.StatusForbidden, msgForbidden)
	case errors.Is(err, services.ErrFollowSelf):
		he = echo.NewHTTPError(http.StatusBadRequest, msgFollowSelf)
	case errors.Is(err, models.ErrUnknownContentType):
		he = echo.NewHTTPError(http.StatusBadRequest, msgUnknownContentType)
	case errors.Is(err, repositories.ErrNotFound):
		he = echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	case errors.Is(err, repositories.ErrAlreadyExists):
		he = echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		he = echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return he.SetInternal(err)
}

// currentUID returns the Firebase UID of the session, or "" for anonymous requests
func currentUID(c echo.Context) string {
	return middleware.UIDFromContext(c)
}

// contentTypeParam parses the :type path parameter
func contentTypeParam(c echo.Context) (models.ContentType, error) {
	contentType, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, msgUnknownContentType)
	}
	return contentType, nil
}
