package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the cookie carrying the session JWT
	SessionCookieName = "session"

	uidContextKey    = "uid"
	claimsContextKey = "session"

	MsgLoginRequired = "로그인이 필요합니다."
)

var errNoSession = errors.New("no session token")

// SessionAuth rejects requests without a valid session with 401
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseSession(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgLoginRequired).SetInternal(err)
			}
			setSession(c, claims)
			return next(c)
		}
	}
}

// OptionalSessionAuth attaches the session when one is present and valid, and never rejects
func OptionalSessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseSession(c, secret); err == nil {
				setSession(c, claims)
			}
			return next(c)
		}
	}
}

// UIDFromContext returns the authenticated Firebase UID, or "" without a session
func UIDFromContext(c echo.Context) string {
	uid, _ := c.Get(uidContextKey).(string)
	return uid
}

// ClaimsFromContext returns the session claims, or nil without a session
func ClaimsFromContext(c echo.Context) *models.SessionClaims {
	claims, _ := c.Get(claimsContextKey).(*models.SessionClaims)
	return claims
}

func setSession(c echo.Context, claims *models.SessionClaims) {
	c.Set(uidContextKey, claims.UID)
	c.Set(claimsContextKey, claims)
}

// sessionToken reads "Authorization: Bearer <token>" first, then the session cookie
func sessionToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid Authorization header format")
		}
		return parts[1], nil
	}
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", errNoSession
	}
	return cookie.Value, nil
}

func parseSession(c echo.Context, secret string) (*models.SessionClaims, error) {
	tokenString, err := sessionToken(c)
	if err != nil {
		return nil, err
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
