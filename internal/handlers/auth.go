package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kkh1902/promptsave-sub001/internal/middleware"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

const maxGeneratedUsername = 20

// IDTokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler exchanges Firebase ID tokens for session cookies
type AuthHandler struct {
	verifier          IDTokenVerifier
	profileRepository repositories.ProfileRepository
	jwtSecret         string
	sessionTTL        time.Duration
	secureCookie      bool
	log               logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier IDTokenVerifier, profileRepo repositories.ProfileRepository, jwtSecret string, sessionTTL time.Duration, secureCookie bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		verifier:          verifier,
		profileRepository: profileRepo,
		jwtSecret:         jwtSecret,
		sessionTTL:        sessionTTL,
		secureCookie:      secureCookie,
		log:               log,
	}
}

// RegisterAuthRoutes registers the session routes. The group must run OptionalSessionAuth.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/session", h.CreateSession)
	g.GET("/auth/session", h.GetSession)
	g.DELETE("/auth/session", h.DeleteSession)
}

// CreateSession verifies a Firebase ID token, makes sure a profile exists and issues the session
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req models.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidIDToken).SetInternal(err)
	}

	profile, err := h.ensureProfile(ctx, token)
	if err != nil {
		return serviceError(err)
	}

	sessionToken, err := h.generateSessionToken(profile.ID, profile.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token").SetInternal(err)
	}
	h.setSessionCookie(c, sessionToken)

	return c.JSON(http.StatusOK, echo.Map{
		"token":   sessionToken,
		"profile": profile,
	})
}

// GetSession reports the current session, 401 without one
func (h *AuthHandler) GetSession(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgLoginRequired)
	}

	user := echo.Map{"id": uid}
	if claims := middleware.ClaimsFromContext(c); claims != nil && claims.Email != "" {
		user["email"] = claims.Email
	}

	// The profile may be gone when the account was deleted from another session
	var profile *models.Profile
	p, err := h.profileRepository.GetProfileByID(c.Request().Context(), uid)
	switch {
	case err == nil:
		profile = p
	case !errors.Is(err, repositories.ErrNotFound):
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"user":          user,
		"profile":       profile,
	})
}

// DeleteSession clears the session cookie
func (h *AuthHandler) DeleteSession(c echo.Context) error {
	clearSessionCookie(c, h.secureCookie)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) ensureProfile(ctx context.Context, token *auth.Token) (*models.Profile, error) {
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	profile, err := h.profileRepository.GetProfileByID(ctx, token.UID)
	if err == nil {
		if email != "" && profile.Email != email {
			profile.Email = email
			if err := h.profileRepository.UpdateProfile(ctx, profile); err != nil {
				h.log.Warn("failed to refresh email of ", token.UID, ": ", err)
			}
		}
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	// First login: derive a username and retry with a UID suffix when it is taken
	base := usernameBase(name, email)
	candidates := []string{base, truncate(base, maxGeneratedUsername-6) + uidSuffix(token.UID, 6)}
	for _, username := range candidates {
		profile = &models.Profile{
			ID:        token.UID,
			Username:  username,
			Email:     email,
			AvatarURL: picture,
		}
		err = h.profileRepository.CreateProfile(ctx, profile)
		if err == nil {
			h.log.Info("created profile ", username, " for ", token.UID)
			return profile, nil
		}
		if !errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, err
		}
	}
	return nil, err
}

func (h *AuthHandler) generateSessionToken(uid, email string) (string, error) {
	now := time.Now()
	claims := &models.SessionClaims{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// usernameBase turns a display name or the local part of an email into a lowercase alphanumeric handle
func usernameBase(name, email string) string {
	source := name
	if source == "" {
		source, _, _ = strings.Cut(email, "@")
	}

	var b strings.Builder
	for _, r := range strings.ToLower(source) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	username := truncate(b.String(), maxGeneratedUsername)
	if len(username) < 2 {
		return "user"
	}
	return username
}

func uidSuffix(uid string, n int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(uid) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
		if b.Len() == n {
			break
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
