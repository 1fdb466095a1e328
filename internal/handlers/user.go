package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile reads, profile updates and account deletion
type UserHandler struct {
	profileRepository repositories.ProfileRepository
	followService     *services.FollowService
	accountService    *services.AccountService
	secureCookie      bool
	log               logger.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileRepo repositories.ProfileRepository, followService *services.FollowService, accountService *services.AccountService, secureCookie bool, log logger.Logger) *UserHandler {
	return &UserHandler{
		profileRepository: profileRepo,
		followService:     followService,
		accountService:    accountService,
		secureCookie:      secureCookie,
		log:               log,
	}
}

// RegisterPublicUserRoutes registers profile reads
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
}

// RegisterUserRoutes registers the routes that act on the caller's own account
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/users/:id", h.DeleteUser)
	g.POST("/users/delete", h.DeleteUserByBody)
}

// GetUser returns a profile with follow counts and the viewer's follow state
func (h *UserHandler) GetUser(c echo.Context) error {
	view, err := h.profileView(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	view, err := h.profileView(c, currentUID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateProfile updates the caller's profile fields that were sent
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	profile, err := h.profileRepository.GetProfileByID(ctx, currentUID(c))
	if err != nil {
		return serviceError(err)
	}

	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.Bio != "" {
		profile.Bio = strings.TrimSpace(req.Bio)
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Website != "" {
		profile.Website = req.Website
	}

	if err := h.profileRepository.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, msgUsernameTaken).SetInternal(err)
		}
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// DeleteUser deletes the account named in the path; only the owner may do so
func (h *UserHandler) DeleteUser(c echo.Context) error {
	return h.deleteAccount(c, c.Param("id"))
}

// DeleteUserByBody deletes the account named by {"userId": ...}
func (h *UserHandler) DeleteUserByBody(c echo.Context) error {
	var req models.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, msgUserIDRequired)
	}
	return h.deleteAccount(c, req.UserID)
}

func (h *UserHandler) deleteAccount(c echo.Context, targetUID string) error {
	report, err := h.accountService.DeleteAccount(c.Request().Context(), currentUID(c), targetUID)
	switch {
	case err == nil:
		clearSessionCookie(c, h.secureCookie)
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"report":  report,
		})
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, msgForbiddenDelete).SetInternal(err)
	case errors.Is(err, services.ErrCascadeIncomplete):
		h.log.Error("account deletion incomplete for ", targetUID, ": ", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  msgDeleteIncomplete,
			"report": report,
		})
	default:
		return serviceError(err)
	}
}

func (h *UserHandler) profileView(c echo.Context, userID string) (*models.ProfileView, error) {
	ctx := c.Request().Context()

	profile, err := h.profileRepository.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, serviceError(err)
	}

	followers, following, err := h.followService.Counts(ctx, userID)
	if err != nil {
		return nil, serviceError(err)
	}

	isFollowing, err := h.followService.IsFollowing(ctx, currentUID(c), userID)
	if err != nil {
		return nil, serviceError(err)
	}

	return &models.ProfileView{
		Profile:        *profile,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}
