package handlers

import (
	"net/http"

	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService     *services.FollowService
	profileRepository repositories.ProfileRepository
	log               logger.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService, profileRepo repositories.ProfileRepository, log logger.Logger) *FollowHandler {
	return &FollowHandler{
		followService:     followService,
		profileRepository: profileRepo,
		log:               log,
	}
}

// RegisterPublicFollowRoutes registers follower and following listings
func (h *FollowHandler) RegisterPublicFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow", h.GetFollowStatus)
}

// ToggleFollow follows the user when not yet following and unfollows otherwise.
// A second toggle arriving while the first is still running is rejected with 409.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := currentUID(c)
	targetID := c.Param("id")

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, msgFollowSelf)
	}

	ctx := c.Request().Context()

	// Verify target exists
	if _, err := h.profileRepository.GetProfileByID(ctx, targetID); err != nil {
		return serviceError(err)
	}

	result, err := h.followService.Toggle(ctx, currentUserID, targetID)
	if err != nil {
		return serviceError(err)
	}
	if result.Skipped {
		return echo.NewHTTPError(http.StatusConflict, msgFollowInFlight)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"following": result.Following},
	})
}

// GetFollowStatus reports whether the caller follows the user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	following, err := h.followService.IsFollowing(c.Request().Context(), currentUID(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"following": following},
	})
}

// GetFollowers lists the users following :id
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	followers, err := h.followService.Followers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    followers,
		"count":   len(followers),
	})
}

// GetFollowing lists the users :id follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	following, err := h.followService.Following(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    following,
		"count":   len(following),
	})
}
