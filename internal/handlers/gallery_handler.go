package handlers

import (
	"net/http"
	"strings"

	"github.com/kkh1902/promptsave-sub001/internal/media"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// GalleryHandler handles gallery listings, item reads and item creation
type GalleryHandler struct {
	galleryService *services.GalleryService
	imageHosts     media.RemotePatterns
	log            logger.Logger
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(galleryService *services.GalleryService, imageHosts media.RemotePatterns, log logger.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		imageHosts:     imageHosts,
		log:            log,
	}
}

// RegisterPublicGalleryRoutes registers the read routes, open to anonymous visitors
func (h *GalleryHandler) RegisterPublicGalleryRoutes(g *echo.Group) {
	g.GET("/gallery/:type", h.ListItems)
	g.GET("/gallery/:type/:id", h.GetItem)
}

// RegisterImageRoutes registers the top-level image gallery pages on a root group
func (h *GalleryHandler) RegisterImageRoutes(g *echo.Group) {
	g.GET("/images", h.ListImages)
	g.GET("/images/:id", h.GetImage)
}

// RegisterGalleryRoutes registers the routes that need a session
func (h *GalleryHandler) RegisterGalleryRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/gallery/:type", h.CreateItem)
}

// ListItems lists published items of the :type collection
func (h *GalleryHandler) ListItems(c echo.Context) error {
	contentType, err := contentTypeParam(c)
	if err != nil {
		return err
	}
	return h.listItems(c, contentType)
}

// ListImages lists published images
func (h *GalleryHandler) ListImages(c echo.Context) error {
	return h.listItems(c, models.ContentImage)
}

// GetItem returns one item of the :type collection and counts the view. Drafts are 404 except for their owner.
func (h *GalleryHandler) GetItem(c echo.Context) error {
	contentType, err := contentTypeParam(c)
	if err != nil {
		return err
	}
	return h.getItem(c, contentType)
}

// GetImage returns one image and counts the view
func (h *GalleryHandler) GetImage(c echo.Context) error {
	return h.getItem(c, models.ContentImage)
}

// CreatePost creates a text post
func (h *GalleryHandler) CreatePost(c echo.Context) error {
	return h.createItem(c, models.ContentPost)
}

// CreateItem creates an item in the :type collection
func (h *GalleryHandler) CreateItem(c echo.Context) error {
	contentType, err := contentTypeParam(c)
	if err != nil {
		return err
	}
	return h.createItem(c, contentType)
}

func (h *GalleryHandler) listItems(c echo.Context, contentType models.ContentType) error {
	query := models.GalleryQuery{
		Type:     contentType,
		Category: strings.TrimSpace(c.QueryParam("category")),
		Tags:     services.ParseTags(c.QueryParam("tags")),
	}

	items, err := h.galleryService.List(c.Request().Context(), query)
	if err != nil {
		// Listing failures are shown as a generic message
		h.log.Error("failed to list ", contentType, " gallery: ", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgLoadFailed).SetInternal(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"count": len(items),
	})
}

func (h *GalleryHandler) getItem(c echo.Context, contentType models.ContentType) error {
	item, err := h.galleryService.View(c.Request().Context(), contentType, c.Param("id"), currentUID(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *GalleryHandler) createItem(c echo.Context, contentType models.ContentType) error {
	var req models.CreateGalleryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, msgTitleContentRequired)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Only hosts on the allow-list may be rendered by the frontend
	for _, u := range append([]string{req.ImageURL, req.ThumbnailURL}, req.MediaURLs...) {
		if u != "" && !h.imageHosts.Allowed(u) {
			return echo.NewHTTPError(http.StatusBadRequest, msgImageHostNotAllowed)
		}
	}

	if contentType == models.ContentShop && req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, msgPriceRequired)
	}

	item, err := h.galleryService.Create(c.Request().Context(), currentUID(c), contentType, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, item)
}
