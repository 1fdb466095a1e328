package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	galleryRepository repositories.GalleryRepository // To update comment counts on items
	log               logger.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, galleryRepo repositories.GalleryRepository, log logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		galleryRepository: galleryRepo,
		log:               log,
	}
}

// RegisterPublicCommentRoutes registers comment reads
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/gallery/:type/:id/comments", h.GetComments)
}

// RegisterCommentRoutes registers comment writes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/gallery/:type/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a gallery item
func (h *CommentHandler) CreateComment(c echo.Context) error {
	contentType, err := contentTypeParam(c)
	if err != nil {
		return err
	}
	itemID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if err := h.checkItemVisible(ctx, contentType, itemID, currentUID(c)); err != nil {
		return err
	}

	comment := &models.Comment{
		ItemType: contentType,
		ItemID:   itemID,
		UserID:   currentUID(c),
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return serviceError(err)
	}

	if err := h.galleryRepository.IncrementCommentsCount(ctx, contentType, itemID); err != nil {
		h.log.Warn("failed to increment comments count of ", contentType, " ", itemID, ": ", err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists the comments of a gallery item, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	contentType, err := contentTypeParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	itemID := c.Param("id")

	if err := h.checkItemVisible(ctx, contentType, itemID, currentUID(c)); err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByItem(ctx, contentType, itemID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments": comments,
		"count":    len(comments),
	})
}

// DeleteComment deletes one of the caller's comments
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, uint(id))
	if err != nil {
		return serviceError(err)
	}

	if comment.UserID != currentUID(c) {
		return echo.NewHTTPError(http.StatusForbidden, msgCommentForbidden)
	}

	if err := h.commentRepository.DeleteComment(ctx, comment.ID); err != nil {
		return serviceError(err)
	}

	if err := h.galleryRepository.DecrementCommentsCount(ctx, comment.ItemType, comment.ItemID); err != nil {
		h.log.Warn("failed to decrement comments count of ", comment.ItemType, " ", comment.ItemID, ": ", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// checkItemVisible fails with 404 when the item is missing or is a draft the viewer does not own
func (h *CommentHandler) checkItemVisible(ctx context.Context, contentType models.ContentType, itemID, viewerUID string) error {
	item, err := h.galleryRepository.GetByID(ctx, contentType, itemID)
	if err != nil {
		return serviceError(err)
	}
	if !item.VisibleTo(viewerUID) {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	return nil
}
