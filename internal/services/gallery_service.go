package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
)

// GalleryService serves gallery listings and item reads on top of GalleryRepository
type GalleryService struct {
	gallery repositories.GalleryRepository
	log     logger.Logger
}

func NewGalleryService(gallery repositories.GalleryRepository, log logger.Logger) *GalleryService {
	return &GalleryService{gallery: gallery, log: log}
}

// List returns the published items of query.Type, newest first, narrowed by category and tags
func (s *GalleryService) List(ctx context.Context, query models.GalleryQuery) ([]models.GalleryItem, error) {
	items, err := s.gallery.ListPublished(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s gallery: %w", query.Type, err)
	}
	return FilterByTags(items, query.Tags), nil
}

// Get returns one item visible to viewerUID without touching its counters.
// Items the viewer may not see are reported as not found.
func (s *GalleryService) Get(ctx context.Context, contentType models.ContentType, id, viewerUID string) (*models.GalleryItem, error) {
	item, err := s.gallery.GetByID(ctx, contentType, id)
	if err != nil {
		return nil, err
	}
	if !item.VisibleTo(viewerUID) {
		return nil, fmt.Errorf("%w: %s %s", repositories.ErrNotFound, contentType, id)
	}
	return item, nil
}

// View returns one item visible to viewerUID and records a view. A failed view increment is logged, not returned.
func (s *GalleryService) View(ctx context.Context, contentType models.ContentType, id, viewerUID string) (*models.GalleryItem, error) {
	item, err := s.Get(ctx, contentType, id, viewerUID)
	if err != nil {
		return nil, err
	}
	if err := s.gallery.IncrementViewsCount(ctx, contentType, id); err != nil {
		s.log.Warn("failed to increment views for ", contentType, " ", id, ": ", err)
	} else {
		item.ViewsCount++
	}
	return item, nil
}

// Create stores a new item owned by userID
func (s *GalleryService) Create(ctx context.Context, userID string, contentType models.ContentType, req *models.CreateGalleryItemRequest) (*models.GalleryItem, error) {
	status := req.Status
	if status == "" {
		status = models.StatusPublished
	}

	item := &models.GalleryItem{
		Type:         contentType,
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Content:      strings.TrimSpace(req.Content),
		Category:     strings.TrimSpace(req.Category),
		Tags:         normalizeTags(req.Tags),
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		MediaURLs:    req.MediaURLs,
		Price:        req.Price,
		Status:       status,
		CreatedAt:    time.Now(),
	}

	if err := s.gallery.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", contentType, err)
	}
	s.log.Info("created ", contentType, " ", item.ID.Hex(), " for user ", userID)
	return item, nil
}

// FilterByTags keeps the items carrying at least one of the given tags.
// An empty tag selection returns items unchanged.
func FilterByTags(items []models.GalleryItem, tags []string) []models.GalleryItem {
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			wanted[tag] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return items
	}

	filtered := make([]models.GalleryItem, 0, len(items))
	for i := range items {
		if items[i].HasAnyTag(wanted) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// ParseTags splits a comma separated tag query parameter
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return normalizeTags(strings.Split(raw, ","))
}

// normalizeTags trims tags and drops blanks and duplicates, keeping first-seen order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
