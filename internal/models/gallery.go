package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType selects one of the gallery collections
type ContentType string

const (
	ContentPost      ContentType = "post"
	ContentImage     ContentType = "image"
	ContentVideo     ContentType = "video"
	ContentModel     ContentType = "model"
	ContentChallenge ContentType = "challenge"
	ContentShop      ContentType = "shop"
)

// Item statuses. Only published items are listed in galleries.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ErrUnknownContentType is returned when a path or query names no gallery collection
var ErrUnknownContentType = errors.New("unknown content type")

var contentCollections = map[ContentType]string{
	ContentPost:      "posts",
	ContentImage:     "images",
	ContentVideo:     "videos",
	ContentModel:     "models",
	ContentChallenge: "challenges",
	ContentShop:      "shop_items",
}

// AllContentTypes lists every gallery content type in cascade order
func AllContentTypes() []ContentType {
	return []ContentType{ContentPost, ContentImage, ContentVideo, ContentModel, ContentChallenge, ContentShop}
}

// ParseContentType accepts the singular type name or its collection name ("image", "images")
func ParseContentType(s string) (ContentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, collection := range contentCollections {
		if s == string(t) || s == collection {
			return t, nil
		}
	}
	return "", ErrUnknownContentType
}

// Collection returns the MongoDB collection backing the content type
func (t ContentType) Collection() string {
	return contentCollections[t]
}

// GalleryItem is a post, image, video, model, challenge or shop listing stored in MongoDB
type GalleryItem struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type          ContentType        `json:"type" bson:"type"`
	UserID        string             `json:"user_id" bson:"user_id"` // Firebase UID of the owner
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content" bson:"content"`
	Category      string             `json:"category,omitempty" bson:"category,omitempty"`
	Tags          []string           `json:"tags" bson:"tags"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	ThumbnailURL  string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	MediaURLs     []string           `json:"media_urls,omitempty" bson:"media_urls,omitempty"`
	Price         int64              `json:"price,omitempty" bson:"price,omitempty"` // shop listings, minor units
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	ViewsCount    int                `json:"views_count" bson:"views_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasAnyTag reports whether the item carries at least one of the wanted tags
func (i *GalleryItem) HasAnyTag(wanted map[string]struct{}) bool {
	for _, tag := range i.Tags {
		if _, ok := wanted[tag]; ok {
			return true
		}
	}
	return false
}

// VisibleTo reports whether viewerUID may see the item. Drafts are visible only to their owner.
func (i *GalleryItem) VisibleTo(viewerUID string) bool {
	return i.Status == StatusPublished || (viewerUID != "" && i.UserID == viewerUID)
}

// GalleryQuery selects published items of one content type
type GalleryQuery struct {
	Type     ContentType
	Category string   // empty disables the category filter
	Tags     []string // OR semantics, applied after the query
}

// CreateGalleryItemRequest defines the request body for creating a gallery item.
// Title and content are checked by the handler so the caller gets a single missing-field message.
type CreateGalleryItemRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Category     string   `json:"category" validate:"omitempty,max=50"`
	Tags         []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=30"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
	MediaURLs    []string `json:"media_urls" validate:"omitempty,max=10,dive,url"`
	Price        int64    `json:"price" validate:"min=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=draft published"`
}
