package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/kkh1902/promptsave-sub001/internal/middleware"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePost_MissingTitleOrContent(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []map[string]string{
		{"title": "", "content": "body"},
		{"title": "title", "content": "   "},
		{},
	} {
		rec := s.do(t, http.MethodPost, "/api/posts", body, "alice")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, errorBody(msgTitleContentRequired), rec.Body.String())
	}
	s.gallery.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/posts", map[string]string{"title": "t", "content": "c"}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, errorBody(middleware.MsgLoginRequired), rec.Body.String())
}

func TestCreatePost_Success(t *testing.T) {
	s := newTestServer(t)
	s.gallery.On("Create", mock.Anything, mock.MatchedBy(func(item *models.GalleryItem) bool {
		return item.Type == models.ContentPost && item.UserID == "alice" && item.Title == "Hello"
	})).Return(nil)

	rec := s.do(t, http.MethodPost, "/api/posts", map[string]interface{}{
		"title":   "Hello",
		"content": "First post",
		"tags":    []string{"intro"},
	}, "alice")

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "Hello", body["title"])
	assert.Equal(t, "published", body["status"])
	s.gallery.AssertExpectations(t)
}

func TestCreateItem_RejectsForeignImageHost(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/gallery/images", map[string]string{
		"title":     "cat",
		"content":   "a cat",
		"image_url": "https://evil.example/cat.png",
	}, "alice")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody(msgImageHostNotAllowed), rec.Body.String())
}

func TestCreateItem_ShopNeedsPrice(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/gallery/shop", map[string]string{"title": "preset", "content": "pack"}, "alice")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody(msgPriceRequired), rec.Body.String())
}

func TestCreateItem_ValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/gallery/videos", map[string]interface{}{
		"title":   "clip",
		"content": "desc",
		"status":  "archived",
	}, "alice")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeJSON(t, rec), "error")
}

func TestListItems(t *testing.T) {
	s := newTestServer(t)
	s.gallery.On("ListPublished", mock.Anything, models.GalleryQuery{
		Type:     models.ContentImage,
		Category: "landscape",
		Tags:     []string{"sky", "sea"},
	}).Return([]models.GalleryItem{
		{Title: "a", Tags: []string{"sky"}},
		{Title: "b", Tags: []string{"forest"}},
		{Title: "c", Tags: []string{"sea"}},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/gallery/images?category=landscape&tags=sky,sea", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, float64(2), body["count"])
	s.gallery.AssertExpectations(t)
}

func TestListItems_GenericErrorMessage(t *testing.T) {
	s := newTestServer(t)
	s.gallery.On("ListPublished", mock.Anything, mock.Anything).Return(nil, errors.New("server selection timeout"))

	rec := s.do(t, http.MethodGet, "/api/gallery/posts", nil, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, errorBody(msgLoadFailed), rec.Body.String())
}

func TestListItems_UnknownType(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/gallery/podcasts", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody(msgUnknownContentType), rec.Body.String())
}

func TestImagePages(t *testing.T) {
	s := newTestServer(t)
	id := primitive.NewObjectID()
	s.gallery.On("ListPublished", mock.Anything, models.GalleryQuery{Type: models.ContentImage}).
		Return([]models.GalleryItem{{ID: id, Title: "one"}}, nil)
	s.gallery.On("GetByID", mock.Anything, models.ContentImage, id.Hex()).
		Return(&models.GalleryItem{ID: id, Title: "one", Status: models.StatusPublished, ViewsCount: 1}, nil)
	s.gallery.On("IncrementViewsCount", mock.Anything, models.ContentImage, id.Hex()).Return(nil)

	rec := s.do(t, http.MethodGet, "/images", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeJSON(t, rec)["count"])

	rec = s.do(t, http.MethodGet, "/images/"+id.Hex(), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeJSON(t, rec)["views_count"])
}

func TestGetItem_Drafts(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		uid    string
		status int
	}{
		{"anonymous on image page", "/images/", "", http.StatusNotFound},
		{"another user", "/api/gallery/image/", "bob", http.StatusNotFound},
		{"owner", "/api/gallery/image/", "alice", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			id := primitive.NewObjectID()
			s.gallery.On("GetByID", mock.Anything, models.ContentImage, id.Hex()).
				Return(&models.GalleryItem{ID: id, UserID: "alice", Title: "secret", Status: models.StatusDraft}, nil)
			s.gallery.On("IncrementViewsCount", mock.Anything, models.ContentImage, id.Hex()).Return(nil)

			rec := s.do(t, http.MethodGet, tt.path+id.Hex(), nil, tt.uid)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNotFound {
				assert.JSONEq(t, errorBody(msgNotFound), rec.Body.String())
				assert.NotContains(t, rec.Body.String(), "secret")
				s.gallery.AssertNotCalled(t, "IncrementViewsCount", mock.Anything, mock.Anything, mock.Anything)
			} else {
				body := decodeJSON(t, rec)
				assert.Equal(t, "secret", body["title"])
				assert.Equal(t, float64(1), body["views_count"])
			}
		})
	}
}

func TestGetItem_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.gallery.On("GetByID", mock.Anything, models.ContentVideo, "missing").Return(nil, errNotFoundForTest())

	rec := s.do(t, http.MethodGet, "/api/gallery/videos/missing", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, errorBody(msgNotFound), rec.Body.String())
}
