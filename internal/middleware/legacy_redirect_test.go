package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLegacyImageRedirect(t *testing.T) {
	e := echo.New()
	e.Pre(LegacyImageRedirect())
	e.GET("/images", func(c echo.Context) error { return c.String(http.StatusOK, "gallery") })
	e.GET("/images/:id", func(c echo.Context) error { return c.String(http.StatusOK, c.Param("id")) })

	tests := []struct {
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"/image", http.StatusPermanentRedirect, "/images"},
		{"/image?tags=cat,dog", http.StatusPermanentRedirect, "/images?tags=cat,dog"},
		{"/image/abc123", http.StatusPermanentRedirect, "/images/abc123"},
		{"/images", http.StatusOK, ""},
		{"/images/abc123", http.StatusOK, ""},
		{"/imagery", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestLegacyImageRedirect_KeepsMethod(t *testing.T) {
	e := echo.New()
	e.Pre(LegacyImageRedirect())

	req := httptest.NewRequest(http.MethodPost, "/image/upload", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// 308 tells clients to repeat the request with the same method and body
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/images/upload", rec.Header().Get(echo.HeaderLocation))
}
