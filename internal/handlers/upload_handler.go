package handlers

import (
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/kkh1902/promptsave-sub001/internal/media"
	"github.com/kkh1902/promptsave-sub001/internal/storage"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Upload folders and the media families each accepts
var uploadFolders = map[string][]string{
	"images":  {"image/"},
	"avatars": {"image/"},
	"videos":  {"video/"},
	"models":  {"model/", "application/octet-stream", "application/zip"},
}

// UploadResponse describes a stored upload
type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Path         string `json:"path"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

// UploadHandler stores multipart uploads in object storage
type UploadHandler struct {
	storage  storage.ObjectStorage
	maxBytes int64
	log      logger.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(objectStorage storage.ObjectStorage, maxBytes int64, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		storage:  objectStorage,
		maxBytes: maxBytes,
		log:      log,
	}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
}

// Upload stores the "file" form field under <folder>/<uid>/<uuid><ext>.
// Images also get a JPEG thumbnail under <folder>/<uid>/thumbs/.
func (h *UploadHandler) Upload(c echo.Context) error {
	folder := c.FormValue("folder")
	if folder == "" {
		folder = "images"
	}
	accepted, ok := uploadFolders[folder]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidFolder)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired).SetInternal(err)
	}
	if fileHeader.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired).SetInternal(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if int64(len(data)) > h.maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileTooLarge)
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}

	// Trust the content, not the client supplied header
	detected := mimetype.Detect(data)
	contentType := baseMediaType(detected.String())
	if !acceptsMediaType(accepted, contentType) {
		return echo.NewHTTPError(http.StatusBadRequest, msgUnsupportedFile)
	}

	ext := detected.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(fileHeader.Filename))
	}

	ctx := c.Request().Context()
	uid := currentUID(c)
	name := uuid.NewString()
	objectPath := path.Join(folder, uid, name+ext)

	url, err := h.storage.Put(ctx, objectPath, contentType, data)
	if err != nil {
		h.log.Error("failed to store upload ", objectPath, ": ", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := UploadResponse{
		URL:         url,
		Path:        objectPath,
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	if strings.HasPrefix(contentType, "image/") {
		resp.ThumbnailURL = h.storeThumbnail(c, folder, uid, name, data)
	}

	h.log.Info("stored upload ", objectPath, " (", contentType, ", ", len(data), " bytes)")
	return c.JSON(http.StatusCreated, resp)
}

// storeThumbnail returns the thumbnail URL, or "" when the image could not be thumbnailed
func (h *UploadHandler) storeThumbnail(c echo.Context, folder, uid, name string, data []byte) string {
	thumb, err := media.Thumbnail(data, media.ThumbnailMaxWidth, media.ThumbnailMaxHeight)
	if err != nil {
		h.log.Warn("skipping thumbnail for ", name, ": ", err)
		return ""
	}

	thumbPath := path.Join(folder, uid, "thumbs", name+".jpg")
	url, err := h.storage.Put(c.Request().Context(), thumbPath, "image/jpeg", thumb)
	if err != nil {
		h.log.Warn("failed to store thumbnail ", thumbPath, ": ", err)
		return ""
	}
	return url
}

func baseMediaType(mediaType string) string {
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(base)
}

func acceptsMediaType(accepted []string, contentType string) bool {
	for _, prefix := range accepted {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
