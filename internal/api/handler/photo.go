package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timmy/photorama/internal/api/middleware"
	"github.com/timmy/photorama/internal/domain"
	"github.com/timmy/photorama/internal/gallery"
	"github.com/timmy/photorama/internal/logger"
	"github.com/timmy/photorama/internal/service"
)

// HeaderPhotoIndex carries a photo's current position in the list.
const HeaderPhotoIndex = "X-Photo-Index"

const defaultCatalogLimit = 100

// PhotoHandler serves the photo list, photo details and images.
type PhotoHandler struct {
	gallery *service.GalleryService
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(gallery *service.GalleryService) *PhotoHandler {
	return &PhotoHandler{gallery: gallery}
}

// PhotoResponse is the JSON form of a photo.
type PhotoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	RemoteURL string    `json:"remote_url"`
	DateTaken time.Time `json:"date_taken"`
	ImageURL  string    `json:"image_url"`
	Index     *int      `json:"index,omitempty"`
}

// ListResponse is the JSON form of the photo list.
type ListResponse struct {
	Method  domain.Method   `json:"method,omitempty"`
	Version uint64          `json:"version"`
	Count   int             `json:"count"`
	Photos  []PhotoResponse `json:"photos"`
}

func toPhotoResponse(p domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:        p.ID(),
		Title:     p.Title(),
		RemoteURL: p.RemoteURL().String(),
		DateTaken: p.DateTaken(),
		ImageURL:  "/api/v1/photos/" + p.ID() + "/image",
	}
}

func toListResponse(snap gallery.Snapshot) ListResponse {
	photos := make([]PhotoResponse, 0, len(snap.Photos))
	for _, p := range snap.Photos {
		photos = append(photos, toPhotoResponse(p))
	}
	return ListResponse{
		Method:  snap.Method,
		Version: snap.Version,
		Count:   len(photos),
		Photos:  photos,
	}
}

// Refresh handles POST /api/v1/photos/refresh?method=interesting|recent.
func (h *PhotoHandler) Refresh(c *gin.Context) {
	method, err := domain.ParseMethod(c.DefaultQuery("method", string(domain.MethodInterestingPhotos)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(c, err.Error()))
		return
	}

	snap, err := h.gallery.Refresh(c.Request.Context(), method)
	if err != nil {
		status, msg := errorStatus(err)
		middleware.GetLogger(c).WithError(err).Warn("Photo refresh failed")
		body := errorBody(c, msg)
		body["version"] = snap.Version
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, toListResponse(snap))
}

// ListPhotos handles GET /api/v1/photos.
// With source=catalog it lists catalogued photos for method (default
// interesting), newest first, up to limit (default 100, 0 for all).
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	if c.Query("source") != "catalog" {
		c.JSON(http.StatusOK, toListResponse(h.gallery.Snapshot()))
		return
	}

	method, err := domain.ParseMethod(c.DefaultQuery("method", string(domain.MethodInterestingPhotos)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(c, err.Error()))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultCatalogLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, errorBody(c, "limit must be a non-negative integer"))
		return
	}

	photos, err := h.gallery.CatalogPhotos(c.Request.Context(), method, limit)
	if err != nil {
		status, msg := errorStatus(err)
		middleware.GetLogger(c).WithError(err).Warn("Catalog listing failed")
		c.JSON(status, errorBody(c, msg))
		return
	}
	c.JSON(http.StatusOK, toListResponse(gallery.Snapshot{Photos: photos, Method: method}))
}

// GetPhoto handles GET /api/v1/photos/:id.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	photo, idx, err := h.gallery.Photo(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := errorStatus(err)
		c.JSON(status, errorBody(c, msg))
		return
	}

	resp := toPhotoResponse(photo)
	if idx >= 0 {
		resp.Index = &idx
	}
	c.JSON(http.StatusOK, resp)
}

// GetImage handles GET /api/v1/photos/:id/image and returns the original
// image bytes.
func (h *PhotoHandler) GetImage(c *gin.Context) {
	img, idx, err := h.gallery.Image(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := errorStatus(err)
		middleware.GetLogger(c).WithError(err).Warn("Image request failed")
		c.JSON(status, errorBody(c, msg))
		return
	}

	c.Header(HeaderPhotoIndex, strconv.Itoa(idx))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, img.ContentType(), img.Data)
}

// errorBody builds an error response tagged with the request id.
func errorBody(c *gin.Context, msg string) gin.H {
	return gin.H{"error": msg, "request_id": logger.GetRequestID(c.Request.Context())}
}

// errorStatus maps pipeline errors to HTTP status codes.
func errorStatus(err error) (int, string) {
	var (
		transportErr *domain.TransportError
		parseErr     *domain.ParseError
		decodeErr    *domain.ImageDecodeError
	)
	switch {
	case errors.Is(err, service.ErrPhotoNotFound), errors.Is(err, service.ErrCatalogDisabled):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrRefreshInProgress):
		return http.StatusConflict, err.Error()
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, "upstream unreachable: " + transportErr.Err.Error()
	case errors.As(err, &parseErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
