package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timmy/photorama/internal/service"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	gallery *service.GalleryService
}

func NewHealthHandler(gallery *service.GalleryService) *HealthHandler {
	return &HealthHandler{gallery: gallery}
}

// Health returns the service status and the current list version.
// catalog_count is reported only when the catalog is enabled.
func (h *HealthHandler) Health(c *gin.Context) {
	snap := h.gallery.Snapshot()
	resp := gin.H{
		"status":       "ok",
		"list_version": snap.Version,
		"photo_count":  len(snap.Photos),
	}
	if n, err := h.gallery.CatalogCount(c.Request.Context()); err == nil {
		resp["catalog_count"] = n
	}
	c.JSON(http.StatusOK, resp)
}
