package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"ipfs-uploader/internal/mirror"
	"ipfs-uploader/internal/models"
)

// MirrorHandler reports on the archive mirror
type MirrorHandler struct {
	service *mirror.Service
}

// NewMirrorHandler creates a new mirror handler
func NewMirrorHandler(service *mirror.Service) *MirrorHandler {
	return &MirrorHandler{service: service}
}

// Health godoc
// @Summary Mirror storage health
// @Description Checks that the archive bucket is reachable.
// @Tags Mirror
// @Produce json
// @Success 200 {object} models.MirrorHealthResponse
// @Failure 503 {object} models.MirrorHealthResponse
// @Router /api/mirror/health [get]
func (h *MirrorHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.service.HealthCheck(ctx); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(models.MirrorHealthResponse{
			Status:   "unhealthy",
			Provider: h.service.Provider(),
			Error:    err.Error(),
		})
	}

	return c.JSON(models.MirrorHealthResponse{
		Status:   "healthy",
		Provider: h.service.Provider(),
	})
}

// RegisterMirrorRoutes registers the mirror routes
func (h *MirrorHandler) RegisterMirrorRoutes(app *fiber.App) {
	app.Get("/api/mirror/health", h.Health)
}
