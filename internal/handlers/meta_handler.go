package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"ipfs-uploader/internal/mirror"
	"ipfs-uploader/internal/models"
	"ipfs-uploader/internal/pool"
	"ipfs-uploader/internal/upload"
)

// MetaHandler exposes informational endpoints about the API surface.
type MetaHandler struct {
	version      string
	orchestrator *upload.Orchestrator
	mirror       *mirror.Service
	workers      *pool.WorkerPool
}

// NewMetaHandler constructs a metadata handler. mirrorSvc and workers are nil
// when the archive mirror is disabled.
func NewMetaHandler(version string, orchestrator *upload.Orchestrator, mirrorSvc *mirror.Service, workers *pool.WorkerPool) *MetaHandler {
	if version == "" {
		version = "1.0.0"
	}

	return &MetaHandler{
		version:      version,
		orchestrator: orchestrator,
		mirror:       mirrorSvc,
		workers:      workers,
	}
}

// APIInfo godoc
// @Summary API metadata
// @Description Provides API version and available endpoint catalogue.
// @Tags General
// @Produce json
// @Success 200 {object} models.APIInfoResponse
// @Router /api [get]
func (h *MetaHandler) APIInfo(c fiber.Ctx) error {
	endpoints := map[string]string{
		"upload_file":   "/api/upload",
		"upload_text":   "/api/upload/text",
		"upload_state":  "/api/upload/state",
		"upload_result": "/api/upload/result",
		"health":        "/health",
		"stats":         "/stats",
	}

	if h.mirror != nil {
		endpoints["mirror_health"] = "/api/mirror/health"
	}

	return c.JSON(models.APIInfoResponse{
		Name:      "IPFS Uploader API",
		Version:   h.version,
		Endpoints: endpoints,
	})
}

// Health godoc
// @Summary Service health
// @Description Reports liveness and the current uploader status.
// @Tags General
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *MetaHandler) Health(c fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Uploader:  h.orchestrator.State().Status,
		Mirror:    h.mirror != nil,
	})
}

// Stats godoc
// @Summary Upload statistics
// @Description Returns upload counters and, when enabled, mirror and worker pool counters.
// @Tags General
// @Produce json
// @Success 200 {object} models.StatsResponse
// @Router /stats [get]
func (h *MetaHandler) Stats(c fiber.Ctx) error {
	resp := models.StatsResponse{
		Uploads:   h.orchestrator.Stats(),
		Timestamp: time.Now().Unix(),
	}
	if h.mirror != nil {
		stats := h.mirror.Stats()
		resp.Mirror = &stats
	}
	if h.workers != nil {
		stats := h.workers.Stats()
		resp.Workers = &stats
	}
	return c.JSON(resp)
}

// RegisterMetaRoutes registers the informational routes
func (h *MetaHandler) RegisterMetaRoutes(app *fiber.App) {
	app.Get("/api", h.APIInfo)
	app.Get("/health", h.Health)
	app.Get("/stats", h.Stats)
}
