package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"ipfs-uploader/internal/upload"
)

//go:embed templates/*.html
var templateFS embed.FS

// WebHandler renders the browser uploader page
type WebHandler struct {
	templates    *template.Template
	orchestrator *upload.Orchestrator
	logger       *zap.Logger
}

// NewWebHandler creates a new web handler
func NewWebHandler(orchestrator *upload.Orchestrator, logger *zap.Logger) (*WebHandler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WebHandler{
		templates:    templates,
		orchestrator: orchestrator,
		logger:       logger,
	}, nil
}

// PageData represents data passed to templates
type PageData struct {
	Title    string
	State    pageState
	MaxBytes int64
	Accept   string
}

type pageState struct {
	Uploading bool
	Current   *upload.Result
	Preview   upload.MediaKind
}

// ServeHome serves the uploader page
func (h *WebHandler) ServeHome(c fiber.Ctx) error {
	state := h.orchestrator.State()
	policy := h.orchestrator.Policy()

	data := PageData{
		Title: "IPFS Uploader",
		State: pageState{
			Uploading: state.Uploading(),
			Current:   state.Current,
		},
		MaxBytes: policy.MaxByteLength,
		Accept:   strings.Join(policy.AllowedExtensions, ","),
	}
	if state.Current != nil {
		data.State.Preview = state.Current.Preview()
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error("Template execution failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("Template execution failed")
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// RegisterWebRoutes registers the web interface routes
func (h *WebHandler) RegisterWebRoutes(app *fiber.App) {
	app.Get("/", h.ServeHome)
}
