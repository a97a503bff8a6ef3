package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"

	"ipfs-uploader/internal/models"
	"ipfs-uploader/internal/upload"
)

const errUploadInProgress = "An upload is already in progress"

// UploadHandler exposes the upload orchestrator over HTTP
type UploadHandler struct {
	orchestrator *upload.Orchestrator
	logger       *zap.Logger

	// gate serialises submissions; the orchestrator expects one at a time
	gate sync.Mutex
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(orchestrator *upload.Orchestrator, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// UploadFile godoc
// @Summary Publish a file to IPFS
// @Description Validates the submitted file against the upload policy and adds it to IPFS. Exactly one file part named "file" is accepted.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to publish"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.UploadResponse
// @Failure 409 {object} models.UploadResponse
// @Failure 502 {object} models.UploadResponse
// @Router /api/upload [post]
func (h *UploadHandler) UploadFile(c fiber.Ctx) error {
	if !h.gate.TryLock() {
		return c.Status(http.StatusConflict).JSON(models.UploadResponse{
			Success: false,
			Error:   errUploadInProgress,
		})
	}
	defer h.gate.Unlock()

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.UploadResponse{
			Success: false,
			Error:   "Failed to parse multipart form: " + err.Error(),
		})
	}

	files, err := readFileParts(form.File["file"])
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(models.UploadResponse{
			Success: false,
			Error:   "Failed to read uploaded file: " + err.Error(),
		})
	}

	// The add call runs to completion even if the client goes away
	res, err := h.orchestrator.SubmitFiles(context.Background(), files)
	return h.respond(c, res, err)
}

// UploadText godoc
// @Summary Publish raw text to IPFS
// @Description Adds the "data" value as text. Accepts a form field or a JSON body. The result media type is always application/json.
// @Tags Upload
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body models.TextUploadRequest false "Text payload"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.UploadResponse
// @Failure 409 {object} models.UploadResponse
// @Failure 502 {object} models.UploadResponse
// @Router /api/upload/text [post]
func (h *UploadHandler) UploadText(c fiber.Ctx) error {
	if !h.gate.TryLock() {
		return c.Status(http.StatusConflict).JSON(models.UploadResponse{
			Success: false,
			Error:   errUploadInProgress,
		})
	}
	defer h.gate.Unlock()

	text := c.FormValue("data")
	if c.Is("json") {
		var req models.TextUploadRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(models.UploadResponse{
				Success: false,
				Error:   "Invalid JSON body: " + err.Error(),
			})
		}
		text = req.Data
	}

	res, err := h.orchestrator.SubmitText(context.Background(), text)
	return h.respond(c, res, err)
}

// State godoc
// @Summary Uploader state
// @Description Returns whether an upload is in flight, the displayed result and the last failure.
// @Tags Upload
// @Produce json
// @Success 200 {object} models.StateResponse
// @Router /api/upload/state [get]
func (h *UploadHandler) State(c fiber.Ctx) error {
	return c.JSON(stateResponse(h.orchestrator.State()))
}

// Result godoc
// @Summary Copyable result values
// @Description Returns the hash and gateway URL of the displayed result.
// @Tags Upload
// @Produce json
// @Success 200 {object} models.ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/upload/result [get]
func (h *UploadHandler) Result(c fiber.Ctx) error {
	res, ok := h.orchestrator.Current()
	if !ok {
		return c.Status(http.StatusNotFound).JSON(models.ErrorResponse{
			Error: "No upload yet",
		})
	}

	return c.JSON(models.ResultResponse{
		Hash:    h.orchestrator.CopyableHash(),
		URL:     h.orchestrator.CopyableURL(),
		Preview: res.Preview(),
	})
}

// RegisterUploadRoutes registers the upload routes
func (h *UploadHandler) RegisterUploadRoutes(app *fiber.App) {
	app.Post("/api/upload", h.UploadFile)
	app.Post("/api/upload/text", h.UploadText)
	app.Get("/api/upload/state", h.State)
	app.Get("/api/upload/result", h.Result)
}

func (h *UploadHandler) respond(c fiber.Ctx, res *upload.Result, err error) error {
	notes := upload.Notifications(err)

	if err == nil {
		return c.JSON(models.UploadResponse{
			Success:       true,
			Result:        res,
			Preview:       res.Preview(),
			Notifications: notes,
		})
	}

	status := http.StatusBadGateway
	if errors.Is(err, upload.ErrRejected) {
		status = http.StatusBadRequest
	} else {
		h.logger.Error("IPFS upload failed",
			zap.String("request_id", requestid.FromContext(c)),
			zap.Error(err))
	}

	return c.Status(status).JSON(models.UploadResponse{
		Success:       false,
		Notifications: notes,
		Error:         notes[0].Message,
	})
}

func stateResponse(state upload.State) models.StateResponse {
	resp := models.StateResponse{
		Status:    state.Status,
		Uploading: state.Uploading(),
		Current:   state.Current,
	}
	if state.Current != nil {
		resp.Preview = state.Current.Preview()
	}
	if state.Err != nil {
		resp.Error = upload.Notifications(state.Err)[0].Message
	}
	return resp
}

// readFileParts loads every submitted part into a descriptor. Validation
// decides how many of them are acceptable.
func readFileParts(headers []*multipart.FileHeader) ([]upload.FileDescriptor, error) {
	files := make([]upload.FileDescriptor, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, upload.NewFileDescriptor(fh.Filename, fh.Header.Get("Content-Type"), data))
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

