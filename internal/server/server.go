package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "ipfs-uploader/docs"
	"ipfs-uploader/internal/config"
	"ipfs-uploader/internal/handlers"
	"ipfs-uploader/internal/mirror"
	"ipfs-uploader/internal/pool"
	"ipfs-uploader/internal/upload"
)

// Server represents the HTTP server
type Server struct {
	app           *fiber.App
	config        *config.Config
	logger        *zap.Logger
	orchestrator  *upload.Orchestrator
	workerPool    *pool.WorkerPool
	mirror        *mirror.Service
	uploadHandler *handlers.UploadHandler
	webHandler    *handlers.WebHandler
	metaHandler   *handlers.MetaHandler
	mirrorHandler *handlers.MirrorHandler
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Load()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Initialize sets up all server components
func (s *Server) Initialize() error {
	opts := []upload.Option{
		upload.WithNotifier(upload.NewLogNotifier(s.logger.Named("upload"))),
	}

	// Archive mirror runs on the worker pool when enabled
	if s.config.Mirror.Enabled {
		s.logger.Info("Initializing archive mirror",
			zap.String("provider", string(s.config.Mirror.Provider)),
			zap.Int("workers", s.config.Mirror.Workers))

		provider, err := mirror.NewProvider(s.config.Mirror.ToProviderConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize mirror provider: %w", err)
		}

		s.workerPool = pool.NewWorkerPool(s.config.Mirror.Workers, s.config.Mirror.QueueSize)
		if err := s.workerPool.Start(); err != nil {
			return fmt.Errorf("failed to start worker pool: %w", err)
		}

		s.mirror = mirror.NewService(provider, s.workerPool, s.config.Mirror.KeyPrefix, s.logger)
		s.mirrorHandler = handlers.NewMirrorHandler(s.mirror)
		opts = append(opts, upload.WithSuccessHook(s.mirror.Hook()))
	}

	transport := upload.NewTransport(
		s.config.IPFSAPIURL,
		s.config.IPFSGatewayURL,
		upload.WithTransportLogger(s.logger.Named("transport")),
	)
	s.orchestrator = upload.NewOrchestrator(transport, s.config.Policy(), opts...)

	s.uploadHandler = handlers.NewUploadHandler(s.orchestrator, s.logger)

	webHandler, err := handlers.NewWebHandler(s.orchestrator, s.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize web handler: %w", err)
	}
	s.webHandler = webHandler

	s.metaHandler = handlers.NewMetaHandler(readAPIVersion(), s.orchestrator, s.mirror, s.workerPool)

	// Initialize Fiber app with v3 config
	s.app = fiber.New(fiber.Config{
		ServerHeader:  "IPFSUploader",
		StrictRouting: true,
		CaseSensitive: true,
		AppName:       "IPFS Uploader API",
		BodyLimit:     s.config.BodyLimit,
		ReadTimeout:   s.config.ReadTimeout,
		WriteTimeout:  s.config.WriteTimeout,
		IdleTimeout:   s.config.IdleTimeout,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				s.logger.Error("Unhandled request error",
					zap.String("path", c.Path()),
					zap.String("request_id", requestid.FromContext(c)),
					zap.Error(err))
			}

			return c.Status(code).JSON(fiber.Map{
				"error":     message,
				"timestamp": time.Now().Unix(),
			})
		},
	})

	s.setupMiddleware()
	s.setupRoutes()

	return nil
}

// App returns the Fiber application
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       86400,
	}))

	s.app.Use(recover.New())
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.webHandler.RegisterWebRoutes(s.app)
	s.metaHandler.RegisterMetaRoutes(s.app)
	s.uploadHandler.RegisterUploadRoutes(s.app)

	if s.mirrorHandler != nil {
		s.mirrorHandler.RegisterMirrorRoutes(s.app)
	}

	if s.config.EnableSwagger {
		s.registerSwaggerRoutes()
	}

	// 404 handler
	s.app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}

func (s *Server) registerSwaggerRoutes() {
	swaggerFiles.Handler.Prefix = "/swagger"
	s.app.Get("/swagger", func(c fiber.Ctx) error {
		return c.Redirect().Status(fiber.StatusTemporaryRedirect).To("/swagger/index.html")
	})
	s.app.Get("/swagger/*", adaptor.HTTPHandler(httpSwagger.Handler(
		httpSwagger.InstanceName("swagger"),
		httpSwagger.DeepLinking(true),
	)))
}

// Start starts the server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	s.printStartupInfo()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", s.config.Port)
		if err := s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-shutdownCh:
		s.logger.Info("Shutting down server")
	case err := <-errCh:
		s.logger.Error("Server error", zap.Error(err))
		_ = s.Shutdown()
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		s.logger.Error("Error shutting down server", zap.Error(err))
	}

	// Drain pending mirror copies
	if s.workerPool != nil {
		s.workerPool.Stop(ctx)
		s.logger.Info("Worker pool stopped", zap.Any("stats", s.workerPool.Stats()))
	}

	s.logger.Info("Server shutdown complete")
	_ = s.logger.Sync()
	return nil
}

func (s *Server) printStartupInfo() {
	s.config.PrintConfig(s.logger)
	s.logger.Info("Server starting",
		zap.String("port", s.config.Port),
		zap.String("version", readAPIVersion()),
		zap.Int("cpu_cores", runtime.NumCPU()),
		zap.String("go_version", runtime.Version()),
		zap.Bool("mirror", s.mirror != nil))
}

func readAPIVersion() string {
	const fallbackVersion = "1.0.0"
	data, err := os.ReadFile("VERSION")
	if err != nil {
		return fallbackVersion
	}

	version := strings.TrimSpace(string(data))
	if version == "" {
		return fallbackVersion
	}

	return version
}
