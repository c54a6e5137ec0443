package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/map-annotation-service/internal/config"
	"github.com/map-annotation-service/internal/delivery/http/handler"
	"github.com/map-annotation-service/internal/delivery/http/middleware"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	drawHandler      *handler.DrawHandler
	selectionHandler *handler.SelectionHandler
	layerHandler     *handler.LayerHandler
	iconHandler      *handler.IconHandler
	mapHandler       *handler.MapHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	drawHandler *handler.DrawHandler,
	selectionHandler *handler.SelectionHandler,
	layerHandler *handler.LayerHandler,
	iconHandler *handler.IconHandler,
	mapHandler *handler.MapHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Map Annotation Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		drawHandler:      drawHandler,
		selectionHandler: selectionHandler,
		layerHandler:     layerHandler,
		iconHandler:      iconHandler,
		mapHandler:       mapHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber приложение (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Иконки маркеров
	s.app.Static("/static", "./static")

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/workspace", s.selectionHandler.GetWorkspace)

	// Создание маркеров
	draw := api.Group("/draw")
	draw.Post("/start", s.drawHandler.StartDrawing)
	draw.Post("/stop", s.drawHandler.StopDrawing)
	draw.Post("/end", s.drawHandler.DrawEnd)
	draw.Post("/confirm", s.drawHandler.Confirm)
	draw.Post("/cancel", s.drawHandler.Cancel)

	// Выбор и попап
	api.Post("/select", s.selectionHandler.Select)
	api.Post("/grid/rows/click", s.selectionHandler.ClickGridRow)
	api.Post("/mode", s.selectionHandler.SetMode)
	api.Post("/popup/close", s.selectionHandler.ClosePopup)

	// Таблица и слои
	api.Get("/markers", s.layerHandler.ListMarkers)
	api.Get("/layers/:category/features.geojson", s.layerHandler.GetFeatures)
	api.Get("/layers/:category/style", s.layerHandler.GetStyle)

	// Иконки
	api.Get("/icons/settings", s.iconHandler.GetSettings)
	api.Put("/icons/:category/settings", s.iconHandler.UpdateSettings)

	// Курсор и измерения
	api.Get("/position", s.mapHandler.GetPosition)
	api.Post("/measure/line", s.mapHandler.MeasureLine)
	api.Post("/measure/polygon", s.mapHandler.MeasurePolygon)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			logger.Warn("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.Error(err),
			)
			appErr := errors.New(errorCodeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code)
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{Error: appErr})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}

func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_SERVER_ERROR"
		}
		return "HTTP_ERROR"
	}
}
