package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/photodex/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/photodex/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/photodex/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/photodex/internal/config"
	"github.com/saturnino-fabrica-de-software/photodex/internal/service"
	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

type Dependencies struct {
	Search  *service.Search
	Indexer *service.Indexer
	Store   storage.BlobStore
	Config  *config.Config
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Photodex API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	healthHandler := handler.NewHealthHandler()
	r.app.Get("/", healthHandler.Hello)
	r.app.Get("/health", healthHandler.Health)

	if r.deps == nil {
		return
	}

	debugHandler := handler.NewDebugHandler(r.deps.Store, r.logger)
	r.app.Get("/debug/storage", debugHandler.Storage)

	searchHandler := handler.NewSearchHandler(
		r.deps.Search,
		r.deps.Config.MatchThreshold,
		r.deps.Config.SelfieThreshold,
		r.logger,
	)
	apiGroup := r.app.Group("/api")
	apiGroup.Post("/find-matches", searchHandler.FindMatches)
	apiGroup.Post("/selfie-search", searchHandler.SelfieSearch)

	indexHandler := handler.NewIndexHandler(r.deps.Indexer, r.deps.Config.PhotoDir, r.logger)
	r.app.Post("/index-photos", indexHandler.IndexPhotos)
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}

// App exposes the fiber app for tests
func (r *Router) App() *fiber.App {
	return r.app
}
