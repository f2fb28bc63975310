//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/stocklens/warehouse-core/internal/app/deliveries"
	"github.com/stocklens/warehouse-core/internal/app/middlewares"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
	"github.com/stocklens/warehouse-core/internal/app/services"
	"github.com/stocklens/warehouse-core/internal/infrastructures"
)

// Application is the assembled dependency container for warehouse-core.
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuditHandler        *deliveries.AuditHandler
	CountHandler        *deliveries.CountHandler
	AdjustmentHandler   *deliveries.AdjustmentHandler
	CatalogHandler      *deliveries.CatalogHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes on a Fiber router.
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AuditHandler.RegisterRoutes(router)
	app.CountHandler.RegisterRoutes(router)
	app.AdjustmentHandler.RegisterRoutes(router)
	app.CatalogHandler.RegisterRoutes(router)
}

func provideAuthMiddleware() *middlewares.AuthMiddleware {
	return middlewares.NewAuthMiddleware(infrastructures.Config.JWT_SECRET)
}

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("warehouse"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Repository providers
var repositorySet = wire.NewSet(
	repositories.NewGormAuditRepo,
	repositories.NewGormProductRepo,
	repositories.NewGormAdjustmentRepo,
	repositories.NewGormUserRepo,
	wire.Bind(new(repositories.AuditStore), new(*repositories.GormAuditRepo)),
	wire.Bind(new(repositories.ProductStore), new(*repositories.GormProductRepo)),
	wire.Bind(new(repositories.AdjustmentStore), new(*repositories.GormAdjustmentRepo)),
	wire.Bind(new(repositories.UserStore), new(*repositories.GormUserRepo)),
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewScopeService,
	services.NewAuditService,
	services.NewCountService,
	services.NewAdjustmentService,
	services.NewKPIService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	provideAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuditHandler,
	deliveries.NewCountHandler,
	deliveries.NewAdjustmentHandler,
	deliveries.NewCatalogHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
