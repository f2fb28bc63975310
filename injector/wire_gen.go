// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

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

// Injectors from injector.go:

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	healthHandler := deliveries.NewHealthHandler()
	db := infrastructures.NewDatabase()
	gormAuditRepo := repositories.NewGormAuditRepo(db)
	gormProductRepo := repositories.NewGormProductRepo(db)
	gormUserRepo := repositories.NewGormUserRepo(db)
	client := infrastructures.NewRedisClient()
	scopeService := services.NewScopeService(gormProductRepo, gormUserRepo, client)
	validator := infrastructures.NewValidator()
	auditService := services.NewAuditService(gormAuditRepo, gormProductRepo, scopeService, validator)
	gormAdjustmentRepo := repositories.NewGormAdjustmentRepo(db)
	adjustmentService := services.NewAdjustmentService(gormAuditRepo, gormAdjustmentRepo, gormProductRepo)
	kpiService := services.NewKPIService(gormAuditRepo, client)
	authMiddleware := provideAuthMiddleware()
	auditHandler := deliveries.NewAuditHandler(auditService, adjustmentService, kpiService, authMiddleware)
	countService := services.NewCountService(gormAuditRepo, validator)
	string2 := _wireStringValue
	redisRateLimiter := middlewares.NewRedisRateLimiter(client, string2)
	rateLimitMiddleware := middlewares.NewRateLimitMiddleware(redisRateLimiter)
	countHandler := deliveries.NewCountHandler(countService, authMiddleware, rateLimitMiddleware)
	adjustmentHandler := deliveries.NewAdjustmentHandler(adjustmentService, authMiddleware)
	catalogHandler := deliveries.NewCatalogHandler(scopeService)
	application := &Application{
		HealthHandler:       healthHandler,
		AuditHandler:        auditHandler,
		CountHandler:        countHandler,
		AdjustmentHandler:   adjustmentHandler,
		CatalogHandler:      catalogHandler,
		RateLimitMiddleware: rateLimitMiddleware,
	}
	return application, nil
}

var (
	_wireStringValue = "warehouse"
)

// injector.go:

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
var infrastructureSet = wire.NewSet(infrastructures.NewDatabase, infrastructures.NewRedisClient, infrastructures.NewValidator, wire.Value("warehouse"), wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)), middlewares.NewRedisRateLimiter)

// Repository providers
var repositorySet = wire.NewSet(repositories.NewGormAuditRepo, repositories.NewGormProductRepo, repositories.NewGormAdjustmentRepo, repositories.NewGormUserRepo, wire.Bind(new(repositories.AuditStore), new(*repositories.GormAuditRepo)), wire.Bind(new(repositories.ProductStore), new(*repositories.GormProductRepo)), wire.Bind(new(repositories.AdjustmentStore), new(*repositories.GormAdjustmentRepo)), wire.Bind(new(repositories.UserStore), new(*repositories.GormUserRepo)))

// Service providers
var serviceSet = wire.NewSet(services.NewScopeService, services.NewAuditService, services.NewCountService, services.NewAdjustmentService, services.NewKPIService)

// Middleware providers
var middlewareSet = wire.NewSet(
	provideAuthMiddleware, middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(deliveries.NewHealthHandler, deliveries.NewAuditHandler, deliveries.NewCountHandler, deliveries.NewAdjustmentHandler, deliveries.NewCatalogHandler, wire.Struct(new(Application), "*"))
