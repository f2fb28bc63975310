package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocklens/warehouse-core/internal/app/middlewares"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/services"
)

type CountHandler struct {
	countService        *services.CountService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewCountHandler(countService *services.CountService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *CountHandler {
	return &CountHandler{
		countService:        countService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *CountHandler) RegisterRoutes(router fiber.Router) {
	itemGroup := router.Group("/audit-items")

	itemGroup.Post("/:id/count",
		h.authMiddleware.RequireActor,
		h.rateLimitMiddleware.LimitByActor(middlewares.CountSubmitLimit),
		h.SaveCount,
	)
	itemGroup.Get("/:id/logs", h.authMiddleware.RequireActor, h.GetCountLogs)
}

func (h *CountHandler) SaveCount(c *fiber.Ctx) error {
	var req models.CountSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	actor := middlewares.ActorFromContext(c)

	item, err := h.countService.SaveCount(c.Context(), c.Params("id"), &req, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, item)
}

func (h *CountHandler) GetCountLogs(c *fiber.Ctx) error {
	logs, err := h.countService.GetCountLogs(c.Context(), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, logs)
}
