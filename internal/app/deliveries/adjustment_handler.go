package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocklens/warehouse-core/internal/app/middlewares"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/services"
)

type AdjustmentHandler struct {
	adjustmentService *services.AdjustmentService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewAdjustmentHandler(adjustmentService *services.AdjustmentService, authMiddleware *middlewares.AuthMiddleware) *AdjustmentHandler {
	return &AdjustmentHandler{
		adjustmentService: adjustmentService,
		authMiddleware:    authMiddleware,
	}
}

func (h *AdjustmentHandler) RegisterRoutes(router fiber.Router) {
	adjustmentGroup := router.Group("/adjustments")

	adjustmentGroup.Get("/:id", h.authMiddleware.RequireActor, h.GetAdjustment)
}

func (h *AdjustmentHandler) GetAdjustment(c *fiber.Ctx) error {
	adjustment, err := h.adjustmentService.GetAdjustment(c.Context(), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, adjustment)
}
