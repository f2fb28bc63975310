package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stocklens/warehouse-core/internal/app/middlewares"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/services"
)

type AuditHandler struct {
	auditService      *services.AuditService
	adjustmentService *services.AdjustmentService
	kpiService        *services.KPIService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, adjustmentService *services.AdjustmentService, kpiService *services.KPIService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:      auditService,
		adjustmentService: adjustmentService,
		kpiService:        kpiService,
		authMiddleware:    authMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	auditGroup := router.Group("/audits")

	auditGroup.Get("/kpi", h.GetKPI)
	auditGroup.Get("/assigned", h.authMiddleware.RequireActor, h.GetAssignedAudits)
	auditGroup.Get("/", h.GetAudits)
	auditGroup.Get("/:id", h.GetAudit)
	auditGroup.Get("/:id/items", h.GetAuditItems)

	auditGroup.Post("/", h.authMiddleware.RequireActor, h.CreateAudit)
	auditGroup.Post("/:id/submit-review", h.authMiddleware.RequireActor, h.SubmitForReview)
	auditGroup.Post("/:id/adjustment", h.authMiddleware.RequireActor, h.CreateAdjustment)
	auditGroup.Post("/:id/complete", h.authMiddleware.RequireActor, h.CompleteAudit)
	auditGroup.Post("/:id/close", h.authMiddleware.RequireActor, h.CloseAudit)
}

func (h *AuditHandler) CreateAudit(c *fiber.Ctx) error {
	var req models.AuditCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	actor := middlewares.ActorFromContext(c)

	audit, err := h.auditService.CreateAudit(c.Context(), &req, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) GetAudits(c *fiber.Ctx) error {
	var pagination models.PaginationRequest
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil {
		pagination.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit", "10")); err == nil {
		pagination.Limit = limit
	}

	var status *models.AuditStatus
	if statusStr := c.Query("status"); statusStr != "" {
		auditStatus := models.AuditStatus(statusStr)
		status = &auditStatus
	}

	audits, err := h.auditService.ListAudits(c.Context(), &pagination, status)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

func (h *AuditHandler) GetAssignedAudits(c *fiber.Ctx) error {
	actor := middlewares.ActorFromContext(c)

	audits, err := h.auditService.ListAssignedAudits(c.Context(), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	audit, err := h.auditService.GetAudit(c.Context(), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) GetAuditItems(c *fiber.Ctx) error {
	items, err := h.auditService.GetAuditItems(c.Context(), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, items)
}

func (h *AuditHandler) SubmitForReview(c *fiber.Ctx) error {
	actor := middlewares.ActorFromContext(c)

	audit, err := h.auditService.SubmitForReview(c.Context(), c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) CreateAdjustment(c *fiber.Ctx) error {
	actor := middlewares.ActorFromContext(c)

	adjustment, err := h.adjustmentService.CreateFromAudit(c.Context(), c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, adjustment)
}

func (h *AuditHandler) CompleteAudit(c *fiber.Ctx) error {
	actor := middlewares.ActorFromContext(c)

	audit, err := h.auditService.CompleteAudit(c.Context(), c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) CloseAudit(c *fiber.Ctx) error {
	actor := middlewares.ActorFromContext(c)

	audit, err := h.auditService.CloseAudit(c.Context(), c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) GetKPI(c *fiber.Ctx) error {
	kpi, err := h.kpiService.ComputeKPI(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, kpi)
}
