package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/services"
)

// CatalogHandler serves the filter-building lookups used by the audit
// creation screen.
type CatalogHandler struct {
	scopeService *services.ScopeService
}

func NewCatalogHandler(scopeService *services.ScopeService) *CatalogHandler {
	return &CatalogHandler{scopeService: scopeService}
}

func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	catalogGroup := router.Group("/catalog")

	catalogGroup.Get("/categories", h.GetCategories)
	catalogGroup.Get("/locations", h.GetLocations)
	catalogGroup.Get("/auditors", h.GetAuditors)
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.scopeService.ListDistinctCategories(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, categories)
}

func (h *CatalogHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.scopeService.ListDistinctLocations(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, locations)
}

func (h *CatalogHandler) GetAuditors(c *fiber.Ctx) error {
	auditors, err := h.scopeService.ListAuditors(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, auditors)
}
