package catalog

import (
	"errors"
	"strconv"

	"catalog-service/core/logger"
	"catalog-service/core/middleware/etag"
	"catalog-service/core/version"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the catalog read endpoints.
type Handler struct {
	service  *Service
	versions *version.Service
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, versions *version.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, versions: versions, logger: logger}
}

// RegisterRoutes registers the catalog routes. Categories and products are
// fingerprinted by catalog_version, stats by stats_version.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	catalogTag := etag.New(func(c *fiber.Ctx) (int64, error) {
		return h.versions.Get(c.Context(), version.CatalogKind)
	})
	statsTag := etag.New(func(c *fiber.Ctx) (int64, error) {
		return h.versions.Get(c.Context(), version.StatsKind)
	})

	app.Get("/categories", catalogTag, h.HandleListCategories)
	app.Get("/products", catalogTag, h.HandleListProducts)
	app.Get("/products/:id", catalogTag, h.HandleGetProduct)
	app.Get("/stats", statsTag, h.HandleStats)
}

// HandleListCategories returns all categories with product counts.
func (h *Handler) HandleListCategories(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	v, err := h.versions.Get(c.Context(), version.CatalogKind)
	if err != nil {
		return h.fail(c, l, "category listing failed", err)
	}

	cats, err := h.service.ListCategories(c.Context())
	if err != nil {
		return h.fail(c, l, "category listing failed", err)
	}

	return c.JSON(fiber.Map{
		"version":    v,
		"categories": cats,
	})
}

// HandleListProducts returns a filtered, sorted, paginated product listing.
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	v, err := h.versions.Get(c.Context(), version.CatalogKind)
	if err != nil {
		return h.fail(c, l, "product listing failed", err)
	}

	q := ProductQuery{
		CategoryID: int64(c.QueryInt("category_id")),
		Q:          c.Query("q"),
		Sort:       c.Query("sort", "created_desc"),
		PerPage:    c.QueryInt("per_page", 15),
		Page:       c.QueryInt("page", 1),
	}
	if raw := c.Query("min_price"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MaxPrice = &f
		}
	}

	page, err := h.service.ListProducts(c.Context(), q)
	if err != nil {
		return h.fail(c, l, "product listing failed", err)
	}

	return c.JSON(fiber.Map{
		"version":    v,
		"pagination": page.Pagination,
		"data":       page.Data,
	})
}

// HandleGetProduct returns a single product with its category. The id is the
// upstream external id, the only product identity the API exposes.
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return h.notFound(c)
	}

	v, err := h.versions.Get(c.Context(), version.CatalogKind)
	if err != nil {
		return h.fail(c, l, "product lookup failed", err)
	}

	p, err := h.service.GetProduct(c.Context(), int64(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		return h.fail(c, l, "product lookup failed", err)
	}

	return c.JSON(fiber.Map{
		"version": v,
		"data":    p,
	})
}

// HandleStats returns aggregate catalog statistics.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	v, err := h.versions.Get(c.Context(), version.StatsKind)
	if err != nil {
		return h.fail(c, l, "stats failed", err)
	}

	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return h.fail(c, l, "stats failed", err)
	}

	return c.JSON(fiber.Map{
		"version":          v,
		"total_products":   stats.TotalProducts,
		"total_categories": stats.TotalCategories,
		"min_price":        stats.MinPrice,
		"max_price":        stats.MaxPrice,
		"avg_price":        stats.AvgPrice,
	})
}

func (h *Handler) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": "product not found",
	})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": msg,
	})
}
