package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/internal/catalog"
	"github.com/Checker-Finance/catalog-api/internal/metrics"
	"github.com/Checker-Finance/catalog-api/pkg/model"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ProductService defines the catalog operations the handler depends on.
type ProductService interface {
	Create(ctx context.Context, params catalog.CreateParams) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, page, pageSize int) (*model.PagedResult, error)
}

// ProductsHandler handles HTTP API requests for catalog operations.
type ProductsHandler struct {
	logger  *zap.Logger
	service ProductService
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(logger *zap.Logger, service ProductService) *ProductsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductsHandler{logger: logger, service: service}
}

// POST /api/v1/products
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.IncRequest("create", "bad_request")
		return c.Status(fiber.StatusBadRequest).JSON(Problem{
			Title:  "Invalid request body",
			Detail: err.Error(),
		})
	}

	if err := req.Validate(); err != nil {
		metrics.IncRequest("create", "bad_request")
		return h.clientError(c, err)
	}

	product, err := h.service.Create(c.Context(), catalog.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		var invalid *catalog.InvalidArgumentError
		if errors.As(err, &invalid) {
			metrics.IncRequest("create", "bad_request")
			return h.clientError(c, err)
		}
		metrics.IncRequest("create", "error")
		h.logger.Error("create_product_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(Problem{
			Title:  "Internal error",
			Detail: "failed to create product",
		})
	}

	metrics.IncRequest("create", "ok")
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GET /api/v1/products/:id
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		metrics.IncRequest("get", "bad_request")
		return c.Status(fiber.StatusBadRequest).JSON(Problem{
			Title:  "Invalid product id",
			Detail: "id must be a valid UUID",
			Field:  "id",
		})
	}

	product, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		metrics.IncRequest("get", "error")
		h.logger.Error("get_product_failed", zap.String("product_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(Problem{
			Title:  "Internal error",
			Detail: "failed to fetch product",
		})
	}
	if product == nil {
		metrics.IncRequest("get", "not_found")
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	metrics.IncRequest("get", "ok")
	return c.Status(fiber.StatusOK).JSON(product)
}

// GET /api/v1/products
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", defaultPage)
	pageSize := c.QueryInt("pageSize", defaultPageSize)

	result, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		var oor *catalog.OutOfRangeError
		if errors.As(err, &oor) {
			metrics.IncRequest("list", "bad_request")
			return c.Status(fiber.StatusBadRequest).JSON(Problem{
				Title:  "Invalid pagination parameters",
				Detail: oor.Message,
			})
		}
		metrics.IncRequest("list", "error")
		h.logger.Error("list_products_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(Problem{
			Title:  "Internal error",
			Detail: "failed to list products",
		})
	}

	metrics.IncRequest("list", "ok")
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProductsHandler) clientError(c *fiber.Ctx, err error) error {
	var invalid *catalog.InvalidArgumentError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(Problem{
			Title:  "Invalid product data",
			Detail: invalid.Message,
			Field:  invalid.Field,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(Problem{
		Title:  "Invalid product data",
		Detail: err.Error(),
	})
}
