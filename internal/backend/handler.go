package backend

import (
	"errors"
	"fmt"

	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the product REST contract.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the /products routes.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.list)
	productRoutes.Get("/:id", h.get)
	productRoutes.Post("/", h.create)
	productRoutes.Put("/:id", h.update)
	productRoutes.Delete("/:id", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return h.failure(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	product, err := h.service.Get(id)
	if err != nil {
		return h.failure(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

func (h *Handler) create(c *fiber.Ctx) error {
	var form models.ProductFormData
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product, err := h.service.Create(form)
	if err != nil {
		return h.failure(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var form models.ProductFormData
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product, err := h.service.Update(id, form)
	if err != nil {
		return h.failure(c, "Could not update product", err)
	}
	return c.JSON(product)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.service.Delete(id); err != nil {
		return h.failure(c, "Could not delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// pathID parses the :id parameter and writes a 400 response when it is not
// a positive integer.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Invalid product ID %q", c.Params("id")),
		})
		return 0, false
	}
	return int64(id), true
}

func (h *Handler) failure(c *fiber.Ctx, message string, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verrs,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	}
	h.logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
