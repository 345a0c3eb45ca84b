package handlers

import (
	"errors"
	"fmt"

	"productdesk/internal/catalog"
	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/internal/services"
	"productdesk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product pages.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/new", h.HandleNewProductForm)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Get("/:id/edit", h.HandleEditProductForm)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns the filtered, searched and sorted product list.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	q, err := catalog.ParseQuery(c.Query("search"), c.Query("category"), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid list query",
			"error":   err.Error(),
		})
	}

	view, err := h.service.ListProducts(q)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}
	return c.JSON(view)
}

// HandleGetProduct returns the detail view of one product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badID(c, err)
	}

	view, err := h.service.GetProduct(id)
	if err != nil {
		return errorPanel(c, err)
	}
	return c.JSON(view)
}

// HandleNewProductForm returns the blank create form.
func (h *ProductHandler) HandleNewProductForm(c *fiber.Ctx) error {
	return c.JSON(models.DefaultFormData())
}

// HandleEditProductForm returns the edit form pre-filled from the stored product.
func (h *ProductHandler) HandleEditProductForm(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badID(c, err)
	}

	form, err := h.service.EditForm(id)
	if err != nil {
		return errorPanel(c, err)
	}
	return c.JSON(form)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var form models.ProductFormData
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(form)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badID(c, err)
	}

	var form models.ProductFormData
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(id, form)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badID(c, err)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return c.Status(failureStatus(err)).JSON(fiber.Map{
			"message": services.UserMessage(err),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}

// HandleGetCategories lists the categories with their labels and colors.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(models.CategoryOptions())
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("product ID must be a positive integer")
	}
	return int64(id), nil
}

func badID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid product ID",
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// errorPanel replaces a page body after a failed fetch.
func errorPanel(c *fiber.Ctx, err error) error {
	return c.Status(failureStatus(err)).JSON(fiber.Map{
		"status": catalog.StatusErrored,
		"error":  services.UserMessage(err),
		"back":   "/",
	})
}

func writeFailure(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verrs,
		})
	}
	return c.Status(failureStatus(err)).JSON(fiber.Map{
		"message": services.UserMessage(err),
	})
}

// failureStatus passes a backend 404 through and reports everything else as
// a bad gateway.
func failureStatus(err error) int {
	if repositories.StatusOf(err) == fiber.StatusNotFound {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadGateway
}
