package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto en el catálogo.
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	product, err := h.uc.Create(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID obtiene un producto por ID.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(product)
}

// Update actualiza un producto existente.
// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	product, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(product)
}

// List lista productos con paginación.
// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	products, err := h.uc.List(page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(products)
}

// Scan resuelve un producto por SKU o código de barras (punto de venta).
// GET /api/products/scan?code=...
func (h *ProductHandler) Scan(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requerido"})
	}
	product, err := h.uc.Scan(code)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(product)
}

// BarcodePNG genera la imagen Code 128 del código de barras del producto.
// GET /api/products/:id/barcode.png
func (h *ProductHandler) BarcodePNG(c *fiber.Ctx) error {
	img, err := h.uc.BarcodePNG(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}
