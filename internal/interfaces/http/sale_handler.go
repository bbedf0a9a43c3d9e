package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/megamind/stockmanager-api/internal/application/dto"
	salepkg "github.com/megamind/stockmanager-api/internal/application/sale"
	"github.com/megamind/stockmanager-api/internal/domain"
)

// SaleHandler endpoints des ventes (protégé).
type SaleHandler struct {
	uc *salepkg.UseCase
}

// NewSaleHandler construit le handler.
func NewSaleHandler(uc *salepkg.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sales
// Filtres optionnels : start/end (RFC 3339) ou product_id.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := pageRequest(c)

	if productID := c.Query("product_id"); productID != "" {
		out, err := h.uc.ListByProduct(productID, page)
		if err != nil {
			return saleError(c, err)
		}
		return c.JSON(out)
	}

	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start invalide (RFC 3339 attendu)"})
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end invalide (RFC 3339 attendu)"})
		}
		out, err := h.uc.ListByDateBetween(start, end, page)
		if err != nil {
			return saleError(c, err)
		}
		return c.JSON(out)
	}

	out, err := h.uc.List(page)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// TopProducts GET /api/sales/top-products?limit=
func (h *SaleHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.QueryInt("limit", 10))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// InvoicePDF GET /api/sales/:id/invoice.pdf
func (h *SaleHandler) InvoicePDF(c *fiber.Ctx) error {
	data, err := h.uc.GetInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

func saleError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficientErr.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données de vente invalides"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vente, produit ou client introuvable"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
