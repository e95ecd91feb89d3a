package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/ports"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type OrderHandler struct {
	uc        *usecase.OrderUseCase
	invoiceUC *usecase.InvoiceUseCase
	pdf       ports.PDFGenerator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, invoiceUC *usecase.InvoiceUseCase, pdf ports.PDFGenerator) *OrderHandler {
	return &OrderHandler{uc: uc, invoiceUC: invoiceUC, pdf: pdf}
}

// Create crea una orden de compra. El número se genera si no viene.
// POST /api/ordenes-compra
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := h.uc.Create(in)
	if !out.Exito {
		return c.Status(statusForOrderErrores(out.Errores)).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista órdenes; acepta ?estado= para filtrar.
// GET /api/ordenes-compra
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if estado := c.Query("estado"); estado != "" {
		list, err := h.uc.ListByStatus(entity.OrderStatus(estado))
		if err != nil {
			if err == domain.ErrInvalidInput {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido: " + estado})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(list)
	}
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID obtiene una orden por ID.
// GET /api/ordenes-compra/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	orden, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if orden == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
	}
	return c.JSON(orden)
}

// Update aplica un patch parcial, incluido el cambio de estado.
// PUT /api/ordenes-compra/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := h.uc.Update(c.Params("id"), in)
	if !out.Exito {
		return c.Status(statusForOrderErrores(out.Errores)).JSON(out)
	}
	return c.JSON(out)
}

// Delete elimina una orden (solo en estado pendiente).
// DELETE /api/ordenes-compra/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	out := h.uc.Delete(c.Params("id"))
	if !out.Exito {
		return c.Status(statusForOrderErrores(out.Errores)).JSON(out)
	}
	return c.JSON(out)
}

// ListInvoices lista las facturas emitidas contra la orden.
// GET /api/ordenes-compra/:id/facturas
func (h *OrderHandler) ListInvoices(c *fiber.Ctx) error {
	id := c.Params("id")
	orden, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if orden == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
	}
	list, err := h.invoiceUC.ListByOrdenCompra(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// DownloadPDF genera y descarga la representación imprimible de la orden.
// GET /api/ordenes-compra/:id/pdf
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	orden, err := h.uc.Entity(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if orden == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
	}
	bytes, err := h.pdf.GenerateOrderPDF(c.Context(), orden)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+orden.Numero+`.pdf"`)
	return c.Send(bytes)
}

// statusForOrderErrores mapea los mensajes del sobre al status HTTP: 404 para
// no encontrado, 500 para fallos de almacenamiento, 400 para el resto.
func statusForOrderErrores(errores []string) int {
	for _, e := range errores {
		switch e {
		case usecase.MsgOrdenNoEncontrada:
			return fiber.StatusNotFound
		case usecase.MsgErrorRemotoOrden:
			return fiber.StatusInternalServerError
		}
	}
	return fiber.StatusBadRequest
}
