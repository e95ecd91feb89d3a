package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/ports"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc      *usecase.InvoiceUseCase
	orderUC *usecase.OrderUseCase
	pdf     ports.PDFGenerator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, orderUC *usecase.OrderUseCase, pdf ports.PDFGenerator) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, orderUC: orderUC, pdf: pdf}
}

// Create crea una factura contra una orden enviada.
// POST /api/facturas
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := h.uc.Create(in)
	if !out.Exito {
		return c.Status(statusForInvoiceErrores(out.Errores)).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista facturas; acepta ?estado= para filtrar.
// GET /api/facturas
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	if estado := c.Query("estado"); estado != "" {
		list, err := h.uc.ListByStatus(entity.InvoiceStatus(estado))
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

// ListVencidas lista facturas pendientes con vencimiento anterior a hoy.
// GET /api/facturas/vencidas
func (h *InvoiceHandler) ListVencidas(c *fiber.Ctx) error {
	list, err := h.uc.ListVencidas()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Resumen agrega conteo y monto de facturas pendientes y vencidas.
// GET /api/facturas/resumen
func (h *InvoiceHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID obtiene una factura por ID.
// GET /api/facturas/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	factura, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if factura == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	return c.JSON(factura)
}

// Update aplica un patch parcial, incluido el cambio de estado.
// PUT /api/facturas/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := h.uc.Update(c.Params("id"), in)
	if !out.Exito {
		return c.Status(statusForInvoiceErrores(out.Errores)).JSON(out)
	}
	return c.JSON(out)
}

// MarcarPagada transiciona la factura a "pagada"; body opcional {"fecha_pago"}.
// POST /api/facturas/:id/pagar
func (h *InvoiceHandler) MarcarPagada(c *fiber.Ctx) error {
	var in struct {
		FechaPago string `json:"fecha_pago"`
	}
	// El body es opcional; un body vacío usa la fecha de hoy.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out := h.uc.MarcarComoPagada(c.Params("id"), in.FechaPago)
	if !out.Exito {
		return c.Status(statusForInvoiceErrores(out.Errores)).JSON(out)
	}
	return c.JSON(out)
}

// Delete elimina una factura (nunca una pagada).
// DELETE /api/facturas/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	out := h.uc.Delete(c.Params("id"))
	if !out.Exito {
		return c.Status(statusForInvoiceErrores(out.Errores)).JSON(out)
	}
	return c.JSON(out)
}

// DownloadPDF genera y descarga la representación imprimible de la factura.
// GET /api/facturas/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	factura, err := h.uc.Entity(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if factura == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	// La orden asociada enriquece el PDF; si no se resuelve se omite.
	orden, err := h.orderUC.Entity(factura.OrdenCompraID)
	if err != nil {
		orden = nil
	}
	bytes, err := h.pdf.GenerateInvoicePDF(c.Context(), factura, orden)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+factura.Numero+`.pdf"`)
	return c.Send(bytes)
}

// statusForInvoiceErrores mapea los mensajes del sobre al status HTTP.
func statusForInvoiceErrores(errores []string) int {
	for _, e := range errores {
		switch e {
		case usecase.MsgFacturaNoEncontrada:
			return fiber.StatusNotFound
		case usecase.MsgErrorRemotoFactura, usecase.MsgErrorRemotoOrden:
			return fiber.StatusInternalServerError
		}
	}
	return fiber.StatusBadRequest
}
