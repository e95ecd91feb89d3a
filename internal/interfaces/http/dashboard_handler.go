package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// DashboardHandler agrega las métricas del tablero (protegido).
type DashboardHandler struct {
	orderUC   *usecase.OrderUseCase
	invoiceUC *usecase.InvoiceUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(orderUC *usecase.OrderUseCase, invoiceUC *usecase.InvoiceUseCase) *DashboardHandler {
	return &DashboardHandler{orderUC: orderUC, invoiceUC: invoiceUC}
}

// Resumen devuelve el resumen del tablero: facturas pendientes/vencidas y
// órdenes pendientes de envío.
// GET /api/dashboard/resumen
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	facturas, err := h.invoiceUC.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pendientes, err := h.orderUC.ListByStatus(entity.OrderStatusPendiente)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.DashboardResumenResponse{
		Facturas:          *facturas,
		OrdenesPendientes: len(pendientes),
	})
}
