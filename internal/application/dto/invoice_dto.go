package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/facturas.
// numero_factura vacío dispara la numeración automática FAC-YYYYMM-NNN.
// La orden referenciada debe existir y estar en estado "enviada".
type CreateInvoiceRequest struct {
	Numero           string          `json:"numero_factura" validate:"omitempty,max=50"`
	OrdenCompraID    string          `json:"orden_compra_id" validate:"required,uuid4"`
	NombreVendedor   string          `json:"nombre_vendedor" validate:"required,max=200"`
	EmailVendedor    string          `json:"email_vendedor" validate:"omitempty,email"`
	TelefonoVendedor string          `json:"telefono_vendedor" validate:"omitempty,max=20"`
	MontoTotal       decimal.Decimal `json:"monto_total" validate:"required,gt=0,lte=999999999.99"`
	Moneda           string          `json:"moneda" validate:"omitempty,oneof=CLP USD EUR COP"`
	FechaFactura     string          `json:"fecha_factura" validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	FechaPago        string          `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Notas            string          `json:"notas" validate:"omitempty,max=1000"`
}

// UpdateInvoiceRequest patch para PUT /api/facturas/:id.
type UpdateInvoiceRequest struct {
	NombreVendedor   *string          `json:"nombre_vendedor" validate:"omitempty,max=200"`
	EmailVendedor    *string          `json:"email_vendedor" validate:"omitempty,email"`
	TelefonoVendedor *string          `json:"telefono_vendedor" validate:"omitempty,max=20"`
	MontoTotal       *decimal.Decimal `json:"monto_total" validate:"omitempty,gt=0,lte=999999999.99"`
	Moneda           *string          `json:"moneda" validate:"omitempty,oneof=CLP USD EUR COP"`
	Estado           *string          `json:"estado" validate:"omitempty,oneof=pendiente enviada pagada"`
	FechaFactura     *string          `json:"fecha_factura" validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento *string          `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	FechaPago        *string          `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Notas            *string          `json:"notas" validate:"omitempty,max=1000"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID               string          `json:"id"`
	Numero           string          `json:"numero_factura"`
	OrdenCompraID    string          `json:"orden_compra_id"`
	NombreVendedor   string          `json:"nombre_vendedor"`
	EmailVendedor    string          `json:"email_vendedor,omitempty"`
	TelefonoVendedor string          `json:"telefono_vendedor,omitempty"`
	MontoTotal       decimal.Decimal `json:"monto_total"`
	Moneda           string          `json:"moneda"`
	Estado           string          `json:"estado"`
	FechaFactura     string          `json:"fecha_factura"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	FechaPago        string          `json:"fecha_pago,omitempty"`
	Notas            string          `json:"notas,omitempty"`
	URLDocumento     string          `json:"url_documento,omitempty"`
	CreadoEn         time.Time       `json:"creado_en"`
	ActualizadoEn    time.Time       `json:"actualizado_en"`
}

// InvoiceResult sobre de resultado para mutaciones de facturas.
type InvoiceResult struct {
	Exito   bool             `json:"exito"`
	Datos   *InvoiceResponse `json:"datos,omitempty"`
	Errores []string         `json:"errores,omitempty"`
}

// InvoiceSummaryResponse resumen de facturas pendientes y vencidas.
// Las vencidas son un subconjunto de las pendientes (vencimiento antes de hoy).
type InvoiceSummaryResponse struct {
	TotalFacturas    int             `json:"total_facturas"`
	MontoTotal       decimal.Decimal `json:"monto_total"`
	FacturasVencidas int             `json:"facturas_vencidas"`
	MontoVencido     decimal.Decimal `json:"monto_vencido"`
}
