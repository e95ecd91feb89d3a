package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/ordenes-compra.
// numero_orden vacío dispara la numeración automática OC-YYYYMM-NNN.
// El estado no se acepta en creación: toda orden nace "pendiente".
type CreateOrderRequest struct {
	Numero            string          `json:"numero_orden" validate:"omitempty,max=50"`
	NombreProveedor   string          `json:"nombre_proveedor" validate:"required,max=200"`
	EmailProveedor    string          `json:"email_proveedor" validate:"omitempty,email"`
	TelefonoProveedor string          `json:"telefono_proveedor" validate:"omitempty,max=20"`
	MontoTotal        decimal.Decimal `json:"monto_total" validate:"required,gt=0,lte=999999999.99"`
	Moneda            string          `json:"moneda" validate:"omitempty,oneof=CLP USD EUR COP"`
	FechaOrden        string          `json:"fecha_orden" validate:"omitempty,datetime=2006-01-02"`
	FechaEntrega      string          `json:"fecha_entrega_esperada" validate:"omitempty,datetime=2006-01-02"`
	Notas             string          `json:"notas" validate:"omitempty,max=1000"`
}

// UpdateOrderRequest patch para PUT /api/ordenes-compra/:id.
// Solo los campos presentes (no nil) se validan y se aplican.
type UpdateOrderRequest struct {
	NombreProveedor   *string          `json:"nombre_proveedor" validate:"omitempty,max=200"`
	EmailProveedor    *string          `json:"email_proveedor" validate:"omitempty,email"`
	TelefonoProveedor *string          `json:"telefono_proveedor" validate:"omitempty,max=20"`
	MontoTotal        *decimal.Decimal `json:"monto_total" validate:"omitempty,gt=0,lte=999999999.99"`
	Moneda            *string          `json:"moneda" validate:"omitempty,oneof=CLP USD EUR COP"`
	Estado            *string          `json:"estado" validate:"omitempty,oneof=pendiente enviada cancelada"`
	FechaOrden        *string          `json:"fecha_orden" validate:"omitempty,datetime=2006-01-02"`
	FechaEntrega      *string          `json:"fecha_entrega_esperada" validate:"omitempty,datetime=2006-01-02"`
	Notas             *string          `json:"notas" validate:"omitempty,max=1000"`
}

// OrderResponse orden de compra en respuestas.
type OrderResponse struct {
	ID                string          `json:"id"`
	Numero            string          `json:"numero_orden"`
	NombreProveedor   string          `json:"nombre_proveedor"`
	EmailProveedor    string          `json:"email_proveedor,omitempty"`
	TelefonoProveedor string          `json:"telefono_proveedor,omitempty"`
	MontoTotal        decimal.Decimal `json:"monto_total"`
	Moneda            string          `json:"moneda"`
	Estado            string          `json:"estado"`
	FechaOrden        string          `json:"fecha_orden"`
	FechaEntrega      string          `json:"fecha_entrega_esperada,omitempty"`
	Notas             string          `json:"notas,omitempty"`
	URLDocumento      string          `json:"url_documento,omitempty"`
	CreadoEn          time.Time       `json:"creado_en"`
	ActualizadoEn     time.Time       `json:"actualizado_en"`
}

// OrderResult sobre de resultado para mutaciones de órdenes.
// Errores estructurales, de reglas de negocio y remotos llegan por la misma vía.
type OrderResult struct {
	Exito   bool           `json:"exito"`
	Datos   *OrderResponse `json:"datos,omitempty"`
	Errores []string       `json:"errores,omitempty"`
}
