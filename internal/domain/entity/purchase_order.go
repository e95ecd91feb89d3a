package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus es el estado de una orden de compra.
// "pendiente" es el estado inicial; "enviada" y "cancelada" son terminales.
type OrderStatus string

const (
	OrderStatusPendiente OrderStatus = "pendiente"
	OrderStatusEnviada   OrderStatus = "enviada"
	OrderStatusCancelada OrderStatus = "cancelada"
)

// orderTransitions tabla de transiciones válidas entre estados de orden.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendiente: {OrderStatusEnviada, OrderStatusCancelada},
	OrderStatusEnviada:   {},
	OrderStatusCancelada: {},
}

// IsValid indica si el valor corresponde a un estado de orden conocido.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendiente, OrderStatusEnviada, OrderStatusCancelada:
		return true
	}
	return false
}

// CanTransitionTo indica si la transición s → target está permitida.
// No hay saltos ni reversas: solo los arcos declarados en la tabla.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// Monedas soportadas. CLP es la moneda base de la organización.
const (
	MonedaCLP = "CLP"
	MonedaUSD = "USD"
	MonedaEUR = "EUR"
	MonedaCOP = "COP"
)

// MonedaBase moneda por defecto cuando el payload no especifica una.
const MonedaBase = MonedaCLP

// PurchaseOrder representa una orden de compra a un proveedor.
// El número sigue el formato OC-YYYYMM-NNN y es único entre todas las órdenes.
type PurchaseOrder struct {
	ID                string
	Numero            string
	NombreProveedor   string
	EmailProveedor    string
	TelefonoProveedor string
	MontoTotal        decimal.Decimal
	Moneda            string
	Estado            OrderStatus
	FechaOrden        time.Time
	FechaEntrega      *time.Time // fecha de entrega esperada; opcional, nunca anterior a FechaOrden
	Notas             string
	URLDocumento      string // URL pública del PDF/imagen adjunto; opaca para el dominio
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Deletable indica si la orden puede eliminarse (solo en estado pendiente).
func (o *PurchaseOrder) Deletable() bool {
	return o.Estado == OrderStatusPendiente
}
