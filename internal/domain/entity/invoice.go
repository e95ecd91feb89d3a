package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus es el estado de una factura.
// "pendiente" es el estado inicial; "pagada" es terminal.
type InvoiceStatus string

const (
	InvoiceStatusPendiente InvoiceStatus = "pendiente"
	InvoiceStatusEnviada   InvoiceStatus = "enviada"
	InvoiceStatusPagada    InvoiceStatus = "pagada"
)

// invoiceTransitions tabla de transiciones válidas entre estados de factura.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusPendiente: {InvoiceStatusEnviada, InvoiceStatusPagada},
	InvoiceStatusEnviada:   {InvoiceStatusPagada},
	InvoiceStatusPagada:    {},
}

// IsValid indica si el valor corresponde a un estado de factura conocido.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPendiente, InvoiceStatusEnviada, InvoiceStatusPagada:
		return true
	}
	return false
}

// CanTransitionTo indica si la transición s → target está permitida.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) String() string { return string(s) }

// Invoice representa una factura emitida contra una orden de compra enviada.
// El número sigue el formato FAC-YYYYMM-NNN y es único entre todas las facturas.
type Invoice struct {
	ID               string
	Numero           string
	OrdenCompraID    string // FK a PurchaseOrder; la orden debe estar "enviada" al crear
	NombreVendedor   string
	EmailVendedor    string
	TelefonoVendedor string
	MontoTotal       decimal.Decimal
	Moneda           string
	Estado           InvoiceStatus
	FechaFactura     time.Time
	FechaVencimiento time.Time
	FechaPago        *time.Time // se estampa automáticamente al pasar a "pagada" si no viene
	Notas            string
	URLDocumento     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Deletable indica si la factura puede eliminarse (nunca una pagada).
func (f *Invoice) Deletable() bool {
	return f.Estado != InvoiceStatusPagada
}

// Vencida indica si la factura está pendiente y su vencimiento es anterior a hoy.
func (f *Invoice) Vencida(hoy time.Time) bool {
	return f.Estado == InvoiceStatusPendiente && f.FechaVencimiento.Before(hoy)
}
