package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	casos := []struct {
		desde    OrderStatus
		hacia    OrderStatus
		permite  bool
	}{
		{OrderStatusPendiente, OrderStatusEnviada, true},
		{OrderStatusPendiente, OrderStatusCancelada, true},
		{OrderStatusEnviada, OrderStatusPendiente, false},
		{OrderStatusEnviada, OrderStatusCancelada, false},
		{OrderStatusCancelada, OrderStatusPendiente, false},
		{OrderStatusCancelada, OrderStatusEnviada, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permite, c.desde.CanTransitionTo(c.hacia),
			"transición %s → %s", c.desde, c.hacia)
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPendiente.IsValid())
	assert.True(t, OrderStatusEnviada.IsValid())
	assert.True(t, OrderStatusCancelada.IsValid())
	assert.False(t, OrderStatus("aprobada").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	casos := []struct {
		desde   InvoiceStatus
		hacia   InvoiceStatus
		permite bool
	}{
		{InvoiceStatusPendiente, InvoiceStatusEnviada, true},
		{InvoiceStatusPendiente, InvoiceStatusPagada, true},
		{InvoiceStatusEnviada, InvoiceStatusPagada, true},
		{InvoiceStatusEnviada, InvoiceStatusPendiente, false},
		{InvoiceStatusPagada, InvoiceStatusPendiente, false},
		{InvoiceStatusPagada, InvoiceStatusEnviada, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permite, c.desde.CanTransitionTo(c.hacia),
			"transición %s → %s", c.desde, c.hacia)
	}
}

func TestPurchaseOrder_Deletable(t *testing.T) {
	assert.True(t, (&PurchaseOrder{Estado: OrderStatusPendiente}).Deletable())
	assert.False(t, (&PurchaseOrder{Estado: OrderStatusEnviada}).Deletable())
	assert.False(t, (&PurchaseOrder{Estado: OrderStatusCancelada}).Deletable())
}

func TestInvoice_Deletable(t *testing.T) {
	assert.True(t, (&Invoice{Estado: InvoiceStatusPendiente}).Deletable())
	assert.True(t, (&Invoice{Estado: InvoiceStatusEnviada}).Deletable())
	assert.False(t, (&Invoice{Estado: InvoiceStatusPagada}).Deletable())
}

func TestInvoice_Vencida(t *testing.T) {
	hoy := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ayer := hoy.AddDate(0, 0, -1)
	manana := hoy.AddDate(0, 0, 1)

	assert.True(t, (&Invoice{Estado: InvoiceStatusPendiente, FechaVencimiento: ayer}).Vencida(hoy))
	// El día del vencimiento aún no está vencida.
	assert.False(t, (&Invoice{Estado: InvoiceStatusPendiente, FechaVencimiento: hoy}).Vencida(hoy))
	assert.False(t, (&Invoice{Estado: InvoiceStatusPendiente, FechaVencimiento: manana}).Vencida(hoy))
	// Solo las pendientes cuentan como vencidas.
	assert.False(t, (&Invoice{Estado: InvoiceStatusPagada, FechaVencimiento: ayer}).Vencida(hoy))
	assert.False(t, (&Invoice{Estado: InvoiceStatusEnviada, FechaVencimiento: ayer}).Vencida(hoy))
}
