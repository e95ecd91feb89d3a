package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

func TestGenerateOrderPDF(t *testing.T) {
	entrega := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	orden := &entity.PurchaseOrder{
		ID:              "11111111-1111-4111-8111-111111111111",
		Numero:          "OC-202609-001",
		NombreProveedor: "Proveedor Uno Ltda.",
		EmailProveedor:  "ventas@proveedor.cl",
		MontoTotal:      decimal.NewFromInt(1250000),
		Moneda:          entity.MonedaCLP,
		Estado:          entity.OrderStatusEnviada,
		FechaOrden:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		FechaEntrega:    &entrega,
		Notas:           "Entregar en bodega central.",
	}

	data, err := NewMarotoPDFGenerator().GenerateOrderPDF(context.Background(), orden)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "debe ser un PDF válido")
}

func TestGenerateInvoicePDF_SinOrdenAsociada(t *testing.T) {
	factura := &entity.Invoice{
		ID:               "22222222-2222-4222-8222-222222222222",
		Numero:           "FAC-202609-001",
		NombreVendedor:   "Vendedor Uno SpA",
		MontoTotal:       decimal.NewFromFloat(1499.99),
		Moneda:           entity.MonedaUSD,
		Estado:           entity.InvoiceStatusPendiente,
		FechaFactura:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		FechaVencimiento: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), factura, nil)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatoMonto(t *testing.T) {
	assert.Equal(t, "$1.250.000 CLP", formatoMonto(decimal.NewFromInt(1250000), entity.MonedaCLP))
	assert.Equal(t, "$89.990 COP", formatoMonto(decimal.NewFromInt(89990), entity.MonedaCOP))
	assert.Equal(t, "$1.499,99 USD", formatoMonto(decimal.NewFromFloat(1499.99), entity.MonedaUSD))
}
