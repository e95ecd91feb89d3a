package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRutaDocumento(t *testing.T) {
	ahora := time.UnixMilli(1756700000000)

	assert.Equal(t,
		"ordenes_compra/OC-202609-001_1756700000000.pdf",
		RutaDocumento(TipoOrdenCompra, "OC-202609-001", "pdf", ahora))
	assert.Equal(t,
		"facturas/FAC-202609-014_1756700000000.jpg",
		RutaDocumento(TipoFactura, "FAC-202609-014", "jpg", ahora))
}

func TestRutaDocumento_TimestampEvitaColisiones(t *testing.T) {
	a := RutaDocumento(TipoFactura, "FAC-202609-001", "pdf", time.UnixMilli(1000))
	b := RutaDocumento(TipoFactura, "FAC-202609-001", "pdf", time.UnixMilli(1001))

	assert.NotEqual(t, a, b)
}
