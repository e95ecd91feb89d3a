// Package ports define los puertos hacia colaboradores externos del núcleo:
// almacenamiento de documentos, extracción heurística de campos y generación
// de representaciones imprimibles.
package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// Tipos de documento para la ruta en el bucket.
const (
	TipoOrdenCompra = "ordenes_compra"
	TipoFactura     = "facturas"
)

// DocumentStorage almacena documentos adjuntos (PDF/imagen) en un bucket y
// devuelve su URL pública. El servicio trata esa URL como un string opaco.
type DocumentStorage interface {
	Upload(ctx context.Context, ruta, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ruta string) error
}

// FieldGuesses campos extraídos de un documento escaneado. Mejor esfuerzo:
// cualquier campo puede venir vacío y ninguno es autoritativo.
type FieldGuesses struct {
	Numero    string           `json:"numero,omitempty"`
	Monto     *decimal.Decimal `json:"monto,omitempty"`
	Fecha     string           `json:"fecha,omitempty"`
	Proveedor string           `json:"proveedor,omitempty"`
}

// DocumentExtractor extrae texto de un documento y propone valores de campos.
type DocumentExtractor interface {
	Extract(ctx context.Context, contentType string, data []byte) (*FieldGuesses, error)
}

// PDFGenerator genera la representación imprimible de órdenes y facturas.
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, orden *entity.PurchaseOrder) ([]byte, error)
	GenerateInvoicePDF(ctx context.Context, factura *entity.Invoice, orden *entity.PurchaseOrder) ([]byte, error)
}

// RutaDocumento construye la ruta del objeto en el bucket:
// {tipo}/{numero}_{timestamp}.{ext}. El timestamp evita colisiones al volver
// a subir un documento para el mismo registro.
func RutaDocumento(tipo, numero, ext string, ahora time.Time) string {
	return fmt.Sprintf("%s/%s_%d.%s", tipo, numero, ahora.UnixMilli(), ext)
}
