// Package pdf genera la representación imprimible de órdenes de compra y
// facturas usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  Número + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: Proveedor / Vendedor + contacto               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: estado, fechas, orden asociada (facturas)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MONTO TOTAL + moneda                                       │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/gestion-compras/internal/application/ports"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const fechaRepresentacion = "02/01/2006"

// printer para separadores de miles en español (1.250.000).
var printer = message.NewPrinter(language.Spanish)

var _ ports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF genera el PDF de una orden de compra y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, orden *entity.PurchaseOrder) ([]byte, error) {
	m := maroto.New(documentConfig("Orden de Compra " + orden.Numero))

	m.AddRows(headerRow("ORDEN DE COMPRA", orden.Numero, orden.FechaOrden))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contraparteRow("PROVEEDOR", orden.NombreProveedor, orden.EmailProveedor, orden.TelefonoProveedor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(detalleRow("Estado", estadoLegible(orden.Estado.String())))
	m.AddRows(detalleRow("Fecha de orden", orden.FechaOrden.Format(fechaRepresentacion)))
	if orden.FechaEntrega != nil {
		m.AddRows(detalleRow("Entrega esperada", orden.FechaEntrega.Format(fechaRepresentacion)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(orden.MontoTotal, orden.Moneda))

	for _, r := range notasRows(orden.Notas) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateInvoicePDF genera el PDF de una factura. La orden asociada puede ser
// nil si no se pudo resolver; en ese caso la sección de orden se omite.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, factura *entity.Invoice, orden *entity.PurchaseOrder) ([]byte, error) {
	m := maroto.New(documentConfig("Factura " + factura.Numero))

	m.AddRows(headerRow("FACTURA", factura.Numero, factura.FechaFactura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contraparteRow("VENDEDOR", factura.NombreVendedor, factura.EmailVendedor, factura.TelefonoVendedor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(detalleRow("Estado", estadoLegible(factura.Estado.String())))
	m.AddRows(detalleRow("Fecha de factura", factura.FechaFactura.Format(fechaRepresentacion)))
	m.AddRows(detalleRow("Vencimiento", factura.FechaVencimiento.Format(fechaRepresentacion)))
	if factura.FechaPago != nil {
		m.AddRows(detalleRow("Fecha de pago", factura.FechaPago.Format(fechaRepresentacion)))
	}
	if orden != nil {
		m.AddRows(detalleRow("Orden de compra", fmt.Sprintf("%s (%s)", orden.Numero, orden.NombreProveedor)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(factura.MontoTotal, factura.Moneda))

	for _, r := range notasRows(factura.Notas) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func documentConfig(titulo string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor("gestion-compras", true).
		Build()
}

// headerRow: tipo de documento (izq) y número + fecha (der).
func headerRow(tipo, numero string, fecha time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tipo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestión de Compras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha.Format(fechaRepresentacion), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// contraparteRow: datos del proveedor o vendedor.
func contraparteRow(etiqueta, nombre, email, telefono string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(etiqueta, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(email, "—"),
				nonEmpty(telefono, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// detalleRow: par etiqueta/valor en una fila compacta.
func detalleRow(etiqueta, valor string) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(etiqueta+":", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(9).Add(text.New(valor, props.Text{Size: 8, Top: 1})),
	)
}

// totalRow: monto total alineado a la derecha con separadores de miles.
func totalRow(monto decimal.Decimal, moneda string) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("MONTO TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(formatoMonto(monto, moneda), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

func notasRows(notas string) []core.Row {
	if notas == "" {
		return nil
	}
	return []core.Row{
		row.New(3),
		row.New(5).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(notas, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatoMonto renderiza el monto con separadores de miles en español.
// CLP y COP no llevan decimales; USD y EUR usan dos.
func formatoMonto(monto decimal.Decimal, moneda string) string {
	switch moneda {
	case entity.MonedaCLP, entity.MonedaCOP:
		return printer.Sprintf("$%d %s", monto.Round(0).IntPart(), moneda)
	default:
		return printer.Sprintf("$%.2f %s", monto.InexactFloat64(), moneda)
	}
}

func estadoLegible(estado string) string {
	if estado == "" {
		return "—"
	}
	return estado
}
