package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
	"github.com/tu-usuario/gestion-compras/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const facturaColumns = `id, numero_factura, orden_compra_id, nombre_vendedor,
	COALESCE(email_vendedor, ''), COALESCE(telefono_vendedor, ''),
	monto_total, moneda, estado, fecha_factura, fecha_vencimiento, fecha_pago,
	COALESCE(notas, ''), COALESCE(url_documento, ''), creado_en, actualizado_en`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(f *entity.Invoice) error {
	query := `
		INSERT INTO facturas (id, numero_factura, orden_compra_id, nombre_vendedor, email_vendedor,
			telefono_vendedor, monto_total, moneda, estado, fecha_factura, fecha_vencimiento,
			fecha_pago, notas, url_documento, creado_en, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Numero, f.OrdenCompraID, f.NombreVendedor, nullIfEmpty(f.EmailVendedor),
		nullIfEmpty(f.TelefonoVendedor), f.MontoTotal, f.Moneda, f.Estado.String(),
		f.FechaFactura, f.FechaVencimiento, f.FechaPago,
		nullIfEmpty(f.Notas), nullIfEmpty(f.URLDocumento), f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// GetAll devuelve todas las facturas, más recientes primero.
func (r *InvoiceRepo) GetAll() ([]*entity.Invoice, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas ORDER BY creado_en DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	return scanFacturas(rows)
}

// GetByID obtiene una factura por ID. Nil sin error cuando no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas WHERE id = $1`
	f, err := scanFactura(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return f, nil
}

// ListByStatus devuelve facturas con el estado dado, por vencimiento ascendente.
func (r *InvoiceRepo) ListByStatus(estado entity.InvoiceStatus) ([]*entity.Invoice, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas WHERE estado = $1 ORDER BY fecha_vencimiento ASC`
	rows, err := r.q.Query(context.Background(), query, estado.String())
	if err != nil {
		return nil, fmt.Errorf("list facturas por estado: %w", err)
	}
	defer rows.Close()
	return scanFacturas(rows)
}

// ListVencidas devuelve facturas pendientes con vencimiento anterior a hoy.
func (r *InvoiceRepo) ListVencidas() ([]*entity.Invoice, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas
		WHERE estado = $1 AND fecha_vencimiento < CURRENT_DATE
		ORDER BY fecha_vencimiento ASC`
	rows, err := r.q.Query(context.Background(), query, entity.InvoiceStatusPendiente.String())
	if err != nil {
		return nil, fmt.Errorf("list facturas vencidas: %w", err)
	}
	defer rows.Close()
	return scanFacturas(rows)
}

// ListByOrdenCompra devuelve las facturas de una orden, más recientes primero.
func (r *InvoiceRepo) ListByOrdenCompra(ordenCompraID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas
		WHERE orden_compra_id = $1 ORDER BY fecha_factura DESC`
	rows, err := r.q.Query(context.Background(), query, ordenCompraID)
	if err != nil {
		return nil, fmt.Errorf("list facturas por orden: %w", err)
	}
	defer rows.Close()
	return scanFacturas(rows)
}

// Update actualiza todos los campos mutables de la factura.
func (r *InvoiceRepo) Update(f *entity.Invoice) error {
	query := `
		UPDATE facturas
		SET nombre_vendedor = $2, email_vendedor = $3, telefono_vendedor = $4,
		    monto_total = $5, moneda = $6, estado = $7, fecha_factura = $8,
		    fecha_vencimiento = $9, fecha_pago = $10, notas = $11, url_documento = $12,
		    actualizado_en = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		f.ID, f.NombreVendedor, nullIfEmpty(f.EmailVendedor), nullIfEmpty(f.TelefonoVendedor),
		f.MontoTotal, f.Moneda, f.Estado.String(), f.FechaFactura, f.FechaVencimiento,
		f.FechaPago, nullIfEmpty(f.Notas), nullIfEmpty(f.URLDocumento), f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM facturas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFactura(row pgx.Row) (*entity.Invoice, error) {
	var f entity.Invoice
	var estado string
	err := row.Scan(
		&f.ID, &f.Numero, &f.OrdenCompraID, &f.NombreVendedor, &f.EmailVendedor,
		&f.TelefonoVendedor, &f.MontoTotal, &f.Moneda, &estado, &f.FechaFactura,
		&f.FechaVencimiento, &f.FechaPago, &f.Notas, &f.URLDocumento,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Estado = entity.InvoiceStatus(estado)
	return &f, nil
}

func scanFacturas(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
