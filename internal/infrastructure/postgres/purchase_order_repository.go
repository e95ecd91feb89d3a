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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const ordenColumns = `id, numero_orden, nombre_proveedor,
	COALESCE(email_proveedor, ''), COALESCE(telefono_proveedor, ''),
	monto_total, moneda, estado, fecha_orden, fecha_entrega_esperada,
	COALESCE(notas, ''), COALESCE(url_documento, ''), creado_en, actualizado_en`

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una nueva orden de compra.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO ordenes_compra (id, numero_orden, nombre_proveedor, email_proveedor, telefono_proveedor,
			monto_total, moneda, estado, fecha_orden, fecha_entrega_esperada, notas, url_documento,
			creado_en, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Numero, o.NombreProveedor, nullIfEmpty(o.EmailProveedor), nullIfEmpty(o.TelefonoProveedor),
		o.MontoTotal, o.Moneda, o.Estado.String(), o.FechaOrden, o.FechaEntrega,
		nullIfEmpty(o.Notas), nullIfEmpty(o.URLDocumento), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden_compra: %w", err)
	}
	return nil
}

// GetAll devuelve todas las órdenes, más recientes primero.
func (r *PurchaseOrderRepo) GetAll() ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra ORDER BY creado_en DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes_compra: %w", err)
	}
	defer rows.Close()
	return scanOrdenes(rows)
}

// GetByID obtiene una orden por ID. Nil sin error cuando no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra WHERE id = $1`
	o, err := scanOrden(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden_compra: %w", err)
	}
	return o, nil
}

// ListByStatus devuelve las órdenes con el estado dado, más recientes primero.
func (r *PurchaseOrderRepo) ListByStatus(estado entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra WHERE estado = $1 ORDER BY creado_en DESC`
	rows, err := r.q.Query(context.Background(), query, estado.String())
	if err != nil {
		return nil, fmt.Errorf("list ordenes_compra por estado: %w", err)
	}
	defer rows.Close()
	return scanOrdenes(rows)
}

// Update actualiza todos los campos mutables de la orden.
func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE ordenes_compra
		SET nombre_proveedor = $2, email_proveedor = $3, telefono_proveedor = $4,
		    monto_total = $5, moneda = $6, estado = $7, fecha_orden = $8,
		    fecha_entrega_esperada = $9, notas = $10, url_documento = $11, actualizado_en = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.NombreProveedor, nullIfEmpty(o.EmailProveedor), nullIfEmpty(o.TelefonoProveedor),
		o.MontoTotal, o.Moneda, o.Estado.String(), o.FechaOrden, o.FechaEntrega,
		nullIfEmpty(o.Notas), nullIfEmpty(o.URLDocumento), o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update orden_compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una orden por ID.
func (r *PurchaseOrderRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM ordenes_compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden_compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrden(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var estado string
	err := row.Scan(
		&o.ID, &o.Numero, &o.NombreProveedor, &o.EmailProveedor, &o.TelefonoProveedor,
		&o.MontoTotal, &o.Moneda, &estado, &o.FechaOrden, &o.FechaEntrega,
		&o.Notas, &o.URLDocumento, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Estado = entity.OrderStatus(estado)
	return &o, nil
}

func scanOrdenes(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden_compra: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
