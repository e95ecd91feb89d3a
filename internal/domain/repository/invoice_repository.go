package repository

import "github.com/tu-usuario/gestion-compras/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
// GetAll devuelve las facturas más recientes primero (creado_en DESC).
// Update y Delete devuelven domain.ErrNotFound si el registro ya no existe.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetAll() ([]*entity.Invoice, error)
	GetByID(id string) (*entity.Invoice, error)
	ListByStatus(estado entity.InvoiceStatus) ([]*entity.Invoice, error)
	// ListVencidas devuelve facturas pendientes con vencimiento estrictamente
	// anterior a hoy, ordenadas por vencimiento ascendente.
	ListVencidas() ([]*entity.Invoice, error)
	ListByOrdenCompra(ordenCompraID string) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	Delete(id string) error
}
