package repository

import "github.com/tu-usuario/gestion-compras/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
// GetAll devuelve las órdenes más recientes primero (creado_en DESC).
// Update y Delete devuelven domain.ErrNotFound si el registro ya no existe.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetAll() ([]*entity.PurchaseOrder, error)
	GetByID(id string) (*entity.PurchaseOrder, error)
	ListByStatus(estado entity.OrderStatus) ([]*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	Delete(id string) error
}
