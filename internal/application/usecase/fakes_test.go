package usecase

import (
	"sort"

	"github.com/tu-usuario/gestion-compras/internal/application/validation"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// fakeOrderRepo repositorio de órdenes en memoria para tests de servicio.
// failErr fuerza el fallo de todas las operaciones (simula caída remota).
type fakeOrderRepo struct {
	ordenes []*entity.PurchaseOrder
	failErr error
}

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	if r.failErr != nil {
		return r.failErr
	}
	for _, ex := range r.ordenes {
		if ex.Numero == o.Numero {
			return domain.ErrDuplicate
		}
	}
	copia := *o
	r.ordenes = append(r.ordenes, &copia)
	return nil
}

func (r *fakeOrderRepo) GetAll() ([]*entity.PurchaseOrder, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]*entity.PurchaseOrder, len(r.ordenes))
	copy(out, r.ordenes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, o := range r.ordenes {
		if o.ID == id {
			copia := *o
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByStatus(estado entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	var out []*entity.PurchaseOrder
	for _, o := range r.ordenes {
		if o.Estado == estado {
			copia := *o
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(o *entity.PurchaseOrder) error {
	if r.failErr != nil {
		return r.failErr
	}
	for i, ex := range r.ordenes {
		if ex.ID == o.ID {
			copia := *o
			r.ordenes[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) Delete(id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	for i, ex := range r.ordenes {
		if ex.ID == id {
			r.ordenes = append(r.ordenes[:i], r.ordenes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeInvoiceRepo repositorio de facturas en memoria para tests de servicio.
type fakeInvoiceRepo struct {
	facturas []*entity.Invoice
	failErr  error
}

func (r *fakeInvoiceRepo) Create(f *entity.Invoice) error {
	if r.failErr != nil {
		return r.failErr
	}
	for _, ex := range r.facturas {
		if ex.Numero == f.Numero {
			return domain.ErrDuplicate
		}
	}
	copia := *f
	r.facturas = append(r.facturas, &copia)
	return nil
}

func (r *fakeInvoiceRepo) GetAll() ([]*entity.Invoice, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]*entity.Invoice, len(r.facturas))
	copy(out, r.facturas)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, f := range r.facturas {
		if f.ID == id {
			copia := *f
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListByStatus(estado entity.InvoiceStatus) ([]*entity.Invoice, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	var out []*entity.Invoice
	for _, f := range r.facturas {
		if f.Estado == estado {
			copia := *f
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListVencidas() ([]*entity.Invoice, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	hoy, _ := validation.ParseFecha(validation.Hoy())
	var out []*entity.Invoice
	for _, f := range r.facturas {
		if f.Vencida(hoy) {
			copia := *f
			out = append(out, &copia)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaVencimiento.Before(out[j].FechaVencimiento) })
	return out, nil
}

func (r *fakeInvoiceRepo) ListByOrdenCompra(ordenCompraID string) ([]*entity.Invoice, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	var out []*entity.Invoice
	for _, f := range r.facturas {
		if f.OrdenCompraID == ordenCompraID {
			copia := *f
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(f *entity.Invoice) error {
	if r.failErr != nil {
		return r.failErr
	}
	for i, ex := range r.facturas {
		if ex.ID == f.ID {
			copia := *f
			r.facturas[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	for i, ex := range r.facturas {
		if ex.ID == id {
			r.facturas = append(r.facturas[:i], r.facturas[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
