// Package usecase contiene los servicios de reglas de negocio: única puerta
// de entrada para mutar órdenes de compra y facturas. Orquesta la validación
// estructural, los chequeos de unicidad y transición de estado, y delega en
// el gateway de persistencia. Los fallos nunca se propagan como error al
// llamador: todo termina en el sobre {exito, datos?, errores?}.
package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/validation"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
	"github.com/tu-usuario/gestion-compras/internal/domain/repository"
)

// Mensajes de fallo genéricos: el detalle del transporte no sale del servicio.
const (
	MsgOrdenNoEncontrada = "orden de compra no encontrada"
	MsgErrorRemotoOrden  = "error al acceder al almacenamiento de órdenes"
)

// OrderUseCase servicio de reglas de negocio para órdenes de compra.
type OrderUseCase struct {
	repo repository.PurchaseOrderRepository
}

// NewOrderUseCase construye el servicio.
func NewOrderUseCase(repo repository.PurchaseOrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// Create crea una orden de compra: genera el número si viene vacío, valida el
// payload, verifica unicidad del número y persiste. Toda orden nace "pendiente".
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) *dto.OrderResult {
	existentes, err := uc.repo.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("crear orden: leer órdenes existentes")
		return &dto.OrderResult{Errores: []string{MsgErrorRemotoOrden}}
	}

	// Un número en blanco (o solo espacios) dispara la numeración automática.
	in.Numero = strings.TrimSpace(in.Numero)
	if in.Numero == "" {
		numeros := make([]string, 0, len(existentes))
		for _, o := range existentes {
			numeros = append(numeros, o.Numero)
		}
		in.Numero = siguienteNumero(PrefijoOrden, numeros, time.Now())
	}

	if errs := validation.CreateOrder(&in); len(errs) > 0 {
		return &dto.OrderResult{Errores: errs}
	}

	for _, o := range existentes {
		if o.Numero == in.Numero {
			return &dto.OrderResult{Errores: []string{"ya existe una orden con este número"}}
		}
	}

	fechaOrden, err := validation.ParseFecha(in.FechaOrden)
	if err != nil {
		return &dto.OrderResult{Errores: []string{"fecha_orden no es una fecha válida"}}
	}
	var fechaEntrega *time.Time
	if in.FechaEntrega != "" {
		fe, err := validation.ParseFecha(in.FechaEntrega)
		if err != nil {
			return &dto.OrderResult{Errores: []string{"fecha_entrega_esperada no es una fecha válida"}}
		}
		fechaEntrega = &fe
	}

	now := time.Now()
	orden := &entity.PurchaseOrder{
		ID:                uuid.New().String(),
		Numero:            in.Numero,
		NombreProveedor:   in.NombreProveedor,
		EmailProveedor:    in.EmailProveedor,
		TelefonoProveedor: in.TelefonoProveedor,
		MontoTotal:        in.MontoTotal,
		Moneda:            in.Moneda,
		Estado:            entity.OrderStatusPendiente,
		FechaOrden:        fechaOrden,
		FechaEntrega:      fechaEntrega,
		Notas:             in.Notas,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(orden); err != nil {
		if err == domain.ErrDuplicate {
			return &dto.OrderResult{Errores: []string{"ya existe una orden con este número"}}
		}
		log.Error().Err(err).Str("numero", orden.Numero).Msg("crear orden de compra")
		return &dto.OrderResult{Errores: []string{"error al crear la orden de compra"}}
	}
	return &dto.OrderResult{Exito: true, Datos: toOrderResponse(orden)}
}

// Update aplica un patch sobre una orden existente. Si el patch cambia el
// estado, la transición debe estar en la tabla; si no, no se escribe nada.
func (uc *OrderUseCase) Update(id string, in dto.UpdateOrderRequest) *dto.OrderResult {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("actualizar orden: leer registro")
		return &dto.OrderResult{Errores: []string{MsgErrorRemotoOrden}}
	}
	if orden == nil {
		return &dto.OrderResult{Errores: []string{MsgOrdenNoEncontrada}}
	}

	if errs := validation.UpdateOrder(&in, orden); len(errs) > 0 {
		return &dto.OrderResult{Errores: errs}
	}

	if in.Estado != nil {
		nuevo := entity.OrderStatus(*in.Estado)
		if nuevo != orden.Estado && !orden.Estado.CanTransitionTo(nuevo) {
			return &dto.OrderResult{Errores: []string{
				"no se puede cambiar el estado de '" + orden.Estado.String() + "' a '" + nuevo.String() + "'",
			}}
		}
		orden.Estado = nuevo
	}
	if in.NombreProveedor != nil {
		orden.NombreProveedor = *in.NombreProveedor
	}
	if in.EmailProveedor != nil {
		orden.EmailProveedor = *in.EmailProveedor
	}
	if in.TelefonoProveedor != nil {
		orden.TelefonoProveedor = *in.TelefonoProveedor
	}
	if in.MontoTotal != nil {
		orden.MontoTotal = *in.MontoTotal
	}
	if in.Moneda != nil {
		orden.Moneda = *in.Moneda
	}
	if in.FechaOrden != nil {
		fo, err := validation.ParseFecha(*in.FechaOrden)
		if err != nil {
			return &dto.OrderResult{Errores: []string{"fecha_orden no es una fecha válida"}}
		}
		orden.FechaOrden = fo
	}
	if in.FechaEntrega != nil {
		fe, err := validation.ParseFecha(*in.FechaEntrega)
		if err != nil {
			return &dto.OrderResult{Errores: []string{"fecha_entrega_esperada no es una fecha válida"}}
		}
		orden.FechaEntrega = &fe
	}
	if in.Notas != nil {
		orden.Notas = *in.Notas
	}
	orden.UpdatedAt = time.Now()

	if err := uc.repo.Update(orden); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.OrderResult{Errores: []string{MsgOrdenNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("actualizar orden de compra")
		return &dto.OrderResult{Errores: []string{"error al actualizar la orden de compra"}}
	}
	return &dto.OrderResult{Exito: true, Datos: toOrderResponse(orden)}
}

// Delete elimina una orden solo si sigue en estado pendiente.
func (uc *OrderUseCase) Delete(id string) *dto.DeleteResult {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("eliminar orden: leer registro")
		return &dto.DeleteResult{Errores: []string{MsgErrorRemotoOrden}}
	}
	if orden == nil {
		return &dto.DeleteResult{Errores: []string{MsgOrdenNoEncontrada}}
	}
	if !orden.Deletable() {
		return &dto.DeleteResult{Errores: []string{"solo se pueden eliminar órdenes en estado pendiente"}}
	}
	if err := uc.repo.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.DeleteResult{Errores: []string{MsgOrdenNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("eliminar orden de compra")
		return &dto.DeleteResult{Errores: []string{"error al eliminar la orden de compra"}}
	}
	return &dto.DeleteResult{Exito: true}
}

// AttachDocument guarda la URL pública del documento adjunto de la orden.
// La URL es opaca para el servicio; viene del colaborador de almacenamiento.
func (uc *OrderUseCase) AttachDocument(id, url string) *dto.OrderResult {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("adjuntar documento: leer orden")
		return &dto.OrderResult{Errores: []string{MsgErrorRemotoOrden}}
	}
	if orden == nil {
		return &dto.OrderResult{Errores: []string{MsgOrdenNoEncontrada}}
	}
	orden.URLDocumento = url
	orden.UpdatedAt = time.Now()
	if err := uc.repo.Update(orden); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.OrderResult{Errores: []string{MsgOrdenNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("adjuntar documento a orden")
		return &dto.OrderResult{Errores: []string{"error al adjuntar el documento"}}
	}
	return &dto.OrderResult{Exito: true, Datos: toOrderResponse(orden)}
}

// GetByID obtiene una orden por ID. Nil sin error cuando no existe.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, nil
	}
	return toOrderResponse(orden), nil
}

// List lista todas las órdenes, más recientes primero.
func (uc *OrderUseCase) List() ([]*dto.OrderResponse, error) {
	list, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByStatus lista órdenes filtradas por estado.
func (uc *OrderUseCase) ListByStatus(estado entity.OrderStatus) ([]*dto.OrderResponse, error) {
	if !estado.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByStatus(estado)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// Entity devuelve la entidad cruda (para el generador de PDF).
func (uc *OrderUseCase) Entity(id string) (*entity.PurchaseOrder, error) {
	return uc.repo.GetByID(id)
}

func toOrderResponses(list []*entity.PurchaseOrder) []*dto.OrderResponse {
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:                o.ID,
		Numero:            o.Numero,
		NombreProveedor:   o.NombreProveedor,
		EmailProveedor:    o.EmailProveedor,
		TelefonoProveedor: o.TelefonoProveedor,
		MontoTotal:        o.MontoTotal,
		Moneda:            o.Moneda,
		Estado:            o.Estado.String(),
		FechaOrden:        o.FechaOrden.Format(validation.FechaFormato),
		Notas:             o.Notas,
		URLDocumento:      o.URLDocumento,
		CreadoEn:          o.CreatedAt,
		ActualizadoEn:     o.UpdatedAt,
	}
	if o.FechaEntrega != nil {
		resp.FechaEntrega = o.FechaEntrega.Format(validation.FechaFormato)
	}
	return resp
}
