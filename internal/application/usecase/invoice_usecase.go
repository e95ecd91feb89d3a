package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/validation"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
	"github.com/tu-usuario/gestion-compras/internal/domain/repository"
)

const (
	MsgFacturaNoEncontrada = "factura no encontrada"
	MsgErrorRemotoFactura  = "error al acceder al almacenamiento de facturas"
)

// InvoiceUseCase servicio de reglas de negocio para facturas. Además de las
// reglas propias necesita el repositorio de órdenes para el chequeo
// referencial: una factura solo se crea contra una orden "enviada".
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	ordenRepo repository.PurchaseOrderRepository
}

// NewInvoiceUseCase construye el servicio.
func NewInvoiceUseCase(repo repository.InvoiceRepository, ordenRepo repository.PurchaseOrderRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, ordenRepo: ordenRepo}
}

// Create crea una factura: numera si hace falta, valida, verifica unicidad y
// la precondición referencial sobre la orden, y persiste. Nace "pendiente".
func (uc *InvoiceUseCase) Create(in dto.CreateInvoiceRequest) *dto.InvoiceResult {
	existentes, err := uc.repo.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("crear factura: leer facturas existentes")
		return &dto.InvoiceResult{Errores: []string{MsgErrorRemotoFactura}}
	}

	// Un número en blanco (o solo espacios) dispara la numeración automática.
	in.Numero = strings.TrimSpace(in.Numero)
	if in.Numero == "" {
		numeros := make([]string, 0, len(existentes))
		for _, f := range existentes {
			numeros = append(numeros, f.Numero)
		}
		in.Numero = siguienteNumero(PrefijoFactura, numeros, time.Now())
	}

	if errs := validation.CreateInvoice(&in); len(errs) > 0 {
		return &dto.InvoiceResult{Errores: errs}
	}

	var errores []string
	for _, f := range existentes {
		if f.Numero == in.Numero {
			errores = append(errores, "ya existe una factura con este número")
			break
		}
	}

	orden, err := uc.ordenRepo.GetByID(in.OrdenCompraID)
	if err != nil {
		log.Error().Err(err).Str("orden_compra_id", in.OrdenCompraID).Msg("crear factura: resolver orden")
		return &dto.InvoiceResult{Errores: []string{MsgErrorRemotoOrden}}
	}
	switch {
	case orden == nil:
		errores = append(errores, "la orden de compra especificada no existe")
	case orden.Estado != entity.OrderStatusEnviada:
		errores = append(errores, "solo se pueden crear facturas para órdenes enviadas")
	}
	if len(errores) > 0 {
		return &dto.InvoiceResult{Errores: errores}
	}

	fechaFactura, err := validation.ParseFecha(in.FechaFactura)
	if err != nil {
		return &dto.InvoiceResult{Errores: []string{"fecha_factura no es una fecha válida"}}
	}
	fechaVencimiento, err := validation.ParseFecha(in.FechaVencimiento)
	if err != nil {
		return &dto.InvoiceResult{Errores: []string{"fecha_vencimiento no es una fecha válida"}}
	}
	var fechaPago *time.Time
	if in.FechaPago != "" {
		fp, err := validation.ParseFecha(in.FechaPago)
		if err != nil {
			return &dto.InvoiceResult{Errores: []string{"fecha_pago no es una fecha válida"}}
		}
		fechaPago = &fp
	}

	now := time.Now()
	factura := &entity.Invoice{
		ID:               uuid.New().String(),
		Numero:           in.Numero,
		OrdenCompraID:    in.OrdenCompraID,
		NombreVendedor:   in.NombreVendedor,
		EmailVendedor:    in.EmailVendedor,
		TelefonoVendedor: in.TelefonoVendedor,
		MontoTotal:       in.MontoTotal,
		Moneda:           in.Moneda,
		Estado:           entity.InvoiceStatusPendiente,
		FechaFactura:     fechaFactura,
		FechaVencimiento: fechaVencimiento,
		FechaPago:        fechaPago,
		Notas:            in.Notas,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(factura); err != nil {
		if err == domain.ErrDuplicate {
			return &dto.InvoiceResult{Errores: []string{"ya existe una factura con este número"}}
		}
		log.Error().Err(err).Str("numero", factura.Numero).Msg("crear factura")
		return &dto.InvoiceResult{Errores: []string{"error al crear la factura"}}
	}
	return &dto.InvoiceResult{Exito: true, Datos: toInvoiceResponse(factura)}
}

// Update aplica un patch sobre una factura. Al pasar a "pagada" sin fecha de
// pago en el patch se estampa la fecha de hoy.
func (uc *InvoiceUseCase) Update(id string, in dto.UpdateInvoiceRequest) *dto.InvoiceResult {
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("actualizar factura: leer registro")
		return &dto.InvoiceResult{Errores: []string{MsgErrorRemotoFactura}}
	}
	if factura == nil {
		return &dto.InvoiceResult{Errores: []string{MsgFacturaNoEncontrada}}
	}

	if errs := validation.UpdateInvoice(&in, factura); len(errs) > 0 {
		return &dto.InvoiceResult{Errores: errs}
	}

	if in.Estado != nil {
		nuevo := entity.InvoiceStatus(*in.Estado)
		if nuevo != factura.Estado && !factura.Estado.CanTransitionTo(nuevo) {
			return &dto.InvoiceResult{Errores: []string{
				"no se puede cambiar el estado de '" + factura.Estado.String() + "' a '" + nuevo.String() + "'",
			}}
		}
		factura.Estado = nuevo
		if nuevo == entity.InvoiceStatusPagada && in.FechaPago == nil && factura.FechaPago == nil {
			hoy, _ := validation.ParseFecha(validation.Hoy())
			factura.FechaPago = &hoy
		}
	}
	if in.NombreVendedor != nil {
		factura.NombreVendedor = *in.NombreVendedor
	}
	if in.EmailVendedor != nil {
		factura.EmailVendedor = *in.EmailVendedor
	}
	if in.TelefonoVendedor != nil {
		factura.TelefonoVendedor = *in.TelefonoVendedor
	}
	if in.MontoTotal != nil {
		factura.MontoTotal = *in.MontoTotal
	}
	if in.Moneda != nil {
		factura.Moneda = *in.Moneda
	}
	if in.FechaFactura != nil {
		ff, err := validation.ParseFecha(*in.FechaFactura)
		if err != nil {
			return &dto.InvoiceResult{Errores: []string{"fecha_factura no es una fecha válida"}}
		}
		factura.FechaFactura = ff
	}
	if in.FechaVencimiento != nil {
		fv, err := validation.ParseFecha(*in.FechaVencimiento)
		if err != nil {
			return &dto.InvoiceResult{Errores: []string{"fecha_vencimiento no es una fecha válida"}}
		}
		factura.FechaVencimiento = fv
	}
	if in.FechaPago != nil {
		fp, err := validation.ParseFecha(*in.FechaPago)
		if err != nil {
			return &dto.InvoiceResult{Errores: []string{"fecha_pago no es una fecha válida"}}
		}
		factura.FechaPago = &fp
	}
	if in.Notas != nil {
		factura.Notas = *in.Notas
	}
	factura.UpdatedAt = time.Now()

	if err := uc.repo.Update(factura); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.InvoiceResult{Errores: []string{MsgFacturaNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("actualizar factura")
		return &dto.InvoiceResult{Errores: []string{"error al actualizar la factura"}}
	}
	return &dto.InvoiceResult{Exito: true, Datos: toInvoiceResponse(factura)}
}

// MarcarComoPagada transición directa a "pagada" con fecha de pago opcional.
func (uc *InvoiceUseCase) MarcarComoPagada(id, fechaPago string) *dto.InvoiceResult {
	estado := entity.InvoiceStatusPagada.String()
	in := dto.UpdateInvoiceRequest{Estado: &estado}
	if fechaPago != "" {
		in.FechaPago = &fechaPago
	}
	return uc.Update(id, in)
}

// Delete elimina una factura salvo que esté pagada.
func (uc *InvoiceUseCase) Delete(id string) *dto.DeleteResult {
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("eliminar factura: leer registro")
		return &dto.DeleteResult{Errores: []string{MsgErrorRemotoFactura}}
	}
	if factura == nil {
		return &dto.DeleteResult{Errores: []string{MsgFacturaNoEncontrada}}
	}
	if !factura.Deletable() {
		return &dto.DeleteResult{Errores: []string{"no se pueden eliminar facturas pagadas"}}
	}
	if err := uc.repo.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.DeleteResult{Errores: []string{MsgFacturaNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("eliminar factura")
		return &dto.DeleteResult{Errores: []string{"error al eliminar la factura"}}
	}
	return &dto.DeleteResult{Exito: true}
}

// AttachDocument guarda la URL pública del documento adjunto de la factura.
func (uc *InvoiceUseCase) AttachDocument(id, url string) *dto.InvoiceResult {
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("adjuntar documento: leer factura")
		return &dto.InvoiceResult{Errores: []string{MsgErrorRemotoFactura}}
	}
	if factura == nil {
		return &dto.InvoiceResult{Errores: []string{MsgFacturaNoEncontrada}}
	}
	factura.URLDocumento = url
	factura.UpdatedAt = time.Now()
	if err := uc.repo.Update(factura); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.InvoiceResult{Errores: []string{MsgFacturaNoEncontrada}}
		}
		log.Error().Err(err).Str("id", id).Msg("adjuntar documento a factura")
		return &dto.InvoiceResult{Errores: []string{"error al adjuntar el documento"}}
	}
	return &dto.InvoiceResult{Exito: true, Datos: toInvoiceResponse(factura)}
}

// GetByID obtiene una factura por ID. Nil sin error cuando no existe.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, nil
	}
	return toInvoiceResponse(factura), nil
}

// List lista todas las facturas, más recientes primero.
func (uc *InvoiceUseCase) List() ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// ListByStatus lista facturas filtradas por estado.
func (uc *InvoiceUseCase) ListByStatus(estado entity.InvoiceStatus) ([]*dto.InvoiceResponse, error) {
	if !estado.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByStatus(estado)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// ListVencidas lista facturas pendientes con vencimiento anterior a hoy.
func (uc *InvoiceUseCase) ListVencidas() ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.ListVencidas()
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// ListByOrdenCompra lista las facturas emitidas contra una orden.
func (uc *InvoiceUseCase) ListByOrdenCompra(ordenCompraID string) ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.ListByOrdenCompra(ordenCompraID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// Summary agrega conteo y monto de facturas pendientes y vencidas. Agregación
// de solo lectura, calculada en memoria sobre el resultado completo.
func (uc *InvoiceUseCase) Summary() (*dto.InvoiceSummaryResponse, error) {
	pendientes, err := uc.repo.ListByStatus(entity.InvoiceStatusPendiente)
	if err != nil {
		return nil, err
	}
	vencidas, err := uc.repo.ListVencidas()
	if err != nil {
		return nil, err
	}

	montoPendiente := decimal.Zero
	for _, f := range pendientes {
		montoPendiente = montoPendiente.Add(f.MontoTotal)
	}
	montoVencido := decimal.Zero
	for _, f := range vencidas {
		montoVencido = montoVencido.Add(f.MontoTotal)
	}
	return &dto.InvoiceSummaryResponse{
		TotalFacturas:    len(pendientes),
		MontoTotal:       montoPendiente,
		FacturasVencidas: len(vencidas),
		MontoVencido:     montoVencido,
	}, nil
}

// Entity devuelve la entidad cruda (para el generador de PDF).
func (uc *InvoiceUseCase) Entity(id string) (*entity.Invoice, error) {
	return uc.repo.GetByID(id)
}

func toInvoiceResponses(list []*entity.Invoice) []*dto.InvoiceResponse {
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toInvoiceResponse(f))
	}
	return out
}

func toInvoiceResponse(f *entity.Invoice) *dto.InvoiceResponse {
	if f == nil {
		return nil
	}
	resp := &dto.InvoiceResponse{
		ID:               f.ID,
		Numero:           f.Numero,
		OrdenCompraID:    f.OrdenCompraID,
		NombreVendedor:   f.NombreVendedor,
		EmailVendedor:    f.EmailVendedor,
		TelefonoVendedor: f.TelefonoVendedor,
		MontoTotal:       f.MontoTotal,
		Moneda:           f.Moneda,
		Estado:           f.Estado.String(),
		FechaFactura:     f.FechaFactura.Format(validation.FechaFormato),
		FechaVencimiento: f.FechaVencimiento.Format(validation.FechaFormato),
		Notas:            f.Notas,
		URLDocumento:     f.URLDocumento,
		CreadoEn:         f.CreatedAt,
		ActualizadoEn:    f.UpdatedAt,
	}
	if f.FechaPago != nil {
		resp.FechaPago = f.FechaPago.Format(validation.FechaFormato)
	}
	return resp
}
