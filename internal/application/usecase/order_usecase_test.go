package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

func crearOrdenValida() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		NombreProveedor: "Proveedor Uno Ltda.",
		MontoTotal:      decimal.NewFromInt(250000),
	}
}

func ordenGuardada(estado entity.OrderStatus) *entity.PurchaseOrder {
	now := time.Now()
	return &entity.PurchaseOrder{
		ID:              "11111111-1111-4111-8111-111111111111",
		Numero:          "OC-202609-001",
		NombreProveedor: "Proveedor Uno Ltda.",
		MontoTotal:      decimal.NewFromInt(250000),
		Moneda:          entity.MonedaCLP,
		Estado:          estado,
		FechaOrden:      now.AddDate(0, 0, -3),
		CreatedAt:       now.AddDate(0, 0, -3),
		UpdatedAt:       now.AddDate(0, 0, -3),
	}
}

func TestOrderCreate_NumeracionAutomaticaCorrelativa(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := NewOrderUseCase(repo)
	prefijoMes := fmt.Sprintf("OC-%s", time.Now().Format("200601"))

	primera := uc.Create(crearOrdenValida())
	require.True(t, primera.Exito, "errores: %v", primera.Errores)
	assert.Equal(t, prefijoMes+"-001", primera.Datos.Numero)

	segunda := uc.Create(crearOrdenValida())
	require.True(t, segunda.Exito, "errores: %v", segunda.Errores)
	assert.Equal(t, prefijoMes+"-002", segunda.Datos.Numero)
}

func TestOrderCreate_NumeroSoloEspaciosTambienNumera(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := NewOrderUseCase(repo)

	in := crearOrdenValida()
	in.Numero = "   "
	out := uc.Create(in)

	require.True(t, out.Exito, "errores: %v", out.Errores)
	prefijoMes := fmt.Sprintf("OC-%s", time.Now().Format("200601"))
	assert.Equal(t, prefijoMes+"-001", out.Datos.Numero)
}

func TestOrderCreate_NaceSiemprePendienteConDefaults(t *testing.T) {
	uc := NewOrderUseCase(&fakeOrderRepo{})

	out := uc.Create(crearOrdenValida())

	require.True(t, out.Exito)
	assert.Equal(t, "pendiente", out.Datos.Estado)
	assert.Equal(t, entity.MonedaCLP, out.Datos.Moneda)
	assert.NotEmpty(t, out.Datos.ID)
	assert.NotEmpty(t, out.Datos.FechaOrden)
}

func TestOrderCreate_NumeroDuplicadoRechazado(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusPendiente)}}
	uc := NewOrderUseCase(repo)

	in := crearOrdenValida()
	in.Numero = "OC-202609-001"
	out := uc.Create(in)

	assert.False(t, out.Exito)
	assert.Contains(t, out.Errores, "ya existe una orden con este número")
	assert.Len(t, repo.ordenes, 1, "no debe escribirse nada")
}

func TestOrderCreate_ValidacionFallida(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := NewOrderUseCase(repo)

	out := uc.Create(dto.CreateOrderRequest{})

	assert.False(t, out.Exito)
	assert.Contains(t, out.Errores, "nombre_proveedor es requerido")
	assert.Empty(t, repo.ordenes)
}

func TestOrderCreate_FalloRemotoEnSobre(t *testing.T) {
	repo := &fakeOrderRepo{failErr: errors.New("conexión rechazada")}
	uc := NewOrderUseCase(repo)

	out := uc.Create(crearOrdenValida())

	assert.False(t, out.Exito)
	require.Len(t, out.Errores, 1)
	// El mensaje es genérico; el detalle del transporte no sale del servicio.
	assert.Equal(t, MsgErrorRemotoOrden, out.Errores[0])
}

func TestOrderUpdate_TransicionValida(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusPendiente)}}
	uc := NewOrderUseCase(repo)

	estado := "enviada"
	out := uc.Update("11111111-1111-4111-8111-111111111111", dto.UpdateOrderRequest{Estado: &estado})

	require.True(t, out.Exito, "errores: %v", out.Errores)
	assert.Equal(t, "enviada", out.Datos.Estado)
	assert.Equal(t, entity.OrderStatusEnviada, repo.ordenes[0].Estado)
}

func TestOrderUpdate_TransicionIlegalNoEscribe(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusEnviada)}}
	uc := NewOrderUseCase(repo)

	estado := "pendiente"
	out := uc.Update("11111111-1111-4111-8111-111111111111", dto.UpdateOrderRequest{Estado: &estado})

	assert.False(t, out.Exito)
	require.Len(t, out.Errores, 1)
	assert.Equal(t, "no se puede cambiar el estado de 'enviada' a 'pendiente'", out.Errores[0])
	assert.Equal(t, entity.OrderStatusEnviada, repo.ordenes[0].Estado, "el registro no debe cambiar")
}

func TestOrderUpdate_MismoEstadoEsNoOp(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusEnviada)}}
	uc := NewOrderUseCase(repo)

	estado := "enviada"
	out := uc.Update("11111111-1111-4111-8111-111111111111", dto.UpdateOrderRequest{Estado: &estado})

	assert.True(t, out.Exito, "repetir el estado actual no es una transición")
}

func TestOrderUpdate_AplicaSoloCamposPresentes(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusPendiente)}}
	uc := NewOrderUseCase(repo)

	nombre := "Proveedor Dos SpA"
	monto := decimal.NewFromInt(300000)
	out := uc.Update("11111111-1111-4111-8111-111111111111", dto.UpdateOrderRequest{
		NombreProveedor: &nombre,
		MontoTotal:      &monto,
	})

	require.True(t, out.Exito, "errores: %v", out.Errores)
	assert.Equal(t, "Proveedor Dos SpA", out.Datos.NombreProveedor)
	assert.True(t, out.Datos.MontoTotal.Equal(monto))
	assert.Equal(t, "OC-202609-001", out.Datos.Numero, "el número no es parcheable")
	assert.Equal(t, "pendiente", out.Datos.Estado)
}

func TestOrderUpdate_NoEncontrada(t *testing.T) {
	uc := NewOrderUseCase(&fakeOrderRepo{})

	nombre := "X"
	out := uc.Update("99999999-9999-4999-8999-999999999999", dto.UpdateOrderRequest{NombreProveedor: &nombre})

	assert.False(t, out.Exito)
	assert.Contains(t, out.Errores, MsgOrdenNoEncontrada)
}

func TestOrderDelete_SoloPendiente(t *testing.T) {
	casos := []struct {
		estado entity.OrderStatus
		exito  bool
	}{
		{entity.OrderStatusPendiente, true},
		{entity.OrderStatusEnviada, false},
		{entity.OrderStatusCancelada, false},
	}
	for _, c := range casos {
		repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(c.estado)}}
		uc := NewOrderUseCase(repo)

		out := uc.Delete("11111111-1111-4111-8111-111111111111")

		assert.Equal(t, c.exito, out.Exito, "estado %s", c.estado)
		if c.exito {
			assert.Empty(t, repo.ordenes)
		} else {
			assert.Contains(t, out.Errores, "solo se pueden eliminar órdenes en estado pendiente")
			assert.Len(t, repo.ordenes, 1)
		}
	}
}

// ordenDesaparecida simula una carrera: la lectura encuentra el registro pero
// la escritura posterior ya no (otro proceso lo eliminó).
type ordenDesaparecida struct{ fakeOrderRepo }

func (r *ordenDesaparecida) Update(o *entity.PurchaseOrder) error { return domain.ErrNotFound }
func (r *ordenDesaparecida) Delete(id string) error               { return domain.ErrNotFound }

func TestOrder_RegistroDesaparecidoEntreLecturaYEscritura(t *testing.T) {
	repo := &ordenDesaparecida{fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusPendiente)}}}
	uc := NewOrderUseCase(repo)
	id := "11111111-1111-4111-8111-111111111111"

	nombre := "Proveedor Dos SpA"
	upd := uc.Update(id, dto.UpdateOrderRequest{NombreProveedor: &nombre})
	assert.False(t, upd.Exito)
	assert.Contains(t, upd.Errores, MsgOrdenNoEncontrada)

	del := uc.Delete(id)
	assert.False(t, del.Exito)
	assert.Contains(t, del.Errores, MsgOrdenNoEncontrada)
}

func TestOrderAttachDocument(t *testing.T) {
	repo := &fakeOrderRepo{ordenes: []*entity.PurchaseOrder{ordenGuardada(entity.OrderStatusPendiente)}}
	uc := NewOrderUseCase(repo)

	url := "https://storage.googleapis.com/bucket/ordenes_compra/OC-202609-001_1756700000000.pdf"
	out := uc.AttachDocument("11111111-1111-4111-8111-111111111111", url)

	require.True(t, out.Exito, "errores: %v", out.Errores)
	assert.Equal(t, url, out.Datos.URLDocumento)
	assert.Equal(t, url, repo.ordenes[0].URLDocumento)
}

func TestOrderListByStatus_EstadoInvalido(t *testing.T) {
	uc := NewOrderUseCase(&fakeOrderRepo{})

	_, err := uc.ListByStatus(entity.OrderStatus("aprobada"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderGetByID_NilSinErrorCuandoNoExiste(t *testing.T) {
	uc := NewOrderUseCase(&fakeOrderRepo{})

	orden, err := uc.GetByID("99999999-9999-4999-8999-999999999999")

	require.NoError(t, err)
	assert.Nil(t, orden)
}
