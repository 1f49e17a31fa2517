package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type comandaFixture struct {
	comandas  *fakeComandaRepo
	productos *fakeProductoRepo
	mesas     *fakeMesaRepo
	caja      *fakeCajaRepo
	series    *fakeSerieRepo
	svc       service.ComandaService
}

func newComandaFixture() *comandaFixture {
	f := &comandaFixture{
		comandas:  newFakeComandaRepo(),
		productos: newFakeProductoRepo(),
		mesas:     newFakeMesaRepo(),
		caja:      newFakeCajaRepo(),
		series:    newFakeSerieRepo(),
	}
	f.svc = service.NewComandaService(f.comandas, f.productos, f.mesas, f.caja, f.series, newFakeConfigService())
	return f
}

func itemReq(p *model.Producto, cantidad int64) dto.ItemComandaRequest {
	return dto.ItemComandaRequest{
		ProductoID: p.ID.String(),
		Cantidad:   decimal.NewFromInt(cantidad),
	}
}

func TestCrearComanda_SinCajaAbierta(t *testing.T) {
	f := newComandaFixture()

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearComandaRequest{
		TipoServicio: model.ServicioLlevar,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrConflict))
	assert.Contains(t, err.Error(), "no hay caja abierta")
}

func TestCrearComanda_ServicioMesaRequiereMesa(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)

	_, err := f.svc.Crear(context.Background(), usuario, dto.CrearComandaRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrValidation))
	assert.Contains(t, err.Error(), "id_mesa requerido")
}

// La numeración sale del mismo contador bloqueado que las series fiscales,
// bajo COMANDA/CMD.
func TestCrearComanda_NumeracionYTotales(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 5")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 50)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	resp, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID:     &mesaID,
		Comensales: 2,
		Items:      []dto.ItemComandaRequest{itemReq(lomo, 2)},
	})
	require.NoError(t, err)

	assert.Equal(t, "CMD-000001", resp.Numero)
	assert.Equal(t, model.ComandaAbierta, resp.Estado)
	assert.Equal(t, 2, resp.Comensales)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, model.ItemPendiente, resp.Items[0].Estado)

	// 47.20 bruto con IGV adentro: 40.00 + 7.20
	assert.Equal(t, "47.20", resp.Total.StringFixed(2))
	assert.Equal(t, "40.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "7.20", resp.IGV.StringFixed(2))

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaOcupada, mesaActual.Estado)

	// El correlativo avanza por comanda, no por item
	otra := seedMesa(f.mesas, "Mesa 6")
	otraID := otra.ID.String()
	resp2, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &otraID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "CMD-000002", resp2.Numero)
}

func TestAgregarItems_RecalculaTotales(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	ceviche := seedProducto(f.productos, "Ceviche", 30.00, 20)
	chicha := seedProducto(f.productos, "Chicha morada", 8.00, 20)

	ctx := context.Background()
	resp, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		TipoServicio: model.ServicioLlevar,
		Items:        []dto.ItemComandaRequest{itemReq(ceviche, 1)},
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)

	resp, err = f.svc.AgregarItems(ctx, comandaID, []dto.ItemComandaRequest{itemReq(chicha, 2)})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "46.00", resp.Total.StringFixed(2))
}

// Solo los pendientes viajan: la segunda llamada no encuentra nada y
// responde cero sin error.
func TestEnviarCocina_Idempotente(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	arroz := seedProducto(f.productos, "Arroz chaufa", 18.00, 30)
	sopa := seedProducto(f.productos, "Sopa wantán", 12.00, 30)

	ctx := context.Background()
	resp, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		TipoServicio: model.ServicioLlevar,
		Items:        []dto.ItemComandaRequest{itemReq(arroz, 1), itemReq(sopa, 1)},
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)

	envio, err := f.svc.EnviarCocina(ctx, comandaID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), envio.ItemsEnviados)

	comanda, err := f.svc.Obtener(ctx, comandaID)
	require.NoError(t, err)
	assert.Equal(t, model.ComandaEnCocina, comanda.Estado)
	for _, item := range comanda.Items {
		assert.Equal(t, model.ItemEnviado, item.Estado)
		assert.NotNil(t, item.HoraEnvio)
	}

	envio, err = f.svc.EnviarCocina(ctx, comandaID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), envio.ItemsEnviados)
}

func TestCambiarEstadoItem_CanceladoRecalcula(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	ceviche := seedProducto(f.productos, "Ceviche", 30.00, 20)
	chicha := seedProducto(f.productos, "Chicha morada", 8.00, 20)

	ctx := context.Background()
	resp, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		TipoServicio: model.ServicioLlevar,
		Items:        []dto.ItemComandaRequest{itemReq(ceviche, 1), itemReq(chicha, 1)},
	})
	require.NoError(t, err)

	itemID := uuid.MustParse(resp.Items[0].ID)
	resp, err = f.svc.CambiarEstadoItem(ctx, itemID, model.ItemCancelado)
	require.NoError(t, err)

	assert.Equal(t, "8.00", resp.Total.StringFixed(2))
	assert.Equal(t, model.ItemCancelado, resp.Items[0].Estado)
}

func TestCambiarEstadoItem_Invalido(t *testing.T) {
	f := newComandaFixture()

	_, err := f.svc.CambiarEstadoItem(context.Background(), uuid.New(), "quemado")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrValidation))
}

func TestCambiarEstado_TerminalLiberaMesa(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 1")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 50)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	resp, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 1)},
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)

	resp, err = f.svc.CambiarEstado(ctx, comandaID, model.ComandaCancelada)
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCancelada, resp.Estado)
	assert.NotNil(t, resp.FechaCierre)

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaLibre, mesaActual.Estado)

	// Terminal no admite más transiciones
	_, err = f.svc.CambiarEstado(ctx, comandaID, model.ComandaAbierta)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrInvalidState))
}

// Con dos comandas vivas sobre la misma mesa, cerrar una no la libera.
func TestCambiarEstado_MesaCompartidaSigueOcupada(t *testing.T) {
	f := newComandaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 2")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 50)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	primera, err := f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 1)},
	})
	require.NoError(t, err)
	_, err = f.svc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 1)},
	})
	require.NoError(t, err)

	_, err = f.svc.CambiarEstado(ctx, uuid.MustParse(primera.ID), model.ComandaCancelada)
	require.NoError(t, err)

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaOcupada, mesaActual.Estado)
}
