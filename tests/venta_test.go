package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
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

type ventaFixture struct {
	ventas     *fakeVentaRepo
	caja       *fakeCajaRepo
	productos  *fakeProductoRepo
	clientes   *fakeClienteRepo
	comandas   *fakeComandaRepo
	mesas      *fakeMesaRepo
	series     *fakeSerieRepo
	svc        service.VentaService
	comandaSvc service.ComandaService
}

func newVentaFixture() *ventaFixture {
	f := &ventaFixture{
		ventas:    newFakeVentaRepo(),
		caja:      newFakeCajaRepo(),
		productos: newFakeProductoRepo(),
		clientes:  newFakeClienteRepo(),
		comandas:  newFakeComandaRepo(),
		mesas:     newFakeMesaRepo(),
		series:    newFakeSerieRepo(),
	}
	cfg := newFakeConfigService()
	f.svc = service.NewVentaService(f.ventas, f.caja, f.productos, f.clientes, f.comandas, f.mesas, f.series, cfg, nil)
	f.comandaSvc = service.NewComandaService(f.comandas, f.productos, f.mesas, f.caja, f.series, cfg)
	return f
}

func pagoEfectivo(monto float64) dto.PagoRequest {
	return dto.PagoRequest{Metodo: model.PagoEfectivo, Monto: decimal.NewFromFloat(monto)}
}

func ventaReq(p *model.Producto, cantidad int64, pagos ...dto.PagoRequest) dto.CrearVentaRequest {
	return dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{{
			ProductoID: p.ID.String(),
			Cantidad:   decimal.NewFromInt(cantidad),
		}},
		Pagos: pagos,
	}
}

func TestCrearVenta_SinCajaAbierta(t *testing.T) {
	f := newVentaFixture()
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	_, err := f.svc.Crear(context.Background(), uuid.New(), ventaReq(lomo, 1, pagoEfectivo(23.60)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrConflict))
	assert.Contains(t, err.Error(), "no hay caja abierta")
}

// El total bruto trae el IGV adentro: de 47.20 salen 40.00 + 7.20.
func TestCrearVenta_DesgloseIGV(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	resp, err := f.svc.Crear(context.Background(), usuario, ventaReq(lomo, 2, pagoEfectivo(47.20)))
	require.NoError(t, err)

	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.Equal(t, model.TipoNotaVenta, resp.TipoComprobante)
	assert.Equal(t, "47.20", resp.Total.StringFixed(2))
	assert.Equal(t, "40.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "7.20", resp.IGV.StringFixed(2))

	// Sin serie configurada cae a la serie por defecto
	assert.Equal(t, model.SerieFallback, resp.Serie)
	assert.Equal(t, int64(1), resp.Numero)
	assert.Equal(t, fmt.Sprintf("%s-00000001", model.SerieFallback), resp.NumeroCompleto)

	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, "Lomo saltado", resp.Detalles[0].Descripcion)

	// El stock baja dentro de la misma transacción
	p, err := f.productos.FindByID(context.Background(), lomo.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", p.Stock.String())
}

func TestCrearVenta_SerieActivaConfigurada(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)
	f.series.activas[model.TipoBoleta] = &model.SerieComprobante{
		Tipo:   model.TipoBoleta,
		Serie:  "B001",
		Activo: true,
	}

	req := ventaReq(lomo, 1, pagoEfectivo(23.60))
	req.TipoComprobante = model.TipoBoleta
	resp, err := f.svc.Crear(context.Background(), usuario, req)
	require.NoError(t, err)
	assert.Equal(t, "B001", resp.Serie)
	assert.Equal(t, "B001-00000001", resp.NumeroCompleto)
}

func TestCrearVenta_SinPagosQuedaPendiente(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	resp, err := f.svc.Crear(context.Background(), usuario, ventaReq(lomo, 1))
	require.NoError(t, err)
	assert.Equal(t, model.VentaPendiente, resp.Estado)
}

// Un pago a cuenta se acepta y persiste; la venta queda pendiente hasta
// que los pagos cubran el total.
func TestCrearVenta_PagoParcialQuedaPendiente(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	resp, err := f.svc.Crear(context.Background(), usuario, ventaReq(lomo, 2, pagoEfectivo(20)))
	require.NoError(t, err)

	assert.Equal(t, model.VentaPendiente, resp.Estado)
	assert.Equal(t, "47.20", resp.Total.StringFixed(2))
	require.Len(t, resp.Pagos, 1)
	assert.Equal(t, "20.00", resp.Pagos[0].Monto.StringFixed(2))
	assert.Equal(t, "20.00", sesion.TotalEfectivo.StringFixed(2))
}

func TestCrearVenta_FacturaRequiereCliente(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	req := ventaReq(lomo, 1, pagoEfectivo(23.60))
	req.TipoComprobante = model.TipoFactura
	_, err := f.svc.Crear(context.Background(), usuario, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrValidation))
	assert.Contains(t, err.Error(), "factura requiere un cliente")
}

// SUNAT: la boleta identifica al comprador desde S/ 700.00.
func TestCrearVenta_BoletaUmbralCliente(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	parrilla := seedProducto(f.productos, "Parrilla familiar", 700.00, 10)
	menu := seedProducto(f.productos, "Menú del día", 699.99, 10)

	ctx := context.Background()

	req := ventaReq(parrilla, 1, pagoEfectivo(700))
	req.TipoComprobante = model.TipoBoleta
	_, err := f.svc.Crear(ctx, usuario, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrValidation))
	assert.Contains(t, err.Error(), "requiere identificar al cliente")

	// Por debajo del umbral pasa sin cliente
	req = ventaReq(menu, 1, pagoEfectivo(699.99))
	req.TipoComprobante = model.TipoBoleta
	_, err = f.svc.Crear(ctx, usuario, req)
	require.NoError(t, err)

	// En el umbral pasa con cliente identificado
	nombre := "Juan"
	cliente := &model.Cliente{
		ID:              uuid.New(),
		TipoDocumento:   model.DocDNI,
		NumeroDocumento: "45678912",
		Nombres:         &nombre,
		Activo:          true,
	}
	f.clientes.clientes[cliente.ID] = cliente
	clienteID := cliente.ID.String()

	req = ventaReq(parrilla, 1, pagoEfectivo(700))
	req.TipoComprobante = model.TipoBoleta
	req.ClienteID = &clienteID
	resp, err := f.svc.Crear(ctx, usuario, req)
	require.NoError(t, err)
	require.NotNil(t, resp.ClienteID)
	assert.Equal(t, clienteID, *resp.ClienteID)
}

func TestCrearVenta_VueltoYBuckets(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	recibido := decimal.NewFromInt(50)
	req := ventaReq(lomo, 2)
	req.Pagos = []dto.PagoRequest{{
		Metodo:        model.PagoEfectivo,
		Monto:         decimal.NewFromFloat(47.20),
		MontoRecibido: &recibido,
	}}
	resp, err := f.svc.Crear(context.Background(), usuario, req)
	require.NoError(t, err)

	require.Len(t, resp.Pagos, 1)
	require.NotNil(t, resp.Pagos[0].Vuelto)
	assert.Equal(t, "2.80", resp.Pagos[0].Vuelto.StringFixed(2))
	assert.Equal(t, "47.20", sesion.TotalEfectivo.StringFixed(2))
}

func TestCrearVenta_PagoMixtoAcumulaPorMetodo(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	req := ventaReq(lomo, 2)
	req.Pagos = []dto.PagoRequest{
		{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(20)},
		{Metodo: model.PagoYape, Monto: decimal.NewFromFloat(27.20)},
	}
	_, err := f.svc.Crear(context.Background(), usuario, req)
	require.NoError(t, err)

	assert.Equal(t, "20.00", sesion.TotalEfectivo.StringFixed(2))
	assert.Equal(t, "27.20", sesion.TotalYape.StringFixed(2))
	assert.Equal(t, "0.00", sesion.TotalTarjeta.StringFixed(2))
}

// Dos cobradores no pueden llevarse el mismo correlativo: el contador se
// entrega bajo candado y cada venta sale con número propio.
func TestCrearVenta_CorrelativoConcurrente(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 1000)

	const n = 50
	numeros := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.svc.Crear(context.Background(), usuario, ventaReq(lomo, 1, pagoEfectivo(23.60)))
			if err != nil {
				t.Error(err)
				return
			}
			numeros <- resp.NumeroCompleto
		}()
	}
	wg.Wait()
	close(numeros)

	vistos := make(map[string]bool, n)
	for num := range numeros {
		assert.False(t, vistos[num], "correlativo repetido: %s", num)
		vistos[num] = true
	}
	assert.Len(t, vistos, n)
}

func TestVentaDesdeComanda_CierraYLiberaMesa(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 3")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	comanda, err := f.comandaSvc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 2)},
	})
	require.NoError(t, err)

	resp, err := f.svc.CrearDesdeComanda(ctx, usuario, dto.VentaDesdeComandaRequest{
		ComandaID: comanda.ID,
		Pagos:     []dto.PagoRequest{pagoEfectivo(47.20)},
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.Equal(t, "47.20", resp.Total.StringFixed(2))
	assert.Equal(t, "47.20", sesion.TotalEfectivo.StringFixed(2))

	cerrada, err := f.comandaSvc.Obtener(ctx, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCerrada, cerrada.Estado)
	require.NotNil(t, cerrada.VentaID)
	assert.Equal(t, resp.ID, *cerrada.VentaID)
	assert.NotNil(t, cerrada.FechaCierre)

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaLibre, mesaActual.Estado)

	// La comanda se cierra dentro de la misma transacción: nunca se
	// factura dos veces.
	_, err = f.svc.CrearDesdeComanda(ctx, usuario, dto.VentaDesdeComandaRequest{
		ComandaID: comanda.ID,
		Pagos:     []dto.PagoRequest{pagoEfectivo(47.20)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrConflict))
	assert.Contains(t, err.Error(), "ya fue facturada")
}

func TestVentaDesdeComanda_ExcluyeItemsCancelados(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	ceviche := seedProducto(f.productos, "Ceviche", 30.00, 10)
	chicha := seedProducto(f.productos, "Chicha morada", 8.00, 10)

	ctx := context.Background()
	comanda, err := f.comandaSvc.Crear(ctx, usuario, dto.CrearComandaRequest{
		TipoServicio: model.ServicioLlevar,
		Items:        []dto.ItemComandaRequest{itemReq(ceviche, 1), itemReq(chicha, 1)},
	})
	require.NoError(t, err)

	_, err = f.comandaSvc.CambiarEstadoItem(ctx, uuid.MustParse(comanda.Items[1].ID), model.ItemCancelado)
	require.NoError(t, err)

	resp, err := f.svc.CrearDesdeComanda(ctx, usuario, dto.VentaDesdeComandaRequest{
		ComandaID: comanda.ID,
		Pagos:     []dto.PagoRequest{pagoEfectivo(30)},
	})
	require.NoError(t, err)
	assert.Equal(t, "30.00", resp.Total.StringFixed(2))
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, "Ceviche", resp.Detalles[0].Descripcion)
}

// Una venta directa pagada sobre una mesa ocupada cierra la comanda viva
// más reciente de esa mesa y la libera, igual que la vía desde-comanda.
func TestCrearVenta_DirectaConMesaCierraComanda(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 7")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	comanda, err := f.comandaSvc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 2)},
	})
	require.NoError(t, err)

	req := ventaReq(lomo, 2, pagoEfectivo(47.20))
	req.MesaID = &mesaID
	resp, err := f.svc.Crear(ctx, usuario, req)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPagada, resp.Estado)

	cerrada, err := f.comandaSvc.Obtener(ctx, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCerrada, cerrada.Estado)
	require.NotNil(t, cerrada.VentaID)
	assert.Equal(t, resp.ID, *cerrada.VentaID)

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaLibre, mesaActual.Estado)
}

func TestCrearVenta_DirectaParcialNoCierraComanda(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)
	mesa := seedMesa(f.mesas, "Mesa 8")
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	ctx := context.Background()
	mesaID := mesa.ID.String()
	comanda, err := f.comandaSvc.Crear(ctx, usuario, dto.CrearComandaRequest{
		MesaID: &mesaID,
		Items:  []dto.ItemComandaRequest{itemReq(lomo, 2)},
	})
	require.NoError(t, err)

	req := ventaReq(lomo, 2, pagoEfectivo(20))
	req.MesaID = &mesaID
	resp, err := f.svc.Crear(ctx, usuario, req)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPendiente, resp.Estado)

	abierta, err := f.comandaSvc.Obtener(ctx, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	assert.Equal(t, model.ComandaAbierta, abierta.Estado)
	assert.Nil(t, abierta.VentaID)

	mesaActual, err := f.mesas.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaOcupada, mesaActual.Estado)
}

// Anular marca el registro y deja constancia del motivo. No devuelve
// stock ni revierte los acumulados de la sesión.
func TestAnularVenta_SinReversa(t *testing.T) {
	f := newVentaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	lomo := seedProducto(f.productos, "Lomo saltado", 23.60, 10)

	ctx := context.Background()
	venta, err := f.svc.Crear(ctx, usuario, ventaReq(lomo, 2, pagoEfectivo(47.20)))
	require.NoError(t, err)

	p, err := f.productos.FindByID(ctx, lomo.ID)
	require.NoError(t, err)
	stockAntes := p.Stock
	efectivoAntes := sesion.TotalEfectivo

	resp, err := f.svc.Anular(ctx, uuid.MustParse(venta.ID), "cliente se retiró")
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, resp.Estado)
	require.NotNil(t, resp.Observaciones)
	assert.Contains(t, *resp.Observaciones, "Anulada: cliente se retiró")

	despues, err := f.productos.FindByID(ctx, lomo.ID)
	require.NoError(t, err)
	assert.True(t, stockAntes.Equal(despues.Stock))
	assert.True(t, efectivoAntes.Equal(sesion.TotalEfectivo))

	_, err = f.svc.Anular(ctx, uuid.MustParse(venta.ID), "otra vez")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrInvalidState))
}

func TestAnularVenta_NoExiste(t *testing.T) {
	f := newVentaFixture()

	_, err := f.svc.Anular(context.Background(), uuid.New(), "motivo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}
