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

type cajaFixture struct {
	caja     *fakeCajaRepo
	comandas *fakeComandaRepo
	svc      service.CajaService
}

func newCajaFixture() *cajaFixture {
	f := &cajaFixture{
		caja:     newFakeCajaRepo(),
		comandas: newFakeComandaRepo(),
	}
	f.svc = service.NewCajaService(f.caja, f.comandas)
	return f
}

func strp(s string) *string { return &s }

func TestAbrirCaja(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()

	resp, err := f.svc.Abrir(context.Background(), usuario, dto.AbrirCajaRequest{
		MontoInicial:  decimal.NewFromInt(100),
		Observaciones: strp("Turno mañana"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CajaAbierta, resp.Estado)
	assert.Equal(t, "100.00", resp.MontoInicial.StringFixed(2))
	assert.Equal(t, usuario.String(), resp.UsuarioID)
}

func TestAbrirCaja_RechazaSegundaAbierta(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)

	_, err := f.svc.Abrir(context.Background(), usuario, dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrConflict))
	assert.Contains(t, err.Error(), "ya existe una caja abierta")
}

func TestAbrirCaja_OtroUsuarioNoInterfiere(t *testing.T) {
	f := newCajaFixture()
	seedSesionAbierta(f.caja, uuid.New(), 100)

	_, err := f.svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
}

func TestCerrarCaja_SinCajaAbierta(t *testing.T) {
	f := newCajaFixture()

	_, err := f.svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrInvalidState))
	assert.Contains(t, err.Error(), "no hay caja abierta")
}

func TestCerrarCaja_RechazaConComandasAbiertas(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)

	f.comandas.comandas[uuid.New()] = &model.Comanda{
		ID:           uuid.New(),
		Numero:       "CMD-000001",
		SesionCajaID: sesion.ID,
		Estado:       model.ComandaEnCocina,
	}

	_, err := f.svc.Cerrar(context.Background(), usuario, dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrConflict))
	assert.Contains(t, err.Error(), "comandas abiertas")
}

// El esperado solo suma el efectivo: tarjeta y billeteras nunca pasan por
// el cajón.
func TestCerrarCaja_EsperadoYDiferencia(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()
	sesion := seedSesionAbierta(f.caja, usuario, 100)
	sesion.Observaciones = strp("Turno mañana")

	ctx := context.Background()
	require.NoError(t, f.caja.SumarBucket(ctx, nil, sesion.ID, "total_efectivo", decimal.NewFromInt(50)))
	require.NoError(t, f.caja.SumarBucket(ctx, nil, sesion.ID, "total_tarjeta", decimal.NewFromInt(80)))

	resp, err := f.svc.Cerrar(ctx, usuario, dto.CerrarCajaRequest{
		MontoReal:     decimal.NewFromInt(140),
		Observaciones: strp("faltante en el arqueo"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.CajaCerrada, resp.Estado)
	require.NotNil(t, resp.FechaCierre)
	require.NotNil(t, resp.MontoEsperado)
	require.NotNil(t, resp.Diferencia)
	assert.Equal(t, "150.00", resp.MontoEsperado.StringFixed(2))
	assert.Equal(t, "140.00", resp.MontoReal.StringFixed(2))
	assert.Equal(t, "-10.00", resp.Diferencia.StringFixed(2))

	require.NotNil(t, resp.Observaciones)
	assert.Equal(t, "Turno mañana | Cierre: faltante en el arqueo", *resp.Observaciones)
}

func TestCerrarCaja_PermiteNuevaApertura(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()
	seedSesionAbierta(f.caja, usuario, 100)

	ctx := context.Background()
	_, err := f.svc.Cerrar(ctx, usuario, dto.CerrarCajaRequest{MontoReal: decimal.NewFromInt(100)})
	require.NoError(t, err)

	resp, err := f.svc.Abrir(ctx, usuario, dto.AbrirCajaRequest{MontoInicial: decimal.NewFromInt(200)})
	require.NoError(t, err)
	assert.Equal(t, "200.00", resp.MontoInicial.StringFixed(2))
}

// Sin sesión abierta el endpoint responde payload nulo, no error: el POS
// lo consulta en cada arranque de turno.
func TestCajaActual(t *testing.T) {
	f := newCajaFixture()
	usuario := uuid.New()

	resp, err := f.svc.Actual(context.Background(), usuario)
	require.NoError(t, err)
	assert.Nil(t, resp)

	sesion := seedSesionAbierta(f.caja, usuario, 80)
	resp, err = f.svc.Actual(context.Background(), usuario)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, sesion.ID.String(), resp.ID)
}
