package tests

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes. Every repo returns DB() == nil so runTx executes the
// transactional closure directly; the fakes guard their maps with mutexes
// so the correlativo stress test can hammer them from many goroutines.

// ── Producto ──────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.Codigo != nil && *p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakeProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = p.Stock.Add(delta)
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
	return nil
}

func (r *fakeProductoRepo) DescontarStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = p.Stock.Sub(cantidad)
	if p.Stock.IsNegative() {
		p.Stock = decimal.Zero
	}
	return nil
}

func (r *fakeProductoRepo) CountStockBajo(_ context.Context) (int64, error) { return 0, nil }

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

// ── Caja ──────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	mu       sync.Mutex
	sesiones map[uuid.UUID]*model.SesionCaja
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *fakeCajaRepo) CreateSesion(_ context.Context, _ *gorm.DB, s *model.SesionCaja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCajaRepo) findAbierta(usuarioID uuid.UUID) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.UsuarioID == usuarioID && s.Estado == model.CajaAbierta {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) FindSesionAbiertaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAbierta(usuarioID)
}

func (r *fakeCajaRepo) FindSesionAbiertaPorUsuarioTx(_ context.Context, _ *gorm.DB, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAbierta(usuarioID)
}

func (r *fakeCajaRepo) UpdateSesion(_ context.Context, _ *gorm.DB, s *model.SesionCaja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) SumarBucket(_ context.Context, _ *gorm.DB, sesionID uuid.UUID, columna string, monto decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sesiones[sesionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch columna {
	case "total_efectivo":
		s.TotalEfectivo = s.TotalEfectivo.Add(monto)
	case "total_tarjeta":
		s.TotalTarjeta = s.TotalTarjeta.Add(monto)
	case "total_yape":
		s.TotalYape = s.TotalYape.Add(monto)
	case "total_plin":
		s.TotalPlin = s.TotalPlin.Add(monto)
	case "total_transferencia":
		s.TotalTransferencia = s.TotalTransferencia.Add(monto)
	}
	return nil
}

func (r *fakeCajaRepo) List(_ context.Context, _ dto.CajaFilter) ([]model.SesionCaja, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.SesionCaja, 0, len(r.sesiones))
	for _, s := range r.sesiones {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCajaRepo) SumVentasPorTipo(_ context.Context, _ uuid.UUID) ([]dto.VentasPorTipo, error) {
	return nil, nil
}

func (r *fakeCajaRepo) SumPagosPorMetodo(_ context.Context, _ uuid.UUID) ([]dto.PagosPorMetodo, error) {
	return nil, nil
}

func (r *fakeCajaRepo) CountVentas(_ context.Context, _ uuid.UUID, _ string) (int64, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── Serie ─────────────────────────────────────────────────────────────────────

type fakeSerieRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	activas  map[string]*model.SerieComprobante
}

func newFakeSerieRepo() *fakeSerieRepo {
	return &fakeSerieRepo{
		counters: make(map[string]int64),
		activas:  make(map[string]*model.SerieComprobante),
	}
}

func (r *fakeSerieRepo) NextCorrelativoTx(_ context.Context, _ *gorm.DB, tipo, serie string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := tipo + "|" + serie
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeSerieRepo) FindActiva(_ context.Context, tipo string) (*model.SerieComprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.activas[tipo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sc, nil
}

func (r *fakeSerieRepo) List(_ context.Context) ([]model.SerieComprobante, error) { return nil, nil }

var _ repository.SerieRepository = (*fakeSerieRepo)(nil)

// ── Mesa ──────────────────────────────────────────────────────────────────────

type fakeMesaRepo struct {
	mu    sync.Mutex
	mesas map[uuid.UUID]*model.Mesa
}

func newFakeMesaRepo() *fakeMesaRepo {
	return &fakeMesaRepo{mesas: make(map[uuid.UUID]*model.Mesa)}
}

func (r *fakeMesaRepo) Create(_ context.Context, m *model.Mesa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mesas[m.ID] = m
	return nil
}

func (r *fakeMesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMesaRepo) Update(_ context.Context, m *model.Mesa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mesas[m.ID] = m
	return nil
}

func (r *fakeMesaRepo) UpdateEstado(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mesas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Estado = estado
	return nil
}

func (r *fakeMesaRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.mesas[id]; ok {
		m.Activo = false
	}
	return nil
}

func (r *fakeMesaRepo) List(_ context.Context, _ dto.MesaFilter) ([]model.Mesa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Mesa, 0, len(r.mesas))
	for _, m := range r.mesas {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMesaRepo) CountOcupadas(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ocupadas int64
	for _, m := range r.mesas {
		if m.Estado == model.MesaOcupada {
			ocupadas++
		}
	}
	return ocupadas, int64(len(r.mesas)), nil
}

var _ repository.MesaRepository = (*fakeMesaRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClienteRepo) FindByDocumento(_ context.Context, tipo, numero string) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clientes {
		if c.TipoDocumento == tipo && c.NumeroDocumento == numero {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

func (r *fakeClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

// ── Comanda ───────────────────────────────────────────────────────────────────

type fakeComandaRepo struct {
	mu        sync.Mutex
	comandas  map[uuid.UUID]*model.Comanda
	items     map[uuid.UUID]*model.ComandaItem
	itemOrder []uuid.UUID
}

func newFakeComandaRepo() *fakeComandaRepo {
	return &fakeComandaRepo{
		comandas: make(map[uuid.UUID]*model.Comanda),
		items:    make(map[uuid.UUID]*model.ComandaItem),
	}
}

func (r *fakeComandaRepo) Create(_ context.Context, _ *gorm.DB, c *model.Comanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.comandas[c.ID] = c
	return nil
}

// itemsDe rebuilds the item slice from the canonical item map, preserving
// insertion order. Callers must hold the mutex.
func (r *fakeComandaRepo) itemsDe(comandaID uuid.UUID) []model.ComandaItem {
	out := []model.ComandaItem{}
	for _, id := range r.itemOrder {
		item := r.items[id]
		if item.ComandaID == comandaID {
			out = append(out, *item)
		}
	}
	return out
}

func (r *fakeComandaRepo) find(id uuid.UUID) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	clone.Items = r.itemsDe(id)
	return &clone, nil
}

func (r *fakeComandaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *fakeComandaRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *fakeComandaRepo) Update(_ context.Context, _ *gorm.DB, c *model.Comanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *c
	stored.Items = nil
	r.comandas[c.ID] = &stored
	return nil
}

func (r *fakeComandaRepo) List(_ context.Context, _ dto.ComandaFilter) ([]model.Comanda, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Comanda, 0, len(r.comandas))
	for id := range r.comandas {
		c, _ := r.find(id)
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeComandaRepo) CreateItem(_ context.Context, _ *gorm.DB, item *model.ComandaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	r.items[item.ID] = &stored
	r.itemOrder = append(r.itemOrder, item.ID)
	return nil
}

func (r *fakeComandaRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*model.ComandaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeComandaRepo) UpdateItem(_ context.Context, item *model.ComandaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeComandaRepo) EnviarItemsPendientes(_ context.Context, _ *gorm.DB, comandaID uuid.UUID, hora time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.ComandaID == comandaID && item.Estado == model.ItemPendiente {
			item.Estado = model.ItemEnviado
			h := hora
			item.HoraEnvioCocina = &h
			n++
		}
	}
	return n, nil
}

func (r *fakeComandaRepo) ItemsEnCocina(_ context.Context) ([]model.ComandaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.ComandaItem{}
	for _, id := range r.itemOrder {
		item := r.items[id]
		c, ok := r.comandas[item.ComandaID]
		if !ok || model.ComandaEstadoTerminal(c.Estado) {
			continue
		}
		switch item.Estado {
		case model.ItemEnviado, model.ItemPreparando, model.ItemListo:
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeComandaRepo) CountAbiertasPorSesion(_ context.Context, sesionID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comandas {
		if c.SesionCajaID == sesionID && !model.ComandaEstadoTerminal(c.Estado) {
			n++
		}
	}
	return n, nil
}

func (r *fakeComandaRepo) CountAbiertas(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comandas {
		if !model.ComandaEstadoTerminal(c.Estado) {
			n++
		}
	}
	return n, nil
}

func (r *fakeComandaRepo) CountActivasPorMesa(_ context.Context, _ *gorm.DB, mesaID uuid.UUID, excluirComanda uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comandas {
		if c.ID == excluirComanda {
			continue
		}
		if c.MesaID != nil && *c.MesaID == mesaID && !model.ComandaEstadoTerminal(c.Estado) {
			n++
		}
	}
	return n, nil
}

func (r *fakeComandaRepo) FindActivaPorMesa(_ context.Context, mesaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comandas {
		if c.MesaID != nil && *c.MesaID == mesaID && !model.ComandaEstadoTerminal(c.Estado) {
			return r.find(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeComandaRepo) FindActivaPorMesaTx(_ context.Context, _ *gorm.DB, mesaID, sesionID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reciente *model.Comanda
	for _, c := range r.comandas {
		if c.MesaID == nil || *c.MesaID != mesaID || c.SesionCajaID != sesionID {
			continue
		}
		if model.ComandaEstadoTerminal(c.Estado) {
			continue
		}
		if reciente == nil || c.FechaApertura.After(reciente.FechaApertura) {
			reciente = c
		}
	}
	if reciente == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.find(reciente.ID)
}

func (r *fakeComandaRepo) DB() *gorm.DB { return nil }

var _ repository.ComandaRepository = (*fakeComandaRepo)(nil)

// ── Venta ─────────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	mu     sync.Mutex
	ventas map[uuid.UUID]*model.Venta
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	for i := range v.Pagos {
		if v.Pagos[i].ID == uuid.Nil {
			v.Pagos[i].ID = uuid.New()
		}
		v.Pagos[i].VentaID = v.ID
	}
	stored := *v
	r.ventas[v.ID] = &stored
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVentaRepo) Update(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *v
	r.ventas[v.ID] = &stored
	return nil
}

func (r *fakeVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVentaRepo) VentasDelDia(_ context.Context) (int64, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}

func (r *fakeVentaRepo) TopProductosDelDia(_ context.Context, _ int) ([]dto.ProductoVendido, error) {
	return nil, nil
}

func (r *fakeVentaRepo) PagosDelDiaPorMetodo(_ context.Context) ([]dto.PagosPorMetodo, error) {
	return nil, nil
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

// ── Configuración ─────────────────────────────────────────────────────────────

type fakeConfigService struct {
	valores map[string]string
}

func newFakeConfigService() *fakeConfigService {
	return &fakeConfigService{valores: make(map[string]string)}
}

func (s *fakeConfigService) Listar(_ context.Context) (map[string][]dto.ConfiguracionResponse, error) {
	return nil, nil
}

func (s *fakeConfigService) Actualizar(_ context.Context, _ string, valores map[string]string) error {
	for k, v := range valores {
		s.valores[k] = v
	}
	return nil
}

func (s *fakeConfigService) GetInt(_ context.Context, clave string, def int) int {
	if v, ok := s.valores[clave]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (s *fakeConfigService) GetString(_ context.Context, clave string, def string) string {
	if v, ok := s.valores[clave]; ok {
		return v
	}
	return def
}

var _ service.ConfiguracionService = (*fakeConfigService)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProducto(repo *fakeProductoRepo, nombre string, precio float64, stock int64) *model.Producto {
	p := &model.Producto{
		ID:           uuid.New(),
		Nombre:       nombre,
		Precio:       decimal.NewFromFloat(precio),
		Stock:        decimal.NewFromInt(stock),
		UnidadMedida: "NIU",
		Disponible:   true,
		Activo:       true,
	}
	repo.productos[p.ID] = p
	return p
}

func seedSesionAbierta(repo *fakeCajaRepo, usuarioID uuid.UUID, montoInicial float64) *model.SesionCaja {
	s := &model.SesionCaja{
		ID:            uuid.New(),
		UsuarioID:     usuarioID,
		FechaApertura: time.Now(),
		MontoInicial:  decimal.NewFromFloat(montoInicial),
		Estado:        model.CajaAbierta,
	}
	repo.sesiones[s.ID] = s
	return s
}

func seedMesa(repo *fakeMesaRepo, nombre string) *model.Mesa {
	m := &model.Mesa{
		ID:        uuid.New(),
		Nombre:    nombre,
		Capacidad: 4,
		Estado:    model.MesaLibre,
		Activo:    true,
	}
	repo.mesas[m.ID] = m
	return m
}
