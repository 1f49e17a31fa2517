package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

type ComandaService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearComandaRequest) (*dto.ComandaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarComandaRequest) (*dto.ComandaResponse, error)
	AgregarItems(ctx context.Context, id uuid.UUID, items []dto.ItemComandaRequest) (*dto.ComandaResponse, error)
	EnviarCocina(ctx context.Context, id uuid.UUID) (*dto.EnviarCocinaResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.ComandaResponse, error)
	CambiarEstadoItem(ctx context.Context, itemID uuid.UUID, estado string) (*dto.ComandaResponse, error)
	Listar(ctx context.Context, filter dto.ComandaFilter) ([]dto.ComandaResponse, int64, error)
	Cocina(ctx context.Context) (*dto.CocinaResponse, error)
}

type comandaService struct {
	repo         repository.ComandaRepository
	productoRepo repository.ProductoRepository
	mesaRepo     repository.MesaRepository
	cajaRepo     repository.CajaRepository
	serieRepo    repository.SerieRepository
	cfg          ConfiguracionService
}

func NewComandaService(
	repo repository.ComandaRepository,
	productoRepo repository.ProductoRepository,
	mesaRepo repository.MesaRepository,
	cajaRepo repository.CajaRepository,
	serieRepo repository.SerieRepository,
	cfg ConfiguracionService,
) ComandaService {
	return &comandaService{
		repo:         repo,
		productoRepo: productoRepo,
		mesaRepo:     mesaRepo,
		cajaRepo:     cajaRepo,
		serieRepo:    serieRepo,
		cfg:          cfg,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Numbering draws from the same locked counter table as fiscal series,
// under tipo COMANDA / serie CMD.

func (s *comandaService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearComandaRequest) (*dto.ComandaResponse, error) {
	sesion, err := s.cajaRepo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("no hay caja abierta: %w", apierror.ErrConflict)
	}

	tipoServicio := req.TipoServicio
	if tipoServicio == "" {
		tipoServicio = model.ServicioMesa
	}

	var mesa *model.Mesa
	if tipoServicio == model.ServicioMesa {
		if req.MesaID == nil {
			return nil, fmt.Errorf("id_mesa requerido para servicio en mesa: %w", apierror.ErrValidation)
		}
		mid, err := uuid.Parse(*req.MesaID)
		if err != nil {
			return nil, fmt.Errorf("id_mesa inválido: %w", apierror.ErrValidation)
		}
		mesa, err = s.mesaRepo.FindByID(ctx, mid)
		if err != nil || !mesa.Activo {
			return nil, fmt.Errorf("mesa no encontrada: %w", apierror.ErrNotFound)
		}
	}

	resolved, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	comensales := req.Comensales
	if comensales < 1 {
		comensales = 1
	}

	now := time.Now()
	var comanda *model.Comanda
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.serieRepo.NextCorrelativoTx(ctx, tx, model.TipoComanda, model.SerieComanda)
		if err != nil {
			return err
		}

		comanda = &model.Comanda{
			Numero:        fmt.Sprintf("CMD-%06d", num),
			UsuarioID:     usuarioID,
			SesionCajaID:  sesion.ID,
			TipoServicio:  tipoServicio,
			Comensales:    comensales,
			Estado:        model.ComandaAbierta,
			Notas:         req.Notas,
			FechaApertura: now,
		}
		if mesa != nil {
			comanda.MesaID = &mesa.ID
		}
		if err := s.repo.Create(ctx, tx, comanda); err != nil {
			return err
		}

		for _, r := range resolved {
			item := &model.ComandaItem{
				ComandaID:      comanda.ID,
				ProductoID:     r.productoID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
				Notas:          r.notas,
				Estado:         model.ItemPendiente,
				HoraPedido:     now,
			}
			if err := s.repo.CreateItem(ctx, tx, item); err != nil {
				return err
			}
			comanda.Items = append(comanda.Items, *item)
		}

		recalcularTotales(comanda)
		if err := s.repo.Update(ctx, tx, comanda); err != nil {
			return err
		}

		if mesa != nil {
			return s.mesaRepo.UpdateEstado(ctx, tx, mesa.ID, model.MesaOcupada)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, comanda.ID)
}

type itemResuelto struct {
	productoID uuid.UUID
	cantidad   decimal.Decimal
	precio     decimal.Decimal
	subtotal   decimal.Decimal
	notas      *string
}

func (s *comandaService) resolverItems(ctx context.Context, items []dto.ItemComandaRequest) ([]itemResuelto, error) {
	out := make([]itemResuelto, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("id_producto inválido: %w", apierror.ErrValidation)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado: %w", item.ProductoID, apierror.ErrNotFound)
		}
		if !p.Activo || !p.Disponible {
			return nil, fmt.Errorf("producto %s no disponible: %w", p.Nombre, apierror.ErrValidation)
		}
		precio := p.Precio
		if item.PrecioUnitario != nil {
			precio = *item.PrecioUnitario
		}
		out = append(out, itemResuelto{
			productoID: pid,
			cantidad:   item.Cantidad,
			precio:     precio,
			subtotal:   item.Cantidad.Mul(precio).Round(2),
			notas:      item.Notas,
		})
	}
	return out, nil
}

// recalcularTotales rebuilds the persisted totals from non-cancelled items.
// The gross total carries the IGV inside; the split is extracted from it.
func recalcularTotales(c *model.Comanda) {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Estado == model.ItemCancelado {
			continue
		}
		total = total.Add(item.Subtotal)
	}
	c.Total = total.Round(2)
	c.Subtotal, c.IGV = model.ExtraerIGV(c.Total)
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *comandaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	resp := comandaToResponse(c)
	return &resp, nil
}

func (s *comandaService) Listar(ctx context.Context, filter dto.ComandaFilter) ([]dto.ComandaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	comandas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		out = append(out, comandaToResponse(&comandas[i]))
	}
	return out, total, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func (s *comandaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarComandaRequest) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if model.ComandaEstadoTerminal(c.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", c.Estado, apierror.ErrInvalidState)
	}
	if req.Comensales != nil {
		c.Comensales = *req.Comensales
	}
	if req.Notas != nil {
		c.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, nil, c); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// ── AgregarItems ──────────────────────────────────────────────────────────────

func (s *comandaService) AgregarItems(ctx context.Context, id uuid.UUID, items []dto.ItemComandaRequest) (*dto.ComandaResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("items requeridos: %w", apierror.ErrValidation)
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if model.ComandaEstadoTerminal(c.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", c.Estado, apierror.ErrInvalidState)
	}

	resolved, err := s.resolverItems(ctx, items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, r := range resolved {
			item := &model.ComandaItem{
				ComandaID:      c.ID,
				ProductoID:     r.productoID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
				Notas:          r.notas,
				Estado:         model.ItemPendiente,
				HoraPedido:     now,
			}
			if err := s.repo.CreateItem(ctx, tx, item); err != nil {
				return err
			}
			c.Items = append(c.Items, *item)
		}
		recalcularTotales(c)
		return s.repo.Update(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// ── EnviarCocina ──────────────────────────────────────────────────────────────
// Idempotent: only pending items move; a second call finds none and
// reports zero without error.

func (s *comandaService) EnviarCocina(ctx context.Context, id uuid.UUID) (*dto.EnviarCocinaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if model.ComandaEstadoTerminal(c.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", c.Estado, apierror.ErrInvalidState)
	}

	var enviados int64
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.repo.EnviarItemsPendientes(ctx, tx, c.ID, time.Now())
		if err != nil {
			return err
		}
		enviados = n
		if n > 0 && c.Estado == model.ComandaAbierta {
			c.Estado = model.ComandaEnCocina
			return s.repo.Update(ctx, tx, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.EnviarCocinaResponse{ItemsEnviados: enviados}, nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// Terminal transitions stamp the close time and free the table, but only
// when no other live comanda still points at it.

func (s *comandaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.ComandaResponse, error) {
	if !model.ComandaEstadoValido(estado) {
		return nil, fmt.Errorf("estado de comanda inválido: %s: %w", estado, apierror.ErrValidation)
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if model.ComandaEstadoTerminal(c.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", c.Estado, apierror.ErrInvalidState)
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c.Estado = estado
		if model.ComandaEstadoTerminal(estado) {
			now := time.Now()
			c.FechaCierre = &now
		}
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}
		if model.ComandaEstadoTerminal(estado) && c.MesaID != nil {
			return s.liberarMesaSiCorresponde(ctx, tx, *c.MesaID, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *comandaService) liberarMesaSiCorresponde(ctx context.Context, tx *gorm.DB, mesaID, comandaID uuid.UUID) error {
	otras, err := s.repo.CountActivasPorMesa(ctx, tx, mesaID, comandaID)
	if err != nil {
		return err
	}
	if otras > 0 {
		return nil
	}
	return s.mesaRepo.UpdateEstado(ctx, tx, mesaID, model.MesaLibre)
}

// ── CambiarEstadoItem ─────────────────────────────────────────────────────────
// Any member of the item-state set is accepted; milestones stamp their
// timestamps. Cancelling an item recomputes the order totals.

func (s *comandaService) CambiarEstadoItem(ctx context.Context, itemID uuid.UUID, estado string) (*dto.ComandaResponse, error) {
	if !model.ItemEstadoValido(estado) {
		return nil, fmt.Errorf("estado de item inválido: %s: %w", estado, apierror.ErrValidation)
	}
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("item no encontrado: %w", apierror.ErrNotFound)
	}
	c, err := s.repo.FindByID(ctx, item.ComandaID)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if model.ComandaEstadoTerminal(c.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", c.Estado, apierror.ErrInvalidState)
	}

	now := time.Now()
	item.Estado = estado
	switch estado {
	case model.ItemEnviado:
		if item.HoraEnvioCocina == nil {
			item.HoraEnvioCocina = &now
		}
	case model.ItemListo:
		item.HoraListo = &now
	case model.ItemEntregado:
		item.HoraEntrega = &now
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if estado == model.ItemCancelado {
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i].Estado = model.ItemCancelado
			}
		}
		recalcularTotales(c)
		if err := s.repo.Update(ctx, nil, c); err != nil {
			return nil, err
		}
	}
	return s.Obtener(ctx, c.ID)
}

// ── Cocina ────────────────────────────────────────────────────────────────────
// Kitchen display feed: every in-flight item across live orders, grouped
// by state, flagged when it has been waiting longer than the threshold.

func (s *comandaService) Cocina(ctx context.Context) (*dto.CocinaResponse, error) {
	items, err := s.repo.ItemsEnCocina(ctx)
	if err != nil {
		return nil, err
	}
	alerta := TiempoAlertaKDS(ctx, s.cfg)
	now := time.Now()

	// Resolve comanda headers once per order, not per item.
	headers := make(map[uuid.UUID]*model.Comanda)
	resp := &dto.CocinaResponse{
		Enviados:     []dto.CocinaItem{},
		Preparando:   []dto.CocinaItem{},
		Listos:       []dto.CocinaItem{},
		TiempoAlerta: alerta,
	}

	for i := range items {
		item := &items[i]
		header, ok := headers[item.ComandaID]
		if !ok {
			header, err = s.repo.FindByID(ctx, item.ComandaID)
			if err != nil {
				continue
			}
			headers[item.ComandaID] = header
		}

		ci := dto.CocinaItem{
			ID:            item.ID.String(),
			ComandaID:     item.ComandaID.String(),
			ComandaNumero: header.Numero,
			TipoServicio:  header.TipoServicio,
			Cantidad:      item.Cantidad,
			Notas:         item.Notas,
			Estado:        item.Estado,
			HoraEnvio:     fmtFechaPtr(item.HoraEnvioCocina),
		}
		if header.Mesa != nil {
			ci.MesaNombre = &header.Mesa.Nombre
		}
		if item.Producto != nil {
			ci.ProductoNombre = item.Producto.Nombre
		}
		if item.HoraEnvioCocina != nil {
			ci.MinutosTranscurridos = int(now.Sub(*item.HoraEnvioCocina).Minutes())
			ci.Alerta = ci.MinutosTranscurridos >= alerta
		}

		switch item.Estado {
		case model.ItemEnviado:
			resp.Enviados = append(resp.Enviados, ci)
		case model.ItemPreparando:
			resp.Preparando = append(resp.Preparando, ci)
		case model.ItemListo:
			resp.Listos = append(resp.Listos, ci)
		}
	}
	return resp, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func comandaToResponse(c *model.Comanda) dto.ComandaResponse {
	resp := dto.ComandaResponse{
		ID:            c.ID.String(),
		Numero:        c.Numero,
		UsuarioID:     c.UsuarioID.String(),
		SesionCajaID:  c.SesionCajaID.String(),
		TipoServicio:  c.TipoServicio,
		Comensales:    c.Comensales,
		Estado:        c.Estado,
		Subtotal:      c.Subtotal,
		IGV:           c.IGV,
		Total:         c.Total,
		Notas:         c.Notas,
		FechaApertura: fmtFecha(c.FechaApertura),
		FechaCierre:   fmtFechaPtr(c.FechaCierre),
		Items:         make([]dto.ComandaItemResponse, 0, len(c.Items)),
	}
	if c.MesaID != nil {
		id := c.MesaID.String()
		resp.MesaID = &id
	}
	if c.Mesa != nil {
		resp.MesaNombre = &c.Mesa.Nombre
	}
	if c.Usuario != nil {
		resp.UsuarioNombre = c.Usuario.Nombre
	}
	if c.VentaID != nil {
		id := c.VentaID.String()
		resp.VentaID = &id
	}
	for i := range c.Items {
		item := &c.Items[i]
		ir := dto.ComandaItemResponse{
			ID:             item.ID.String(),
			ProductoID:     item.ProductoID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			Notas:          item.Notas,
			Estado:         item.Estado,
			HoraPedido:     fmtFecha(item.HoraPedido),
			HoraEnvio:      fmtFechaPtr(item.HoraEnvioCocina),
			HoraListo:      fmtFechaPtr(item.HoraListo),
			HoraEntrega:    fmtFechaPtr(item.HoraEntrega),
		}
		if item.Producto != nil {
			ir.ProductoNombre = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
