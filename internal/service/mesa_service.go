package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

type MesaService interface {
	CrearZona(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error)
	ActualizarZona(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (*dto.ZonaResponse, error)
	EliminarZona(ctx context.Context, id uuid.UUID) error
	ListarZonas(ctx context.Context) ([]dto.ZonaResponse, error)

	Crear(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.MesaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.MesaFilter) ([]dto.MesaResponse, error)
}

type mesaService struct {
	repo        repository.MesaRepository
	zonaRepo    repository.ZonaRepository
	comandaRepo repository.ComandaRepository
}

func NewMesaService(repo repository.MesaRepository, zonaRepo repository.ZonaRepository, comandaRepo repository.ComandaRepository) MesaService {
	return &mesaService{repo: repo, zonaRepo: zonaRepo, comandaRepo: comandaRepo}
}

// ── Zonas ─────────────────────────────────────────────────────────────────────

func (s *mesaService) CrearZona(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error) {
	z := &model.Zona{Nombre: req.Nombre, Color: req.Color, Activo: true}
	if err := s.zonaRepo.Create(ctx, z); err != nil {
		return nil, err
	}
	resp := zonaToResponse(z)
	return &resp, nil
}

func (s *mesaService) ActualizarZona(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (*dto.ZonaResponse, error) {
	z, err := s.zonaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("zona no encontrada: %w", apierror.ErrNotFound)
	}
	if req.Nombre != nil {
		z.Nombre = *req.Nombre
	}
	if req.Color != nil {
		z.Color = req.Color
	}
	if err := s.zonaRepo.Update(ctx, z); err != nil {
		return nil, err
	}
	resp := zonaToResponse(z)
	return &resp, nil
}

func (s *mesaService) EliminarZona(ctx context.Context, id uuid.UUID) error {
	if _, err := s.zonaRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("zona no encontrada: %w", apierror.ErrNotFound)
	}
	count, err := s.zonaRepo.CountMesasActivas(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("la zona tiene %d mesas activas: %w", count, apierror.ErrConflict)
	}
	return s.zonaRepo.Desactivar(ctx, id)
}

func (s *mesaService) ListarZonas(ctx context.Context) ([]dto.ZonaResponse, error) {
	zonas, err := s.zonaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZonaResponse, 0, len(zonas))
	for i := range zonas {
		out = append(out, zonaToResponse(&zonas[i]))
	}
	return out, nil
}

// ── Mesas ─────────────────────────────────────────────────────────────────────

func (s *mesaService) Crear(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error) {
	m := &model.Mesa{
		Nombre:    req.Nombre,
		Capacidad: req.Capacidad,
		Estado:    model.MesaLibre,
		PosX:      req.PosX,
		PosY:      req.PosY,
		Forma:     "cuadrada",
		Activo:    true,
	}
	if m.Capacidad == 0 {
		m.Capacidad = 4
	}
	if req.Forma != nil {
		m.Forma = *req.Forma
	}
	if req.ZonaID != nil {
		zid, err := uuid.Parse(*req.ZonaID)
		if err != nil {
			return nil, fmt.Errorf("id_zona inválido: %w", apierror.ErrValidation)
		}
		if _, err := s.zonaRepo.FindByID(ctx, zid); err != nil {
			return nil, fmt.Errorf("zona no encontrada: %w", apierror.ErrNotFound)
		}
		m.ZonaID = &zid
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, m.ID)
}

func (s *mesaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mesa no encontrada: %w", apierror.ErrNotFound)
	}
	resp := s.mesaToResponse(ctx, m)
	return &resp, nil
}

func (s *mesaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mesa no encontrada: %w", apierror.ErrNotFound)
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if req.ZonaID != nil {
		zid, err := uuid.Parse(*req.ZonaID)
		if err != nil {
			return nil, fmt.Errorf("id_zona inválido: %w", apierror.ErrValidation)
		}
		if _, err := s.zonaRepo.FindByID(ctx, zid); err != nil {
			return nil, fmt.Errorf("zona no encontrada: %w", apierror.ErrNotFound)
		}
		m.ZonaID = &zid
	}
	if req.Capacidad != nil {
		m.Capacidad = *req.Capacidad
	}
	if req.PosX != nil {
		m.PosX = *req.PosX
	}
	if req.PosY != nil {
		m.PosY = *req.PosY
	}
	if req.Forma != nil {
		m.Forma = *req.Forma
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, m.ID)
}

// CambiarEstado is the manual override from the floor plan. Any state in
// the fixed set is accepted; occupancy bookkeeping stays with comandas.
func (s *mesaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.MesaResponse, error) {
	if !model.MesaEstadoValido(estado) {
		return nil, fmt.Errorf("estado de mesa inválido: %s: %w", estado, apierror.ErrValidation)
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("mesa no encontrada: %w", apierror.ErrNotFound)
	}
	if err := s.repo.UpdateEstado(ctx, nil, id, estado); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Eliminar rejects while the table still has a live order on it.
func (s *mesaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("mesa no encontrada: %w", apierror.ErrNotFound)
	}
	count, err := s.comandaRepo.CountActivasPorMesa(ctx, nil, id, uuid.Nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("la mesa tiene comandas activas: %w", apierror.ErrConflict)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *mesaService) Listar(ctx context.Context, filter dto.MesaFilter) ([]dto.MesaResponse, error) {
	mesas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		out = append(out, s.mesaToResponse(ctx, &mesas[i]))
	}
	return out, nil
}

func (s *mesaService) mesaToResponse(ctx context.Context, m *model.Mesa) dto.MesaResponse {
	resp := dto.MesaResponse{
		ID:        m.ID.String(),
		Nombre:    m.Nombre,
		Capacidad: m.Capacidad,
		Estado:    m.Estado,
		PosX:      m.PosX,
		PosY:      m.PosY,
		Forma:     m.Forma,
	}
	if m.ZonaID != nil {
		id := m.ZonaID.String()
		resp.ZonaID = &id
	}
	if m.Zona != nil {
		resp.ZonaNombre = &m.Zona.Nombre
	}

	count, err := s.comandaRepo.CountActivasPorMesa(ctx, nil, m.ID, uuid.Nil)
	if err == nil {
		resp.ComandasActivas = count
	}
	if count > 0 {
		if c, err := s.comandaRepo.FindActivaPorMesa(ctx, m.ID); err == nil {
			items := int64(0)
			for _, item := range c.Items {
				if item.Estado != model.ItemCancelado {
					items++
				}
			}
			resp.ComandaActual = &dto.ComandaResumen{
				ID:         c.ID.String(),
				Numero:     c.Numero,
				Total:      c.Total,
				Comensales: c.Comensales,
				ItemsCount: items,
				Apertura:   fmtFecha(c.FechaApertura),
			}
		}
	}
	return resp
}

func zonaToResponse(z *model.Zona) dto.ZonaResponse {
	return dto.ZonaResponse{
		ID:     z.ID.String(),
		Nombre: z.Nombre,
		Color:  z.Color,
		Activo: z.Activo,
	}
}
