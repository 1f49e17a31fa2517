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

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	BuscarPorDocumento(ctx context.Context, tipo, numero string) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, int64, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	// RUC clients invoice as companies; persons need at least a name.
	if req.TipoDocumento == model.DocRUC {
		if req.RazonSocial == nil || *req.RazonSocial == "" {
			return nil, fmt.Errorf("razón social requerida para RUC: %w", apierror.ErrValidation)
		}
	} else if req.Nombres == nil || *req.Nombres == "" {
		return nil, fmt.Errorf("nombres requeridos: %w", apierror.ErrValidation)
	}

	if existing, err := s.repo.FindByDocumento(ctx, req.TipoDocumento, req.NumeroDocumento); err == nil && existing.Activo {
		return nil, fmt.Errorf("el documento ya está registrado: %w", apierror.ErrConflict)
	}

	c := &model.Cliente{
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		Nombres:         req.Nombres,
		Apellidos:       req.Apellidos,
		RazonSocial:     req.RazonSocial,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Email:           req.Email,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente no encontrado: %w", apierror.ErrNotFound)
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) BuscarPorDocumento(ctx context.Context, tipo, numero string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByDocumento(ctx, tipo, numero)
	if err != nil {
		return nil, fmt.Errorf("cliente no encontrado: %w", apierror.ErrNotFound)
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente no encontrado: %w", apierror.ErrNotFound)
	}
	if req.Nombres != nil {
		c.Nombres = req.Nombres
	}
	if req.Apellidos != nil {
		c.Apellidos = req.Apellidos
	}
	if req.RazonSocial != nil {
		c.RazonSocial = req.RazonSocial
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("cliente no encontrado: %w", apierror.ErrNotFound)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	return out, total, nil
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:              c.ID.String(),
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		Nombres:         c.Nombres,
		Apellidos:       c.Apellidos,
		RazonSocial:     c.RazonSocial,
		NombreCompleto:  c.NombreCompleto(),
		Direccion:       c.Direccion,
		Telefono:        c.Telefono,
		Email:           c.Email,
		Activo:          c.Activo,
	}
}
