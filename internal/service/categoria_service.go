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

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error)
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nombre: req.Nombre, Color: req.Color, Orden: req.Orden, Activo: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("categoría no encontrada: %w", apierror.ErrNotFound)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Color != nil {
		c.Color = req.Color
	}
	if req.Orden != nil {
		c.Orden = *req.Orden
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

// Eliminar rejects while the category still holds active products.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("categoría no encontrada: %w", apierror.ErrNotFound)
	}
	count, err := s.repo.CountProductosActivos(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("la categoría tiene %d productos activos: %w", count, apierror.ErrConflict)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *categoriaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, categoriaToResponse(&categorias[i]))
	}
	return out, nil
}

func categoriaToResponse(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:     c.ID.String(),
		Nombre: c.Nombre,
		Color:  c.Color,
		Orden:  c.Orden,
		Activo: c.Activo,
	}
}
