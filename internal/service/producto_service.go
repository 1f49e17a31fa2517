package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, int64, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Codigo != nil && *req.Codigo != "" {
		if _, err := s.repo.FindByCodigo(ctx, *req.Codigo); err == nil {
			return nil, fmt.Errorf("el código ya está en uso: %w", apierror.ErrConflict)
		}
	}

	p := &model.Producto{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Costo:       req.Costo,
		Stock:       req.Stock,
		StockMinimo: req.StockMinimo,
		Disponible:  true,
		Activo:      true,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("id_categoria inválido: %w", apierror.ErrValidation)
		}
		if _, err := s.categoriaRepo.FindByID(ctx, cid); err != nil {
			return nil, fmt.Errorf("categoría no encontrada: %w", apierror.ErrNotFound)
		}
		p.CategoriaID = &cid
	}
	if req.UnidadMedida != nil && *req.UnidadMedida != "" {
		p.UnidadMedida = *req.UnidadMedida
	} else {
		p.UnidadMedida = "NIU"
	}
	if req.TiempoPreparacion != nil {
		p.TiempoPreparacion = *req.TiempoPreparacion
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, p.ID)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado: %w", apierror.ErrNotFound)
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado: %w", apierror.ErrNotFound)
	}

	if req.Codigo != nil && *req.Codigo != "" {
		if existing, err := s.repo.FindByCodigo(ctx, *req.Codigo); err == nil && existing.ID != p.ID {
			return nil, fmt.Errorf("el código ya está en uso: %w", apierror.ErrConflict)
		}
		p.Codigo = req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("id_categoria inválido: %w", apierror.ErrValidation)
		}
		if _, err := s.categoriaRepo.FindByID(ctx, cid); err != nil {
			return nil, fmt.Errorf("categoría no encontrada: %w", apierror.ErrNotFound)
		}
		p.CategoriaID = &cid
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.UnidadMedida != nil && *req.UnidadMedida != "" {
		p.UnidadMedida = *req.UnidadMedida
	}
	if req.TiempoPreparacion != nil {
		p.TiempoPreparacion = *req.TiempoPreparacion
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, p.ID)
}

// Eliminar is a soft delete: the product stays referenced by historical
// sales but disappears from the catalog.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("producto no encontrado: %w", apierror.ErrNotFound)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, total, nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("producto no encontrado: %w", apierror.ErrNotFound)
	}
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("delta no puede ser cero: %w", apierror.ErrValidation)
	}
	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:                p.ID.String(),
		Codigo:            p.Codigo,
		Nombre:            p.Nombre,
		Descripcion:       p.Descripcion,
		Precio:            p.Precio,
		Costo:             p.Costo,
		Stock:             p.Stock,
		StockMinimo:       p.StockMinimo,
		StockBajo:         p.Stock.LessThanOrEqual(p.StockMinimo) && p.StockMinimo.GreaterThan(decimal.Zero),
		UnidadMedida:      p.UnidadMedida,
		TiempoPreparacion: p.TiempoPreparacion,
		Disponible:        p.Disponible,
		Activo:            p.Activo,
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = &p.Categoria.Nombre
	}
	return resp
}
