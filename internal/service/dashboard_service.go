package service

import (
	"context"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

type DashboardService interface {
	Resumen(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ventaRepo    repository.VentaRepository
	comandaRepo  repository.ComandaRepository
	mesaRepo     repository.MesaRepository
	productoRepo repository.ProductoRepository
}

func NewDashboardService(
	ventaRepo repository.VentaRepository,
	comandaRepo repository.ComandaRepository,
	mesaRepo repository.MesaRepository,
	productoRepo repository.ProductoRepository,
) DashboardService {
	return &dashboardService{
		ventaRepo:    ventaRepo,
		comandaRepo:  comandaRepo,
		mesaRepo:     mesaRepo,
		productoRepo: productoRepo,
	}
}

func (s *dashboardService) Resumen(ctx context.Context) (*dto.DashboardResponse, error) {
	ventas, totalHoy, err := s.ventaRepo.VentasDelDia(ctx)
	if err != nil {
		return nil, err
	}
	comandas, err := s.comandaRepo.CountAbiertas(ctx)
	if err != nil {
		return nil, err
	}
	ocupadas, mesas, err := s.mesaRepo.CountOcupadas(ctx)
	if err != nil {
		return nil, err
	}
	stockBajo, err := s.productoRepo.CountStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.ventaRepo.TopProductosDelDia(ctx, 5)
	if err != nil {
		return nil, err
	}
	pagos, err := s.ventaRepo.PagosDelDiaPorMetodo(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		VentasHoy:        ventas,
		TotalHoy:         totalHoy,
		ComandasAbiertas: comandas,
		MesasOcupadas:    ocupadas,
		MesasTotal:       mesas,
		StockBajo:        stockBajo,
		TopProductos:     top,
		PagosPorMetodo:   pagos,
	}, nil
}
