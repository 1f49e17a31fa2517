package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error)
	Actual(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error)
	Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error)
	Listar(ctx context.Context, filter dto.CajaFilter) ([]dto.SesionCajaResponse, int64, error)
}

type cajaService struct {
	repo        repository.CajaRepository
	comandaRepo repository.ComandaRepository
}

func NewCajaService(repo repository.CajaRepository, comandaRepo repository.ComandaRepository) CajaService {
	return &cajaService{repo: repo, comandaRepo: comandaRepo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// The open-session scan and the insert run in one transaction with the scan
// under FOR UPDATE, so two concurrent aperturas for the same user cannot
// both succeed.

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	var sesion *model.SesionCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if existing, err := s.findAbiertaTx(ctx, tx, usuarioID); err == nil && existing != nil {
			return fmt.Errorf("ya existe una caja abierta para este usuario: %w", apierror.ErrConflict)
		}
		sesion = &model.SesionCaja{
			UsuarioID:     usuarioID,
			FechaApertura: time.Now(),
			MontoInicial:  req.MontoInicial,
			Estado:        model.CajaAbierta,
			Observaciones: req.Observaciones,
		}
		return s.repo.CreateSesion(ctx, tx, sesion)
	})
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, sesion)
}

func (s *cajaService) findAbiertaTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	if tx == nil {
		return s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	}
	return s.repo.FindSesionAbiertaPorUsuarioTx(ctx, tx, usuarioID)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Refuses while open comandas remain. Expected cash is opening float plus
// cash payments only; card and wallet money never sits in the drawer.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("no hay caja abierta: %w", apierror.ErrInvalidState)
	}

	abiertas, err := s.comandaRepo.CountAbiertasPorSesion(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	if abiertas > 0 {
		return nil, fmt.Errorf("hay %d comandas abiertas, ciérrelas o cancélelas antes: %w", abiertas, apierror.ErrConflict)
	}

	now := time.Now()
	esperado := sesion.MontoInicial.Add(sesion.TotalEfectivo)
	diferencia := req.MontoReal.Sub(esperado)
	montoReal := req.MontoReal

	sesion.FechaCierre = &now
	sesion.MontoEsperado = &esperado
	sesion.MontoReal = &montoReal
	sesion.Diferencia = &diferencia
	sesion.Estado = model.CajaCerrada
	if req.Observaciones != nil && *req.Observaciones != "" {
		nota := "Cierre: " + *req.Observaciones
		if sesion.Observaciones != nil && *sesion.Observaciones != "" {
			nota = *sesion.Observaciones + " | " + nota
		}
		sesion.Observaciones = &nota
	}

	if err := s.repo.UpdateSesion(ctx, nil, sesion); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, sesion)
}

// ── Actual ────────────────────────────────────────────────────────────────────
// No open session is not an error: the POS polls this endpoint and renders
// the idle state from a null payload.

func (s *cajaService) Actual(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.buildResponse(ctx, sesion)
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func (s *cajaService) Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, fmt.Errorf("sesión de caja no encontrada: %w", apierror.ErrNotFound)
	}

	resp, err := s.buildResponse(ctx, sesion)
	if err != nil {
		return nil, err
	}

	porTipo, err := s.repo.SumVentasPorTipo(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.repo.SumPagosPorMetodo(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	anuladas, _, err := s.repo.CountVentas(ctx, sesionID, model.VentaAnulada)
	if err != nil {
		return nil, err
	}

	esperado := sesion.MontoInicial.Add(sesion.TotalEfectivo)
	if sesion.MontoEsperado != nil {
		esperado = *sesion.MontoEsperado
	}

	return &dto.ResumenCajaResponse{
		Sesion:         *resp,
		VentasPorTipo:  porTipo,
		PagosPorMetodo: porMetodo,
		VentasAnuladas: anuladas,
		MontoEsperado:  esperado,
	}, nil
}

func (s *cajaService) Listar(ctx context.Context, filter dto.CajaFilter) ([]dto.SesionCajaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	sesiones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		resp, err := s.buildResponse(ctx, &sesiones[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *resp)
	}
	return out, total, nil
}

func (s *cajaService) buildResponse(ctx context.Context, sesion *model.SesionCaja) (*dto.SesionCajaResponse, error) {
	resp := &dto.SesionCajaResponse{
		ID:                 sesion.ID.String(),
		UsuarioID:          sesion.UsuarioID.String(),
		FechaApertura:      fmtFecha(sesion.FechaApertura),
		FechaCierre:        fmtFechaPtr(sesion.FechaCierre),
		MontoInicial:       sesion.MontoInicial,
		TotalEfectivo:      sesion.TotalEfectivo,
		TotalTarjeta:       sesion.TotalTarjeta,
		TotalYape:          sesion.TotalYape,
		TotalPlin:          sesion.TotalPlin,
		TotalTransferencia: sesion.TotalTransferencia,
		MontoEsperado:      sesion.MontoEsperado,
		MontoReal:          sesion.MontoReal,
		Diferencia:         sesion.Diferencia,
		Estado:             sesion.Estado,
		Observaciones:      sesion.Observaciones,
	}
	if sesion.Usuario != nil {
		resp.UsuarioNombre = sesion.Usuario.Nombre
	}

	count, total, err := s.repo.CountVentas(ctx, sesion.ID, model.VentaPagada)
	if err == nil {
		resp.VentasCount = count
		resp.VentasTotal = total
	}
	abiertas, err := s.comandaRepo.CountAbiertasPorSesion(ctx, sesion.ID)
	if err == nil {
		resp.ComandasAbiertas = abiertas
	}
	return resp, nil
}
