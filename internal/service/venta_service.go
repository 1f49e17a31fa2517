package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
	"github.com/CristopherG19/app-restaurante-cgch/internal/worker"
)

// boletaClienteUmbral: boletas at or above this total must identify the
// buyer (SUNAT rule).
var boletaClienteUmbral = decimal.NewFromInt(700)

type VentaService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	CrearDesdeComanda(ctx context.Context, usuarioID uuid.UUID, req dto.VentaDesdeComandaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, int64, error)
	Ticket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	cajaRepo     repository.CajaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	comandaRepo  repository.ComandaRepository
	mesaRepo     repository.MesaRepository
	serieRepo    repository.SerieRepository
	cfg          ConfiguracionService
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	comandaRepo repository.ComandaRepository,
	mesaRepo repository.MesaRepository,
	serieRepo repository.SerieRepository,
	cfg ConfiguracionService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		cajaRepo:     cajaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		comandaRepo:  comandaRepo,
		mesaRepo:     mesaRepo,
		serieRepo:    serieRepo,
		cfg:          cfg,
		dispatcher:   dispatcher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *ventaService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	return s.crearVenta(ctx, usuarioID, req, nil)
}

// crearVenta is the single settlement path. Everything that must hold or
// fail together (correlativo, venta + detalles + pagos, buckets, stock,
// comanda closure, table release) runs in one transaction:
//   1. validate open session
//   2. resolve tipo de comprobante and cliente rules
//   3. resolve items (price snapshot, line totals)
//   4. validate payment sufficiency
//   5. BEGIN TX: lock serie row, draw correlativo
//   6. create venta + detalles + pagos
//   7. accumulate payment buckets on the session
//   8. decrement stock (clamped at zero)
//   9. close the source comanda, if any, exactly once
//  10. release the table when no other live comanda holds it
//  11. COMMIT; then enqueue the CPE job (async, best-effort)
func (s *ventaService) crearVenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest, comandaID *uuid.UUID) (*dto.VentaResponse, error) {
	sesion, err := s.cajaRepo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("no hay caja abierta: %w", apierror.ErrConflict)
	}

	tipo := req.TipoComprobante
	if tipo == "" {
		tipo = model.TipoNotaVenta
	}
	if !model.TipoComprobanteValido(tipo) {
		return nil, fmt.Errorf("tipo de comprobante inválido: %w", apierror.ErrValidation)
	}

	var cliente *model.Cliente
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("id_cliente inválido: %w", apierror.ErrValidation)
		}
		cliente, err = s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("cliente no encontrado: %w", apierror.ErrNotFound)
		}
	}
	if tipo == model.TipoFactura && cliente == nil {
		return nil, fmt.Errorf("la factura requiere un cliente: %w", apierror.ErrValidation)
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("items requeridos: %w", apierror.ErrValidation)
	}

	// Resolve items outside the transaction; only the mutations go inside.
	type detalleResuelto struct {
		producto *model.Producto
		req      dto.ItemVentaRequest
		precio   decimal.Decimal
		total    decimal.Decimal
	}
	resolved := make([]detalleResuelto, 0, len(req.Items))
	totalBruto := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("id_producto inválido: %w", apierror.ErrValidation)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado: %w", item.ProductoID, apierror.ErrNotFound)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s inactivo: %w", p.Nombre, apierror.ErrValidation)
		}
		precio := p.Precio
		if item.PrecioUnitario != nil {
			precio = *item.PrecioUnitario
		}
		lineTotal := item.Cantidad.Mul(precio).Sub(item.Descuento).Round(2)
		if lineTotal.IsNegative() {
			return nil, fmt.Errorf("descuento mayor que el importe en %s: %w", p.Nombre, apierror.ErrValidation)
		}
		totalBruto = totalBruto.Add(lineTotal)
		resolved = append(resolved, detalleResuelto{producto: p, req: item, precio: precio, total: lineTotal})
	}

	if req.Descuento.GreaterThan(totalBruto) {
		return nil, fmt.Errorf("descuento mayor que el total: %w", apierror.ErrValidation)
	}
	total := totalBruto.Sub(req.Descuento).Round(2)
	subtotal, igv := model.ExtraerIGV(total)

	if tipo == model.TipoBoleta && cliente == nil && total.GreaterThanOrEqual(boletaClienteUmbral) {
		return nil, fmt.Errorf("boleta desde S/ 700.00 requiere identificar al cliente: %w", apierror.ErrValidation)
	}

	// Los pagos parciales se aceptan y persisten; la venta solo se
	// promueve a pagada cuando cubren el total.
	estado := model.VentaPendiente
	totalPagos := decimal.Zero
	for _, pago := range req.Pagos {
		totalPagos = totalPagos.Add(pago.Monto)
	}
	if len(req.Pagos) > 0 && totalPagos.GreaterThanOrEqual(total) {
		estado = model.VentaPagada
	}

	tipoServicio := req.TipoServicio
	if tipoServicio == "" {
		tipoServicio = model.ServicioLlevar
	}

	now := time.Now()
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		serie := model.SerieFallback
		if sc, err := s.serieRepo.FindActiva(ctx, tipo); err == nil {
			serie = sc.Serie
		}
		numero, err := s.serieRepo.NextCorrelativoTx(ctx, tx, tipo, serie)
		if err != nil {
			return err
		}

		venta = model.Venta{
			Serie:           serie,
			Numero:          numero,
			TipoComprobante: tipo,
			UsuarioID:       usuarioID,
			SesionCajaID:    sesion.ID,
			TipoServicio:    tipoServicio,
			Subtotal:        subtotal,
			IGV:             igv,
			Descuento:       req.Descuento,
			Total:           total,
			Estado:          estado,
			Observaciones:   req.Observaciones,
			FechaEmision:    now,
		}
		if cliente != nil {
			venta.ClienteID = &cliente.ID
		}
		if req.MesaID != nil {
			if mid, err := uuid.Parse(*req.MesaID); err == nil {
				venta.MesaID = &mid
			}
		}

		for _, r := range resolved {
			lineSubtotal, lineIGV := model.ExtraerIGV(r.total)
			codigo := ""
			if r.producto.Codigo != nil {
				codigo = *r.producto.Codigo
			}
			venta.Detalles = append(venta.Detalles, model.VentaDetalle{
				ProductoID:     r.producto.ID,
				CodigoProducto: codigo,
				Descripcion:    r.producto.Nombre,
				Cantidad:       r.req.Cantidad,
				Unidad:         r.producto.UnidadMedida,
				PrecioUnitario: r.precio,
				Descuento:      r.req.Descuento,
				Subtotal:       lineSubtotal,
				IGV:            lineIGV,
				Total:          r.total,
				Notas:          r.req.Notas,
			})
		}

		for _, pago := range req.Pagos {
			p := model.Pago{
				SesionCajaID:  sesion.ID,
				Metodo:        pago.Metodo,
				Monto:         pago.Monto,
				Referencia:    pago.Referencia,
				MontoRecibido: pago.MontoRecibido,
				Fecha:         now,
			}
			if pago.Metodo == model.PagoEfectivo && pago.MontoRecibido != nil {
				vuelto := pago.MontoRecibido.Sub(pago.Monto).Round(2)
				if !vuelto.IsNegative() {
					p.Vuelto = &vuelto
				}
			}
			venta.Pagos = append(venta.Pagos, p)
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// Accumulate session buckets. Unknown methods persist as payments
		// but aggregate nowhere.
		for _, pago := range venta.Pagos {
			if col := model.BucketColumn(pago.Metodo); col != "" {
				if err := s.cajaRepo.SumarBucket(ctx, tx, sesion.ID, col, pago.Monto); err != nil {
					return err
				}
			}
		}

		for _, r := range resolved {
			if err := s.productoRepo.DescontarStockTx(ctx, tx, r.producto.ID, r.req.Cantidad); err != nil {
				return err
			}
		}

		if comandaID != nil {
			comanda, err := s.comandaRepo.FindByIDTx(ctx, tx, *comandaID)
			if err != nil {
				return err
			}
			return s.cerrarComandaFacturada(ctx, tx, comanda, venta.ID, now)
		}

		// Venta directa sobre una mesa ocupada: una vez pagada, cierra la
		// comanda viva más reciente de la mesa y la libera.
		if venta.MesaID != nil && estado == model.VentaPagada {
			comanda, err := s.comandaRepo.FindActivaPorMesaTx(ctx, tx, *venta.MesaID, sesion.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			return s.cerrarComandaFacturada(ctx, tx, comanda, venta.ID, now)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Fiscal vouchers go to the CPE sidecar asynchronously; the sale never
	// waits on SUNAT.
	if s.dispatcher != nil && venta.Estado == model.VentaPagada && tipo != model.TipoNotaVenta {
		_ = s.dispatcher.EnqueueCPE(ctx, map[string]interface{}{
			"venta_id": venta.ID.String(),
		})
	}

	return s.Obtener(ctx, venta.ID)
}

// cerrarComandaFacturada stamps the billed comanda closed and frees its
// mesa when no other live comanda still points at it.
func (s *ventaService) cerrarComandaFacturada(ctx context.Context, tx *gorm.DB, comanda *model.Comanda, ventaID uuid.UUID, now time.Time) error {
	comanda.Estado = model.ComandaCerrada
	comanda.VentaID = &ventaID
	comanda.FechaCierre = &now
	if err := s.comandaRepo.Update(ctx, tx, comanda); err != nil {
		return err
	}
	if comanda.MesaID == nil {
		return nil
	}
	otras, err := s.comandaRepo.CountActivasPorMesa(ctx, tx, *comanda.MesaID, comanda.ID)
	if err != nil {
		return err
	}
	if otras > 0 {
		return nil
	}
	return s.mesaRepo.UpdateEstado(ctx, tx, *comanda.MesaID, model.MesaLibre)
}

// ── CrearDesdeComanda ─────────────────────────────────────────────────────────
// Builds the sale from the comanda's live items and settles it; the
// comanda is closed inside the same transaction, so it can never be
// billed twice.

func (s *ventaService) CrearDesdeComanda(ctx context.Context, usuarioID uuid.UUID, req dto.VentaDesdeComandaRequest) (*dto.VentaResponse, error) {
	cid, err := uuid.Parse(req.ComandaID)
	if err != nil {
		return nil, fmt.Errorf("id_comanda inválido: %w", apierror.ErrValidation)
	}
	comanda, err := s.comandaRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("comanda no encontrada: %w", apierror.ErrNotFound)
	}
	if comanda.VentaID != nil {
		return nil, fmt.Errorf("la comanda ya fue facturada: %w", apierror.ErrConflict)
	}
	if model.ComandaEstadoTerminal(comanda.Estado) {
		return nil, fmt.Errorf("la comanda está %s: %w", comanda.Estado, apierror.ErrInvalidState)
	}

	items := make([]dto.ItemVentaRequest, 0, len(comanda.Items))
	for i := range comanda.Items {
		item := &comanda.Items[i]
		if item.Estado == model.ItemCancelado {
			continue
		}
		precio := item.PrecioUnitario
		items = append(items, dto.ItemVentaRequest{
			ProductoID:     item.ProductoID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: &precio,
			Descuento:      decimal.Zero,
			Notas:          item.Notas,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("la comanda no tiene items facturables: %w", apierror.ErrValidation)
	}

	ventaReq := dto.CrearVentaRequest{
		TipoComprobante: req.TipoComprobante,
		ClienteID:       req.ClienteID,
		TipoServicio:    comanda.TipoServicio,
		Items:           items,
		Pagos:           req.Pagos,
		Descuento:       req.Descuento,
		Observaciones:   req.Observaciones,
	}
	if comanda.MesaID != nil {
		id := comanda.MesaID.String()
		ventaReq.MesaID = &id
	}
	return s.crearVenta(ctx, usuarioID, ventaReq, &cid)
}

// ── Anular ────────────────────────────────────────────────────────────────────
// Marks the record void and appends the reason. Deliberately no stock
// restitution, no bucket reversal, no table change: the fiscal trail keeps
// the money as it moved, and corrections happen operationally.

func (s *ventaService) Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada: %w", apierror.ErrNotFound)
	}
	if venta.Estado == model.VentaAnulada {
		return nil, fmt.Errorf("la venta ya está anulada: %w", apierror.ErrInvalidState)
	}

	venta.Estado = model.VentaAnulada
	nota := "Anulada: " + motivo
	if venta.Observaciones != nil && *venta.Observaciones != "" {
		nota = *venta.Observaciones + " | " + nota
	}
	venta.Observaciones = &nota

	if err := s.repo.Update(ctx, nil, venta); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada: %w", apierror.ErrNotFound)
	}
	resp := ventaToResponse(v)
	return &resp, nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, ventaToResponse(&ventas[i]))
	}
	return out, total, nil
}

// ── Ticket ────────────────────────────────────────────────────────────────────

func (s *ventaService) Ticket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada: %w", apierror.ErrNotFound)
	}

	negocio := dto.NegocioInfo{
		RazonSocial: s.cfg.GetString(ctx, "negocio_razon_social", "Over Chef"),
		RUC:         s.cfg.GetString(ctx, model.ClaveNegocioRUC, "00000000000"),
		Direccion:   s.cfg.GetString(ctx, "negocio_direccion", ""),
		Telefono:    s.cfg.GetString(ctx, "negocio_telefono", ""),
	}

	return &dto.TicketResponse{
		Negocio: negocio,
		Venta:   ventaToResponse(v),
		QRData:  v.QRPayload(negocio.RUC),
		Mensaje: s.cfg.GetString(ctx, "negocio_mensaje_ticket", "¡Gracias por su preferencia!"),
	}, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func ventaToResponse(v *model.Venta) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:              v.ID.String(),
		TipoComprobante: v.TipoComprobante,
		Serie:           v.Serie,
		Numero:          v.Numero,
		NumeroCompleto:  v.NumeroComprobante(),
		UsuarioID:       v.UsuarioID.String(),
		SesionCajaID:    v.SesionCajaID.String(),
		TipoServicio:    v.TipoServicio,
		Subtotal:        v.Subtotal,
		IGV:             v.IGV,
		Descuento:       v.Descuento,
		Total:           v.Total,
		Estado:          v.Estado,
		Observaciones:   v.Observaciones,
		FechaEmision:    fmtFecha(v.FechaEmision),
		Detalles:        make([]dto.VentaDetalleResponse, 0, len(v.Detalles)),
		Pagos:           make([]dto.PagoResponse, 0, len(v.Pagos)),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	if v.Cliente != nil {
		nombre := v.Cliente.NombreCompleto()
		resp.ClienteNombre = &nombre
	}
	if v.Usuario != nil {
		resp.UsuarioNombre = v.Usuario.Nombre
	}
	if v.MesaID != nil {
		id := v.MesaID.String()
		resp.MesaID = &id
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		dr := dto.VentaDetalleResponse{
			ID:             d.ID.String(),
			ProductoID:     d.ProductoID.String(),
			Descripcion:    d.Descripcion,
			Unidad:         d.Unidad,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Descuento:      d.Descuento,
			Subtotal:       d.Subtotal,
			IGV:            d.IGV,
			Total:          d.Total,
			Notas:          d.Notas,
		}
		if d.CodigoProducto != "" {
			codigo := d.CodigoProducto
			dr.CodigoProducto = &codigo
		}
		resp.Detalles = append(resp.Detalles, dr)
	}
	for i := range v.Pagos {
		p := &v.Pagos[i]
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			ID:            p.ID.String(),
			Metodo:        p.Metodo,
			Monto:         p.Monto,
			Referencia:    p.Referencia,
			MontoRecibido: p.MontoRecibido,
			Vuelto:        p.Vuelto,
			Fecha:         fmtFecha(p.Fecha),
		})
	}
	return resp
}
