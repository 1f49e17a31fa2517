package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una venta directa con items y pagos
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearVentaRequest true "Items, pagos y tipo de comprobante"
// @Success 201 {object} apierror.Envelope{data=dto.VentaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/ventas [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK(resp))
}

// DesdeComanda godoc
// @Summary Liquida una comanda: genera la venta, cierra la comanda y libera la mesa
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VentaDesdeComandaRequest true "Comanda a liquidar con pagos"
// @Success 201 {object} apierror.Envelope{data=dto.VentaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/ventas/desde-comanda [post]
func (h *VentasHandler) DesdeComanda(c *gin.Context) {
	var req dto.VentaDesdeComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.CrearDesdeComanda(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK(resp))
}

func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	items, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Paginated(items, total, filter.Page, filter.PerPage))
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Anular godoc
// @Summary Anula una venta dejando intactos sus montos y correlativo
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de venta"
// @Param body body dto.AnularVentaRequest true "Motivo de anulacion"
// @Success 200 {object} apierror.Envelope{data=dto.VentaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/ventas/{id}/anular [put]
func (h *VentasHandler) Anular(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AnularVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Ticket godoc
// @Summary Datos de impresion del ticket con el QR de SUNAT
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de venta"
// @Success 200 {object} apierror.Envelope{data=dto.TicketResponse}
// @Failure 404 {object} apierror.Envelope
// @Router /v1/ventas/{id}/ticket [get]
func (h *VentasHandler) Ticket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Ticket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}
