package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComandasHandler struct{ svc service.ComandaService }

func NewComandasHandler(svc service.ComandaService) *ComandasHandler {
	return &ComandasHandler{svc: svc}
}

// Crear godoc
// @Summary Abre una comanda con sus items iniciales
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearComandaRequest true "Mesa, tipo de servicio e items"
// @Success 201 {object} apierror.Envelope{data=dto.ComandaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/comandas [post]
func (h *ComandasHandler) Crear(c *gin.Context) {
	var req dto.CrearComandaRequest
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

func (h *ComandasHandler) Listar(c *gin.Context) {
	var filter dto.ComandaFilter
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

func (h *ComandasHandler) Obtener(c *gin.Context) {
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

func (h *ComandasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// AgregarItems appends lines to an open comanda; they start as pendiente
// until the next envio a cocina.
func (h *ComandasHandler) AgregarItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Items []dto.ItemComandaRequest `json:"items" validate:"required,min=1,dive"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItems(c.Request.Context(), id, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// EnviarCocina godoc
// @Summary Envia los items pendientes de la comanda a cocina
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de comanda"
// @Success 200 {object} apierror.Envelope{data=dto.EnviarCocinaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/comandas/{id}/enviar-cocina [put]
func (h *ComandasHandler) EnviarCocina(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EnviarCocina(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// CambiarEstado moves the whole comanda through its lifecycle.
func (h *ComandasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// CambiarEstadoItem moves a single item; cancelling one recalculates the
// comanda totals.
func (h *ComandasHandler) CambiarEstadoItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("ID invalido"))
		return
	}
	var req dto.CambiarEstadoItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstadoItem(c.Request.Context(), itemID, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Cocina godoc
// @Summary Tablero de cocina: items agrupados por estado con alertas de demora
// @Tags cocina
// @Produce json
// @Security BearerAuth
// @Success 200 {object} apierror.Envelope{data=dto.CocinaResponse}
// @Router /v1/cocina [get]
func (h *ComandasHandler) Cocina(c *gin.Context) {
	resp, err := h.svc.Cocina(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}
