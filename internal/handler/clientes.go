package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK(resp))
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	var filter dto.ClienteFilter
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

func (h *ClientesHandler) Obtener(c *gin.Context) {
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

// BuscarPorDocumento godoc
// @Summary Busca un cliente por tipo y numero de documento
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param tipo query string true "DNI, RUC, CE o PASAPORTE"
// @Param numero query string true "Numero de documento"
// @Success 200 {object} apierror.Envelope{data=dto.ClienteResponse}
// @Failure 404 {object} apierror.Envelope
// @Router /v1/clientes/buscar [get]
func (h *ClientesHandler) BuscarPorDocumento(c *gin.Context) {
	tipo := c.Query("tipo")
	numero := c.Query("numero")
	if tipo == "" || numero == "" {
		c.JSON(http.StatusBadRequest, apierror.Fail("tipo y numero son requeridos"))
		return
	}
	resp, err := h.svc.BuscarPorDocumento(c.Request.Context(), tipo, numero)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
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

func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage(nil, "Cliente desactivado"))
}
