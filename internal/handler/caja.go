package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/middleware"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// usuarioFromClaims resolves the authenticated user's UUID. The token is
// already validated by the JWT middleware, so a parse failure here means a
// malformed token payload.
func usuarioFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Fail("Token invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// Abrir godoc
// @Summary Abre una sesion de caja para el usuario autenticado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Monto inicial declarado"
// @Success 201 {object} apierror.Envelope{data=dto.SesionCajaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK(resp))
}

// Cerrar godoc
// @Summary Cierra la sesion de caja abierta del usuario
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Monto real contado"
// @Success 200 {object} apierror.Envelope{data=dto.SesionCajaResponse}
// @Failure 400 {object} apierror.Envelope
// @Router /v1/caja/cerrar [put]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Actual returns the user's currently open session, or a null payload
// when none is open.
func (h *CajaHandler) Actual(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Actual(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Resumen godoc
// @Summary Resumen de una sesion: ventas por tipo y pagos por metodo
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de sesion"
// @Success 200 {object} apierror.Envelope{data=dto.ResumenCajaResponse}
// @Failure 404 {object} apierror.Envelope
// @Router /v1/caja/{id}/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Listar returns the session history, newest first.
func (h *CajaHandler) Listar(c *gin.Context) {
	var filter dto.CajaFilter
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
