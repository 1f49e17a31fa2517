package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// Listar returns every setting grouped by grupo.
func (h *ConfiguracionHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Actualizar godoc
// @Summary Actualiza en bloque las claves de un grupo de configuracion
// @Tags configuracion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param grupo path string true "Grupo de configuracion"
// @Param body body dto.ActualizarConfiguracionRequest true "Pares clave-valor"
// @Success 200 {object} apierror.Envelope
// @Failure 400 {object} apierror.Envelope
// @Router /v1/configuracion/{grupo} [put]
func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	grupo := c.Param("grupo")
	if grupo == "" {
		c.JSON(http.StatusBadRequest, apierror.Fail("Grupo requerido"))
		return
	}
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Actualizar(c.Request.Context(), grupo, req.Valores); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage(nil, "Configuracion actualizada"))
}
