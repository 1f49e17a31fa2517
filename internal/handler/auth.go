package handler

import (
	"net/http"

	"github.com/CristopherG19/app-restaurante-cgch/internal/apierror"
	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Autentica un usuario y emite el token de acceso
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} apierror.Envelope{data=dto.LoginResponse}
// @Failure 401 {object} apierror.Envelope
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Me returns the profile of the token bearer.
func (h *AuthHandler) Me(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Perfil(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}
