package dto

type ActualizarConfiguracionRequest struct {
	Valores map[string]string `json:"valores" validate:"required,min=1"`
}

type ConfiguracionResponse struct {
	Grupo string `json:"grupo"`
	Clave string `json:"clave"`
	Valor string `json:"valor"`
}
