package dto

type CrearCategoriaRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=2"`
	Color  *string `json:"color"  validate:"omitempty,max=10"`
	Orden  int     `json:"orden"  validate:"min=0"`
}

type ActualizarCategoriaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2"`
	Color  *string `json:"color"  validate:"omitempty,max=10"`
	Orden  *int    `json:"orden"  validate:"omitempty,min=0"`
}

type CategoriaResponse struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Color  *string `json:"color"`
	Orden  int     `json:"orden"`
	Activo bool    `json:"activo"`
}
