package dto

type CrearClienteRequest struct {
	TipoDocumento   string  `json:"tipo_documento"   validate:"required,oneof=DNI RUC CE PASAPORTE"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=4,max=20"`
	Nombres         *string `json:"nombres"`
	Apellidos       *string `json:"apellidos"`
	RazonSocial     *string `json:"razon_social"`
	Direccion       *string `json:"direccion"`
	Telefono        *string `json:"telefono"  validate:"omitempty,max=20"`
	Email           *string `json:"email"     validate:"omitempty,email"`
}

type ActualizarClienteRequest struct {
	Nombres     *string `json:"nombres"`
	Apellidos   *string `json:"apellidos"`
	RazonSocial *string `json:"razon_social"`
	Direccion   *string `json:"direccion"`
	Telefono    *string `json:"telefono" validate:"omitempty,max=20"`
	Email       *string `json:"email"    validate:"omitempty,email"`
}

type ClienteFilter struct {
	TipoDocumento string `form:"tipo_documento" validate:"omitempty,oneof=DNI RUC CE PASAPORTE"`
	Buscar        string `form:"buscar"`
	Page          int    `form:"pagina,default=1"      validate:"min=1"`
	PerPage       int    `form:"por_pagina,default=50" validate:"min=1,max=100"`
}

type ClienteResponse struct {
	ID              string  `json:"id"`
	TipoDocumento   string  `json:"tipo_documento"`
	NumeroDocumento string  `json:"numero_documento"`
	Nombres         *string `json:"nombres"`
	Apellidos       *string `json:"apellidos"`
	RazonSocial     *string `json:"razon_social"`
	NombreCompleto  string  `json:"nombre_completo"`
	Direccion       *string `json:"direccion"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
	Activo          bool    `json:"activo"`
}
