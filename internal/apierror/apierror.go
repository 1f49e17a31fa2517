// Package apierror defines the error taxonomy of the API and the canonical
// JSON envelopes returned to clients. Every 4xx/5xx response goes through
// this package so internal details (SQL errors, stack traces) never leak.
package apierror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the business layer. Services wrap these with
// fmt.Errorf("...: %w", Err*) so handlers can map them to HTTP statuses
// without string matching.
var (
	ErrValidation   = errors.New("validacion")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("prohibido")
	ErrNotFound     = errors.New("no encontrado")
	ErrConflict     = errors.New("conflicto")
	ErrInvalidState = errors.New("estado invalido")
)

// HTTPStatus maps a business error to its HTTP status code.
// Conflict and InvalidState intentionally map to 400, matching the
// original API contract.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the canonical response body. Success responses carry Data and
// optionally Message; error responses carry Message and optionally Errors.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is attached to list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func OK(data interface{}) *Envelope {
	return &Envelope{Success: true, Data: data}
}

func OKMessage(data interface{}, msg string) *Envelope {
	return &Envelope{Success: true, Data: data, Message: msg}
}

func Paginated(data interface{}, total int64, page, perPage int) *Envelope {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return &Envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Total: total, Page: page, PerPage: perPage, TotalPages: pages,
		},
	}
}

func Fail(msg string) *Envelope {
	return &Envelope{Success: false, Message: msg}
}

// FailValidation wraps per-field validation errors.
func FailValidation(fields map[string]string) *Envelope {
	return &Envelope{Success: false, Message: "Error de validacion", Errors: fields}
}
