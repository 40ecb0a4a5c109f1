package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidToken         = errors.New("token inválido")
	ErrNoSession            = errors.New("no hay sesión activa")
	ErrNoCompany            = errors.New("el usuario no tiene empresa vinculada")
	ErrConfirmationRequired = errors.New("se requiere confirmación explícita")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrForbidden            = errors.New("acceso denegado")
	ErrNotFound             = errors.New("recurso no encontrado")
)
