package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrExceedsOrdered  = errors.New("la cantidad entregada supera la cantidad vendida")
	ErrLookupFailed    = errors.New("falló la consulta al servicio externo")
	ErrInvalidPassword = errors.New("credenciales inválidas")
	ErrInactiveUser    = errors.New("usuario inactivo")
)
