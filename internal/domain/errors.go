package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrAccountNotFound = errors.New("cuenta contable no encontrada")
	ErrDualAmount      = errors.New("la línea tiene débito y crédito a la vez")
	ErrLockNotObtained = errors.New("no se pudo obtener el bloqueo, otra reparación está en curso")
)
