package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrUnsupportedReportType = errors.New("tipo de reporte no soportado")
	ErrUnsupportedFormat     = errors.New("formato de exportación no soportado")
	ErrStorage               = errors.New("error de almacenamiento de archivos")
)
