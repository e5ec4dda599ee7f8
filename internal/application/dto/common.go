package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/brickapp/brickapp-api/internal/domain"
)

// Límites de paginación.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize aplica el límite por defecto, el máximo y descarta offsets negativos.
func (p *PageRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// ParseFecha acepta "2006-01-02" o RFC3339. Vacío devuelve def.
func ParseFecha(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (formato AAAA-MM-DD o RFC3339)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// ParseFechaOpcional como ParseFecha pero devuelve nil si s está vacío.
func ParseFechaOpcional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseFecha(s, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}
