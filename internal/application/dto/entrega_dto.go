package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleEntregaRequest cantidad a entregar de una línea de la venta.
type DetalleEntregaRequest struct {
	DetalleVentaID string          `json:"id_detalle_venta" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}

// CreateEntregaRequest registro de una entrega (total o parcial).
type CreateEntregaRequest struct {
	VentaID       string                  `json:"id_venta" validate:"required,uuid"`
	FechaEntrega  string                  `json:"fecha_entrega"`
	Observaciones string                  `json:"observaciones" validate:"max=500"`
	Detalles      []DetalleEntregaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleEntregaResponse línea entregada.
type DetalleEntregaResponse struct {
	ID             string          `json:"id"`
	DetalleVentaID string          `json:"id_detalle_venta"`
	ProductoNombre string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}

// EntregaResponse salida de una entrega.
type EntregaResponse struct {
	ID            string                   `json:"id"`
	VentaID       string                   `json:"id_venta"`
	FechaEntrega  time.Time                `json:"fecha_entrega"`
	Observaciones string                   `json:"observaciones"`
	UsuarioID     string                   `json:"id_usuario,omitempty"`
	Detalles      []DetalleEntregaResponse `json:"detalles"`
	CreatedAt     time.Time                `json:"created_at"`
}

// EntregaRegistradaResponse entrega creada junto con los estados recalculados de la venta.
type EntregaRegistradaResponse struct {
	Entrega       EntregaResponse `json:"entrega"`
	EstadoEntrega string          `json:"estado_entrega"`
	EstadoVenta   string          `json:"estado_venta"`
}
