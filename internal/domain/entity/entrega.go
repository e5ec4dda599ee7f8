package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntregaVenta despacho (total o parcial) de una venta.
type EntregaVenta struct {
	ID            string
	VentaID       string
	FechaEntrega  time.Time
	Observaciones string
	UsuarioID     string
	CreatedAt     time.Time
	Detalles      []DetalleEntregaVenta
}

// DetalleEntregaVenta cantidad entregada de una línea de la venta.
type DetalleEntregaVenta struct {
	ID             string
	EntregaID      string
	DetalleVentaID string
	ProductoNombre string // solo lectura
	Cantidad       decimal.Decimal
}
