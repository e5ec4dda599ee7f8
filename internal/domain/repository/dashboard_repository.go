package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de lectura para el resumen del dashboard.
// Las ventas anuladas no se cuentan.
type DashboardRepository interface {
	// VentasEnRango devuelve cantidad y monto total de ventas con fecha_venta en [desde, hasta].
	VentasEnRango(ctx context.Context, empresaID string, desde, hasta time.Time) (int, decimal.Decimal, error)
	// SaldoPorCobrar suma saldo_pendiente de ventas activas.
	SaldoPorCobrar(ctx context.Context, empresaID string) (decimal.Decimal, error)
	// VentasPendientesEntrega cuenta ventas activas con entrega PENDIENTE o PARCIAL.
	VentasPendientesEntrega(ctx context.Context, empresaID string) (int, error)
	// CoccionesEnProceso cuenta cocciones EN_PROCESO.
	CoccionesEnProceso(ctx context.Context, empresaID string) (int, error)
}
