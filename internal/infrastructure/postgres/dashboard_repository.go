package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) VentasEnRango(ctx context.Context, empresaID string, desde, hasta time.Time) (int, decimal.Decimal, error) {
	var (
		n     int
		total decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM ventas
		WHERE id_empresa = $1 AND estado_venta <> 'ANULADA' AND fecha_venta BETWEEN $2 AND $3`,
		empresaID, desde, hasta).Scan(&n, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("ventas en rango: %w", err)
	}
	return n, total, nil
}

func (r *DashboardRepo) SaldoPorCobrar(ctx context.Context, empresaID string) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(saldo_pendiente), 0) FROM ventas
		WHERE id_empresa = $1 AND estado_venta = 'ACTIVA'`, empresaID).Scan(&saldo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("saldo por cobrar: %w", err)
	}
	return saldo, nil
}

func (r *DashboardRepo) VentasPendientesEntrega(ctx context.Context, empresaID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM ventas
		WHERE id_empresa = $1 AND estado_venta = 'ACTIVA' AND estado_entrega IN ('PENDIENTE', 'PARCIAL')`,
		empresaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ventas pendientes de entrega: %w", err)
	}
	return n, nil
}

func (r *DashboardRepo) CoccionesEnProceso(ctx context.Context, empresaID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cocciones WHERE id_empresa = $1 AND estado = 'EN_PROCESO'`,
		empresaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("cocciones en proceso: %w", err)
	}
	return n, nil
}
