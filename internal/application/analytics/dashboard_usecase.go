// Package analytics contiene el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// DashboardUseCase genera los indicadores del día y del mes en curso.
// Solo lee; delega las consultas en DashboardRepository.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// Resumen ejecuta las cinco consultas en paralelo:
//  1. VentasEnRango(hoy)
//  2. VentasEnRango(mes)
//  3. SaldoPorCobrar
//  4. VentasPendientesEntrega
//  5. CoccionesEnProceso
func (uc *DashboardUseCase) Resumen(ctx context.Context, empresaID string) (*dto.DashboardResumenResponse, error) {
	now := uc.now()

	// Hoy: 00:00:00 – 23:59:59.999
	hoyInicio := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hoyFin := hoyInicio.Add(24*time.Hour - time.Nanosecond)
	mesInicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type ventasResult struct {
		cantidad int
		total    decimal.Decimal
		err      error
	}
	type montoResult struct {
		monto decimal.Decimal
		err   error
	}
	type conteoResult struct {
		n   int
		err error
	}

	hoyCh := make(chan ventasResult, 1)
	mesCh := make(chan ventasResult, 1)
	saldoCh := make(chan montoResult, 1)
	pendCh := make(chan conteoResult, 1)
	coccCh := make(chan conteoResult, 1)

	go func() {
		n, total, err := uc.repo.VentasEnRango(ctx, empresaID, hoyInicio, hoyFin)
		hoyCh <- ventasResult{n, total, err}
	}()
	go func() {
		n, total, err := uc.repo.VentasEnRango(ctx, empresaID, mesInicio, hoyFin)
		mesCh <- ventasResult{n, total, err}
	}()
	go func() {
		m, err := uc.repo.SaldoPorCobrar(ctx, empresaID)
		saldoCh <- montoResult{m, err}
	}()
	go func() {
		n, err := uc.repo.VentasPendientesEntrega(ctx, empresaID)
		pendCh <- conteoResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CoccionesEnProceso(ctx, empresaID)
		coccCh <- conteoResult{n, err}
	}()

	hoy, mes, saldo, pend, cocc := <-hoyCh, <-mesCh, <-saldoCh, <-pendCh, <-coccCh

	if hoy.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", hoy.err)
	}
	if mes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", mes.err)
	}
	if saldo.err != nil {
		return nil, fmt.Errorf("dashboard: saldo por cobrar: %w", saldo.err)
	}
	if pend.err != nil {
		return nil, fmt.Errorf("dashboard: pendientes de entrega: %w", pend.err)
	}
	if cocc.err != nil {
		return nil, fmt.Errorf("dashboard: cocciones en proceso: %w", cocc.err)
	}

	return &dto.DashboardResumenResponse{
		VentasHoy:               dto.ResumenVentas{Cantidad: hoy.cantidad, Total: hoy.total.Round(2)},
		VentasMes:               dto.ResumenVentas{Cantidad: mes.cantidad, Total: mes.total.Round(2)},
		SaldoPorCobrar:          saldo.monto.Round(2),
		VentasPendientesEntrega: pend.n,
		CoccionesEnProceso:      cocc.n,
		Periodo:                 etiquetaMes(now),
	}, nil
}

// etiquetaMes devuelve una etiqueta legible del mes, ej: "Junio 2024".
func etiquetaMes(t time.Time) string {
	meses := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Setiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", meses[t.Month()-1], t.Year())
}
