package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
)

func venta(empresaID, clienteID string, fecha time.Time, total, pagado string, estado string) *entity.Venta {
	t, p := decimal.RequireFromString(total), decimal.RequireFromString(pagado)
	return &entity.Venta{
		ID: uuid.NewString(), EmpresaID: empresaID, ClienteID: clienteID, FechaVenta: fecha,
		TipoVenta: entity.TipoVentaCredito, Total: t, Adelanto: p, SaldoPendiente: t.Sub(p),
		EstadoPago: entity.PagoParcial, EstadoEntrega: entity.EntregaPendiente, EstadoVenta: estado,
	}
}

func TestResumen(t *testing.T) {
	store := testhelpers.NewStore()
	fx := store.Seed("hash", nil)
	ctx := context.Background()
	hoy := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	for _, v := range []*entity.Venta{
		venta(fx.EmpresaID, fx.ClienteID, hoy, "1000", "200", entity.VentaActiva),
		venta(fx.EmpresaID, fx.ClienteID, hoy.AddDate(0, 0, -3), "500", "0", entity.VentaActiva),
		venta(fx.EmpresaID, fx.ClienteID, hoy.AddDate(0, -1, 0), "700", "0", entity.VentaActiva),
		venta(fx.EmpresaID, fx.ClienteID, hoy, "9999", "0", entity.VentaAnulada),
	} {
		require.NoError(t, store.Ventas().Create(ctx, v))
	}
	require.NoError(t, store.Cocciones().Create(ctx, &entity.Coccion{
		ID: uuid.NewString(), EmpresaID: fx.EmpresaID, HornoID: uuid.NewString(), Estado: entity.CoccionEnProceso,
	}))

	uc := NewDashboardUseCase(store.Dashboard())
	uc.now = func() time.Time { return hoy }

	out, err := uc.Resumen(ctx, fx.EmpresaID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.VentasHoy.Cantidad)
	assert.True(t, out.VentasHoy.Total.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 2, out.VentasMes.Cantidad)
	assert.True(t, out.VentasMes.Total.Equal(decimal.NewFromInt(1500)))
	assert.True(t, out.SaldoPorCobrar.Equal(decimal.NewFromInt(2000)), out.SaldoPorCobrar.String())
	assert.Equal(t, 3, out.VentasPendientesEntrega)
	assert.Equal(t, 1, out.CoccionesEnProceso)
	assert.Equal(t, "Junio 2024", out.Periodo)
}

type fallaSaldo struct {
	repository.DashboardRepository
}

func (fallaSaldo) SaldoPorCobrar(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("timeout")
}

func TestResumen_PropagaError(t *testing.T) {
	store := testhelpers.NewStore()
	uc := NewDashboardUseCase(fallaSaldo{store.Dashboard()})

	_, err := uc.Resumen(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saldo por cobrar")
}
