//go:build container

package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/analytics"
	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/onboarding"
	"github.com/brickapp/brickapp-api/internal/application/usecase"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestFlujoCompleto recorre alta de empresa, catálogo, venta, entrega y pago
// contra un PostgreSQL real con las migraciones embebidas.
func TestFlujoCompleto(t *testing.T) {
	ctx := context.Background()
	dsn := testhelpers.StartPostgres(t)
	require.NoError(t, Migrate(dsn))
	v, dirty, err := MigrationVersion(dsn)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.EqualValues(t, 1, v)

	pool, err := NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	tx := NewTxRunner(pool)

	permisos := auth.NewPermisoService(NewPermisoRepository(pool), NewRolRepository(pool))
	onb := onboarding.NewUseCase(tx, permisos)
	res, err := onb.Onboard(ctx, onboarding.Input{
		RUC: "20131312955", RazonSocial: "Ladrillera San Pedro SAC",
		AdminNombre: "Administrador General", AdminUsuario: "admin", AdminPassword: "secreto123",
	})
	require.NoError(t, err)
	assert.Greater(t, res.Permisos, 0)

	// el login es único en todo el sistema: la segunda alta falla y no deja la empresa creada
	_, err = onb.Onboard(ctx, onboarding.Input{
		RUC: "20100070970", RazonSocial: "Otra SAC",
		AdminNombre: "Otro Admin", AdminUsuario: "admin", AdminPassword: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	otra, err := NewEmpresaRepository(pool).GetByRUC(ctx, "20100070970")
	require.NoError(t, err)
	assert.Nil(t, otra)

	codigos, err := permisos.ResolvePermisos(ctx, res.RolID)
	require.NoError(t, err)
	assert.Len(t, codigos, res.Permisos)

	clientes := usecase.NewClienteUseCase(NewClienteRepository(pool))
	cli, err := clientes.Create(ctx, res.EmpresaID, dto.ClienteRequest{
		TipoDocumento: "DNI", NumeroDocumento: "46027897", Nombre: "JUAN PEREZ QUISPE",
	})
	require.NoError(t, err)
	_, err = clientes.Create(ctx, res.EmpresaID, dto.ClienteRequest{
		TipoDocumento: "DNI", NumeroDocumento: "46027897", Nombre: "Duplicado",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	productos := usecase.NewProductoUseCase(NewProductoRepository(pool))
	prod, err := productos.Create(ctx, res.EmpresaID, dto.CreateProductoRequest{
		Nombre: "King Kong 18 huecos", PrecioUnitario: dec("1200"),
	})
	require.NoError(t, err)

	ventas := venta.NewUseCase(NewVentaRepository(pool), NewEntregaRepository(pool), NewClienteRepository(pool), NewProductoRepository(pool), tx)
	entregas := venta.NewEntregaUseCase(NewVentaRepository(pool), NewEntregaRepository(pool), tx)

	vr, err := ventas.Create(ctx, res.EmpresaID, res.UsuarioID, dto.CreateVentaRequest{
		ClienteID: cli.ID, FechaVenta: "2024-06-10", TipoVenta: "CREDITO", TipoComprobante: "BOLETA",
		Adelanto: ptrDec(dec("1000")),
		Detalles: []dto.DetalleVentaRequest{{ProductoID: prod.ID, Cantidad: dec("10")}},
		Servicios: []dto.ServicioVentaRequest{{Tipo: "FLETE", Monto: dec("150")}},
	})
	require.NoError(t, err)
	assert.True(t, dec("12150").Equal(vr.Total))
	assert.Equal(t, "B001-00000001", vr.Comprobante.Completo)
	assert.Equal(t, entity.PagoParcial, vr.EstadoPago)

	vr2, err := ventas.Create(ctx, res.EmpresaID, res.UsuarioID, dto.CreateVentaRequest{
		ClienteID: cli.ID, TipoVenta: "CONTADO", TipoComprobante: "BOLETA",
		Detalles: []dto.DetalleVentaRequest{{ProductoID: prod.ID, Cantidad: dec("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "B001-00000002", vr2.Comprobante.Completo)

	conComp, err := NewVentaRepository(pool).ListConComprobante(ctx, res.EmpresaID, repository.VentaFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, conComp, 2)
	for _, v := range conComp {
		require.NotNil(t, v.Comprobante)
		assert.Equal(t, "B001", v.Comprobante.Serie)
		assert.True(t, v.Total.Equal(v.Comprobante.Total))
	}

	// más de dos decimales no llega a la base
	_, err = entregas.Registrar(ctx, res.EmpresaID, res.UsuarioID, dto.CreateEntregaRequest{
		VentaID: vr.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: vr.Detalles[0].ID, Cantidad: dec("0.001")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := entregas.Registrar(ctx, res.EmpresaID, res.UsuarioID, dto.CreateEntregaRequest{
		VentaID: vr.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: vr.Detalles[0].ID, Cantidad: dec("11")}},
	})
	assert.ErrorIs(t, err, domain.ErrExceedsOrdered)
	assert.Nil(t, r)

	r, err = entregas.Registrar(ctx, res.EmpresaID, res.UsuarioID, dto.CreateEntregaRequest{
		VentaID: vr.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: vr.Detalles[0].ID, Cantidad: dec("10")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntregaEntregado, r.EstadoEntrega)

	pagada, err := ventas.RegistrarPago(ctx, res.EmpresaID, vr.ID, dto.PagoRequest{Monto: dec("11150")})
	require.NoError(t, err)
	assert.Equal(t, entity.VentaCerrada, pagada.EstadoVenta)

	err = ventas.Anular(ctx, res.EmpresaID, vr.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	resumen, err := analytics.NewDashboardUseCase(NewDashboardRepository(pool)).Resumen(ctx, res.EmpresaID)
	require.NoError(t, err)
	assert.Equal(t, 0, resumen.CoccionesEnProceso)
}

// TestCoccionUnicaEnProceso verifica el índice parcial que impide dos cocciones abiertas por horno.
func TestCoccionUnicaEnProceso(t *testing.T) {
	ctx := context.Background()
	dsn := testhelpers.StartPostgres(t)
	require.NoError(t, Migrate(dsn))
	pool, err := NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	onb := onboarding.NewUseCase(NewTxRunner(pool), auth.NewPermisoService(NewPermisoRepository(pool), NewRolRepository(pool)))
	res, err := onb.Onboard(ctx, onboarding.Input{
		RUC: "20131312955", RazonSocial: "Ladrillera San Pedro SAC",
		AdminNombre: "Administrador General", AdminUsuario: "admin", AdminPassword: "secreto123",
	})
	require.NoError(t, err)

	hornos := usecase.NewHornoUseCase(NewHornoRepository(pool))
	h, err := hornos.Create(ctx, res.EmpresaID, dto.HornoRequest{Nombre: "Horno 1", CapacidadLadrillos: 20000})
	require.NoError(t, err)

	cocciones := usecase.NewCoccionUseCase(NewCoccionRepository(pool), NewHornoRepository(pool), NewPersonalRepository(pool))
	c, err := cocciones.Create(ctx, res.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID, FechaEncendido: "2024-06-01"})
	require.NoError(t, err)
	_, err = cocciones.Create(ctx, res.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID, FechaEncendido: "2024-06-02"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = cocciones.Finalizar(ctx, res.EmpresaID, c.ID, dto.FinalizarCoccionRequest{FechaApagado: "2024-06-05"})
	require.NoError(t, err)
	_, err = cocciones.Create(ctx, res.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID, FechaEncendido: "2024-06-06"})
	assert.NoError(t, err)
}

func ptrDec(d decimal.Decimal) *decimal.Decimal { return &d }
