package venta

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

type env struct {
	store    *testhelpers.Store
	fx       testhelpers.Fixture
	ventas   *UseCase
	entregas *EntregaUseCase
}

func newEnv(t *testing.T) env {
	t.Helper()
	store := testhelpers.NewStore()
	fx := store.Seed("hash", nil)
	return env{
		store:    store,
		fx:       fx,
		ventas:   NewUseCase(store.Ventas(), store.Entregas(), store.Clientes(), store.Productos(), store),
		entregas: NewEntregaUseCase(store.Ventas(), store.Entregas(), store),
	}
}

func (e env) ventaCredito(t *testing.T) *dto.VentaResponse {
	t.Helper()
	v, err := e.ventas.Create(context.Background(), e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateVentaRequest{
		ClienteID:       e.fx.ClienteID,
		FechaVenta:      "2024-06-10",
		TipoVenta:       "CREDITO",
		TipoComprobante: "BOLETA",
		Detalles: []dto.DetalleVentaRequest{
			{ProductoID: e.fx.ProductoID, Cantidad: d("10")},
			{ProductoID: e.fx.Producto2ID, Cantidad: d("5"), PrecioUnitario: d("750")},
		},
	})
	require.NoError(t, err)
	return v
}

func detalleDe(t *testing.T, v *dto.VentaResponse, productoID string) string {
	t.Helper()
	for _, l := range v.Detalles {
		if l.ProductoID == productoID {
			return l.ID
		}
	}
	t.Fatalf("detalle de %s no encontrado", productoID)
	return ""
}

func TestCreate_ContadoConFlete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	v, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateVentaRequest{
		ClienteID:       e.fx.ClienteID,
		TipoVenta:       "contado",
		TipoComprobante: "BOLETA",
		Detalles:        []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("10")}},
		Servicios:       []dto.ServicioVentaRequest{{Tipo: "FLETE", Monto: d("150")}},
	})
	require.NoError(t, err)

	assert.True(t, v.Subtotal.Equal(d("12000")))
	assert.True(t, v.TotalServicios.Equal(d("150")))
	assert.True(t, v.Total.Equal(d("12150")))
	assert.True(t, v.Adelanto.Equal(v.Total))
	assert.True(t, v.SaldoPendiente.IsZero())
	assert.Equal(t, entity.PagoCancelado, v.EstadoPago)
	assert.Equal(t, entity.EntregaPendiente, v.EstadoEntrega)
	assert.Equal(t, entity.VentaActiva, v.EstadoVenta)

	require.NotNil(t, v.Comprobante)
	assert.Equal(t, "B001-00000001", v.Comprobante.Completo)
	assert.True(t, v.Comprobante.OpGravada.Equal(d("10296.61")), v.Comprobante.OpGravada.String())
	assert.True(t, v.Comprobante.IGV.Equal(d("1853.39")), v.Comprobante.IGV.String())

	v2, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateVentaRequest{
		ClienteID: e.fx.ClienteID, TipoVenta: "CREDITO", TipoComprobante: "BOLETA",
		Detalles: []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2.Comprobante.Numero)
	assert.Equal(t, entity.PagoPendiente, v2.EstadoPago)
}

func TestCreate_ValidacionesDePago(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	base := dto.CreateVentaRequest{
		ClienteID: e.fx.ClienteID, TipoComprobante: "NOTA_VENTA",
		Detalles: []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("1")}},
	}

	in := base
	in.TipoVenta, in.Adelanto = "CONTADO", dp("500")
	_, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.TipoVenta, in.Adelanto = "CREDITO", dp("1500")
	_, err = e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.TipoVenta, in.Adelanto = "CREDITO", dp("-1")
	_, err = e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.TipoVenta, in.Adelanto = "CREDITO", dp("400")
	v, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	require.NoError(t, err)
	assert.Equal(t, entity.PagoParcial, v.EstadoPago)
	assert.True(t, v.SaldoPendiente.Equal(d("800")))
	assert.True(t, v.Comprobante.IGV.IsZero())
	assert.Equal(t, "NV01", v.Comprobante.Serie)

	assert.Equal(t, 1, e.store.CountVentas())
}

func TestCreate_FacturaRequiereRUC(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := dto.CreateVentaRequest{
		ClienteID: e.fx.ClienteID, TipoVenta: "CREDITO", TipoComprobante: "FACTURA",
		Detalles: []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("2")}},
	}
	_, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.ClienteID = e.fx.ClienteRUCID
	v, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, in)
	require.NoError(t, err)
	assert.Equal(t, "F001-00000001", v.Comprobante.Completo)
}

func TestCreate_ProductoDeOtraEmpresa(t *testing.T) {
	e := newEnv(t)
	otra := e.store.AddEmpresa("20600000001")
	_, err := e.ventas.Create(context.Background(), otra, "", dto.CreateVentaRequest{
		ClienteID: e.fx.ClienteID, TipoVenta: "CREDITO", TipoComprobante: "BOLETA",
		Detalles: []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("2")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RollbackCompleto(t *testing.T) {
	for _, op := range []string{"CreateVenta", "CreateDetalle", "CreateServicio"} {
		t.Run(op, func(t *testing.T) {
			e := newEnv(t)
			e.store.FailOn = op
			_, err := e.ventas.Create(context.Background(), e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateVentaRequest{
				ClienteID: e.fx.ClienteID, TipoVenta: "CONTADO", TipoComprobante: "BOLETA",
				Detalles:  []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d("3")}},
				Servicios: []dto.ServicioVentaRequest{{Tipo: "DESCARGA", Monto: d("50")}},
			})
			require.Error(t, err)
			assert.Equal(t, 0, e.store.CountVentas())
			assert.Equal(t, int64(0), e.store.Numero(e.fx.EmpresaID, entity.ComprobanteBoleta))
		})
	}
}

func TestEntregas_EstadosYExceso(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t)
	kk := detalleDe(t, v, e.fx.ProductoID)
	pd := detalleDe(t, v, e.fx.Producto2ID)

	r, err := e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntregaParcial, r.EstadoEntrega)
	assert.Equal(t, entity.VentaActiva, r.EstadoVenta)

	_, err = e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("7")}},
	})
	assert.ErrorIs(t, err, domain.ErrExceedsOrdered)

	// ids repetidos se suman: 4 + 3 + 3 = 10
	r, err = e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{
			{DetalleVentaID: kk, Cantidad: d("3")},
			{DetalleVentaID: kk, Cantidad: d("3")},
			{DetalleVentaID: pd, Cantidad: d("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntregaEntregado, r.EstadoEntrega)
	assert.Equal(t, entity.VentaActiva, r.EstadoVenta)
	require.Len(t, r.Entrega.Detalles, 2)

	got, err := e.ventas.GetByID(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Len(t, got.Entregas, 2)
	for _, l := range got.Detalles {
		assert.True(t, l.Pendiente.IsZero())
	}

	pagada, err := e.ventas.RegistrarPago(ctx, e.fx.EmpresaID, v.ID, dto.PagoRequest{Monto: got.SaldoPendiente})
	require.NoError(t, err)
	assert.Equal(t, entity.PagoCancelado, pagada.EstadoPago)
	assert.Equal(t, entity.VentaCerrada, pagada.EstadoVenta)

	_, err = e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID, Detalles: []dto.DetalleVentaRequest{{ID: kk, ProductoID: e.fx.ProductoID, Cantidad: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEntregas_RevertirRecalcula(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t)
	kk := detalleDe(t, v, e.fx.ProductoID)

	r, err := e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("10")}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, e.ventas.Anular(ctx, e.fx.EmpresaID, v.ID), domain.ErrConflict)

	otra := e.store.AddEmpresa("20600000001")
	assert.ErrorIs(t, e.entregas.Delete(ctx, otra, r.Entrega.ID), domain.ErrNotFound)

	require.NoError(t, e.entregas.Delete(ctx, e.fx.EmpresaID, r.Entrega.ID))
	got, err := e.ventas.GetByID(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EntregaPendiente, got.EstadoEntrega)
	assert.Empty(t, got.Entregas)

	require.NoError(t, e.ventas.Anular(ctx, e.fx.EmpresaID, v.ID))
	_, err = e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = e.ventas.RegistrarPago(ctx, e.fx.EmpresaID, v.ID, dto.PagoRequest{Monto: d("10")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, e.ventas.Anular(ctx, e.fx.EmpresaID, v.ID), domain.ErrConflict)
}

func TestEntregas_RollbackSiFallaUnDetalle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t)
	kk := detalleDe(t, v, e.fx.ProductoID)

	e.store.FailOn = "CreateDetalleEntrega"
	_, err := e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("2")}},
	})
	require.Error(t, err)
	e.store.FailOn = ""

	list, err := e.entregas.ListByVenta(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCantidades_EscalaDeDosDecimales(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, c := range []string{"0.004", "10.005"} {
		_, err := e.ventas.Create(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateVentaRequest{
			ClienteID: e.fx.ClienteID, TipoVenta: "CREDITO", TipoComprobante: "BOLETA",
			Detalles: []dto.DetalleVentaRequest{{ProductoID: e.fx.ProductoID, Cantidad: d(c)}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, c)
	}
	list, err := e.ventas.List(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	v := e.ventaCredito(t)
	kk := detalleDe(t, v, e.fx.ProductoID)

	_, err = e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID, Detalles: []dto.DetalleVentaRequest{{ID: kk, ProductoID: e.fx.ProductoID, Cantidad: d("9.999")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("0.001")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// un ítem negativo no compensa a otro del mismo detalle
	_, err = e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{
			{DetalleVentaID: kk, Cantidad: d("5")},
			{DetalleVentaID: kk, Cantidad: d("-3")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("2.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntregaParcial, r.EstadoEntrega)
}

func TestPago_Limites(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t) // 12000 + 3750

	_, err := e.ventas.RegistrarPago(ctx, e.fx.EmpresaID, v.ID, dto.PagoRequest{Monto: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.ventas.RegistrarPago(ctx, e.fx.EmpresaID, v.ID, dto.PagoRequest{Monto: d("15750.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := e.ventas.RegistrarPago(ctx, e.fx.EmpresaID, v.ID, dto.PagoRequest{Monto: d("5750")})
	require.NoError(t, err)
	assert.Equal(t, entity.PagoParcial, p.EstadoPago)
	assert.True(t, p.SaldoPendiente.Equal(d("10000")))
}

func TestUpdate_ReglasDeLineas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t)
	kk := detalleDe(t, v, e.fx.ProductoID)
	pd := detalleDe(t, v, e.fx.Producto2ID)

	_, err := e.entregas.Registrar(ctx, e.fx.EmpresaID, e.fx.UsuarioID, dto.CreateEntregaRequest{
		VentaID: v.ID, Detalles: []dto.DetalleEntregaRequest{{DetalleVentaID: kk, Cantidad: d("6")}},
	})
	require.NoError(t, err)

	// bajar por debajo de lo entregado
	_, err = e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID,
		Detalles: []dto.DetalleVentaRequest{
			{ID: kk, ProductoID: e.fx.ProductoID, Cantidad: d("5")},
			{ID: pd, ProductoID: e.fx.Producto2ID, Cantidad: d("5")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrExceedsOrdered)

	// quitar una línea con entregas
	_, err = e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID,
		Detalles:  []dto.DetalleVentaRequest{{ID: pd, ProductoID: e.fx.Producto2ID, Cantidad: d("5")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// id ajeno a la venta
	_, err = e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID,
		Detalles:  []dto.DetalleVentaRequest{{ID: e.fx.ClienteID, ProductoID: e.fx.ProductoID, Cantidad: d("6")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// reducir a lo entregado, quitar la línea sin entregas y agregar flete
	up, err := e.ventas.Update(ctx, e.fx.EmpresaID, v.ID, dto.UpdateVentaRequest{
		ClienteID: e.fx.ClienteID,
		Adelanto:  dp("1000"),
		Detalles:  []dto.DetalleVentaRequest{{ID: kk, ProductoID: e.fx.ProductoID, Cantidad: d("6")}},
		Servicios: []dto.ServicioVentaRequest{{Tipo: "FLETE", Monto: d("200")}},
	})
	require.NoError(t, err)
	assert.True(t, up.Total.Equal(d("7400")), up.Total.String())
	assert.True(t, up.SaldoPendiente.Equal(d("6400")))
	assert.Equal(t, entity.EntregaEntregado, up.EstadoEntrega)
	assert.Equal(t, entity.PagoParcial, up.EstadoPago)
	assert.True(t, up.Comprobante.Total.Equal(d("7400")))
	assert.Equal(t, int64(1), up.Comprobante.Numero)

	got, err := e.ventas.GetByID(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Len(t, got.Detalles, 1)
	assert.Len(t, got.Servicios, 1)
}

func TestList_FiltrosYAislamiento(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	v := e.ventaCredito(t)

	list, err := e.ventas.List(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{EstadoPago: "pendiente", Desde: "2024-06-10", Hasta: "2024-06-10"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, "JUAN PEREZ QUISPE", list.Items[0].ClienteNombre)

	list, err = e.ventas.List(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{Desde: "2024-06-11"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = e.ventas.List(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{Desde: "2024-06-11", Hasta: "2024-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	otra := e.store.AddEmpresa("20600000001")
	_, err = e.ventas.GetByID(ctx, otra, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
