package venta_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/venta"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotales(t *testing.T) {
	detalles := []*entity.DetalleVenta{
		{Cantidad: d("2.5"), PrecioUnitario: d("480")},
		{Cantidad: d("1"), PrecioUnitario: d("350.50")},
	}
	servicios := []*entity.ServicioVenta{{Monto: d("150")}, {Monto: d("80")}}

	sub, serv, total := venta.Totales(detalles, servicios)

	assert.True(t, d("1200").Equal(detalles[0].Subtotal))
	assert.True(t, d("1550.50").Equal(sub), sub.String())
	assert.True(t, d("230").Equal(serv))
	assert.True(t, d("1780.50").Equal(total))
}

func TestDesgloseIGV(t *testing.T) {
	op, igv := venta.DesgloseIGV(entity.ComprobanteFactura, d("1180"))
	assert.True(t, d("1000").Equal(op), op.String())
	assert.True(t, d("180").Equal(igv), igv.String())

	op, igv = venta.DesgloseIGV(entity.ComprobanteBoleta, d("100"))
	assert.True(t, d("84.75").Equal(op), op.String())
	assert.True(t, op.Add(igv).Equal(d("100")), "base + igv debe cuadrar con el total")

	op, igv = venta.DesgloseIGV(entity.ComprobanteNotaVenta, d("100"))
	assert.True(t, d("100").Equal(op))
	assert.True(t, igv.IsZero())
}

func TestEstadoPago(t *testing.T) {
	cases := []struct {
		pagado string
		want   string
	}{
		{"0", entity.PagoPendiente},
		{"0.01", entity.PagoParcial},
		{"999.99", entity.PagoParcial},
		{"1000", entity.PagoCancelado},
	}
	for _, tc := range cases {
		got, err := venta.EstadoPago(d("1000"), d(tc.pagado))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.pagado)
	}

	_, err := venta.EstadoPago(d("1000"), d("1000.01"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = venta.EstadoPago(d("1000"), d("-1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEstadoEntrega(t *testing.T) {
	assert.Equal(t, entity.EntregaPendiente, venta.EstadoEntrega(nil))
	assert.Equal(t, entity.EntregaPendiente, venta.EstadoEntrega([]venta.Linea{
		{Vendido: d("5"), Entregado: d("0")},
	}))
	assert.Equal(t, entity.EntregaParcial, venta.EstadoEntrega([]venta.Linea{
		{Vendido: d("5"), Entregado: d("5")},
		{Vendido: d("3"), Entregado: d("0")},
	}))
	assert.Equal(t, entity.EntregaEntregado, venta.EstadoEntrega([]venta.Linea{
		{Vendido: d("5"), Entregado: d("5")},
		{Vendido: d("3"), Entregado: d("3")},
	}))
}

func TestEstadoVenta_TablaCompleta(t *testing.T) {
	pagos := []string{entity.PagoPendiente, entity.PagoParcial, entity.PagoCancelado}
	entregas := []string{entity.EntregaPendiente, entity.EntregaParcial, entity.EntregaEntregado}
	for _, p := range pagos {
		for _, e := range entregas {
			want := entity.VentaActiva
			if p == entity.PagoCancelado && e == entity.EntregaEntregado {
				want = entity.VentaCerrada
			}
			assert.Equal(t, want, venta.EstadoVenta(entity.VentaActiva, p, e), p+"/"+e)
			assert.Equal(t, entity.VentaAnulada, venta.EstadoVenta(entity.VentaAnulada, p, e))
		}
	}
}

func TestEstadoVenta_CerradaVuelveAActiva(t *testing.T) {
	// Revertir una entrega reabre la venta.
	assert.Equal(t, entity.VentaActiva, venta.EstadoVenta(entity.VentaCerrada, entity.PagoCancelado, entity.EntregaParcial))
}

func TestAplicarPagoYEntregas(t *testing.T) {
	v := &entity.Venta{Total: d("500"), Adelanto: d("500"), EstadoVenta: entity.VentaActiva, EstadoEntrega: entity.EntregaPendiente}
	require.NoError(t, venta.AplicarPago(v))
	assert.Equal(t, entity.PagoCancelado, v.EstadoPago)
	assert.True(t, v.SaldoPendiente.IsZero())
	assert.Equal(t, entity.VentaActiva, v.EstadoVenta)

	venta.AplicarEntregas(v, []venta.Linea{{DetalleID: "a", Vendido: d("2"), Entregado: d("2")}})
	assert.Equal(t, entity.EntregaEntregado, v.EstadoEntrega)
	assert.Equal(t, entity.VentaCerrada, v.EstadoVenta)
}

func TestValidarEntrega(t *testing.T) {
	lineas := []venta.Linea{
		{DetalleID: "a", Vendido: d("10"), Entregado: d("4")},
		{DetalleID: "b", Vendido: d("2"), Entregado: d("0")},
	}

	assert.NoError(t, venta.ValidarEntrega(lineas, map[string]decimal.Decimal{"a": d("6"), "b": d("1")}))

	err := venta.ValidarEntrega(lineas, map[string]decimal.Decimal{"a": d("6.5")})
	assert.True(t, errors.Is(err, domain.ErrExceedsOrdered))

	err = venta.ValidarEntrega(lineas, map[string]decimal.Decimal{"z": d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = venta.ValidarEntrega(lineas, map[string]decimal.Decimal{"b": d("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = venta.ValidarEntrega(lineas, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSumarSolicitado_AgrupaRepetidos(t *testing.T) {
	got, err := venta.SumarSolicitado([]venta.Solicitud{
		{DetalleID: "a", Cantidad: d("3")},
		{DetalleID: "a", Cantidad: d("2")},
		{DetalleID: "b", Cantidad: d("1")},
	})
	require.NoError(t, err)
	assert.True(t, d("5").Equal(got["a"]))
	assert.True(t, d("1").Equal(got["b"]))
}

func TestSumarSolicitado_RechazaItemNoPositivo(t *testing.T) {
	// 5 + (-3) no se acepta como 2
	_, err := venta.SumarSolicitado([]venta.Solicitud{
		{DetalleID: "a", Cantidad: d("5")},
		{DetalleID: "a", Cantidad: d("-3")},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = venta.SumarSolicitado([]venta.Solicitud{{DetalleID: "a", Cantidad: d("0.001")}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidarCantidad(t *testing.T) {
	tests := []struct {
		cantidad string
		ok       bool
	}{
		{"1", true},
		{"2.5", true},
		{"10.25", true},
		{"3.000", true},
		{"0.01", true},
		{"9999999999.99", true},
		{"0", false},
		{"-1", false},
		{"0.004", false},
		{"10.005", false},
		{"10000000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.cantidad, func(t *testing.T) {
			err := venta.ValidarCantidad(d(tt.cantidad))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestValidarCantidadEditada(t *testing.T) {
	assert.NoError(t, venta.ValidarCantidadEditada("a", d("4"), d("4")))
	assert.True(t, errors.Is(venta.ValidarCantidadEditada("a", d("3"), d("4")), domain.ErrExceedsOrdered))
}
