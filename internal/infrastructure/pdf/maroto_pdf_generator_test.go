package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

func documento(tipo string) *venta.Documento {
	fecha := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	return &venta.Documento{
		Empresa: &entity.Empresa{RUC: "20131312955", RazonSocial: "LADRILLERA SAN PEDRO SAC", Direccion: "Av. Industrial 123, Lurín"},
		Cliente: &entity.Cliente{TipoDocumento: "DNI", NumeroDocumento: "46027897", Nombre: "JUAN PEREZ QUISPE"},
		Venta: &entity.Venta{
			FechaVenta: fecha, TipoVenta: entity.TipoVentaCredito,
			Total: decimal.NewFromInt(12150), Adelanto: decimal.NewFromInt(2000), SaldoPendiente: decimal.NewFromInt(10150),
		},
		Comprobante: &entity.ComprobanteVenta{
			Tipo: tipo, Serie: entity.SerieDefecto[tipo], Numero: 7, FechaEmision: fecha,
			OpGravada: decimal.RequireFromString("10296.61"), IGV: decimal.RequireFromString("1853.39"), Total: decimal.NewFromInt(12150),
		},
		Detalles: []venta.DetalleDocumento{{
			DetalleVenta: entity.DetalleVenta{
				ProductoNombre: "King Kong 18 huecos", Cantidad: decimal.NewFromInt(10),
				PrecioUnitario: decimal.NewFromInt(1200), Subtotal: decimal.NewFromInt(12000),
			},
			UnidadMedida: entity.UnidadMillar,
		}},
		Servicios: []*entity.ServicioVenta{{Tipo: entity.ServicioFlete, Descripcion: "Lurín", Monto: decimal.NewFromInt(150)}},
	}
}

func TestGenerateComprobantePDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	for _, tipo := range []string{entity.ComprobanteBoleta, entity.ComprobanteFactura, entity.ComprobanteNotaVenta} {
		t.Run(tipo, func(t *testing.T) {
			out, err := g.GenerateComprobantePDF(context.Background(), documento(tipo))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateComprobantePDF_Incompleto(t *testing.T) {
	doc := documento(entity.ComprobanteBoleta)
	doc.Comprobante = nil
	_, err := NewMarotoPDFGenerator().GenerateComprobantePDF(context.Background(), doc)
	assert.Error(t, err)
}

func TestQRData(t *testing.T) {
	got := qrData(documento(entity.ComprobanteBoleta))
	assert.Equal(t, "20131312955|03|B001|00000007|1853.39|12150.00|2024-06-10|1|46027897", got)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "S/ 12,150.00", formatMoney(decimal.NewFromInt(12150)))
	assert.Equal(t, "S/ 750.50", formatMoney(decimal.RequireFromString("750.5")))
	assert.Equal(t, "-S/ 1,000,000.00", formatMoney(decimal.NewFromInt(-1000000)))
}
