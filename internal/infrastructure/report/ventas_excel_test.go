package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

func TestWriteVentas(t *testing.T) {
	empresa := &entity.Empresa{RUC: "20131312955", RazonSocial: "LADRILLERA SAN PEDRO SAC"}
	ventas := []dto.VentaResponse{
		{
			FechaVenta: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), ClienteNombre: "JUAN PEREZ QUISPE",
			TipoVenta: "CREDITO", Total: decimal.NewFromInt(15750), Adelanto: decimal.NewFromInt(1000),
			SaldoPendiente: decimal.NewFromInt(14750), EstadoPago: "PARCIAL", EstadoEntrega: "PENDIENTE", EstadoVenta: "ACTIVA",
			Comprobante: &dto.ComprobanteResponse{Completo: "B001-00000001"},
		},
		{
			FechaVenta: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), ClienteNombre: "CONSTRUCTORA ANDINA SA",
			TipoVenta: "CONTADO", Total: decimal.NewFromInt(12150), Adelanto: decimal.NewFromInt(12150),
			EstadoPago: "CANCELADO", EstadoEntrega: "ENTREGADO", EstadoVenta: "CERRADA",
		},
	}
	out, err := NewVentasExcelWriter().WriteVentas(empresa, ventas)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	titulo, _ := f.GetCellValue(hoja, "A1")
	assert.Contains(t, titulo, "20131312955")
	h, _ := f.GetCellValue(hoja, "C3")
	assert.Equal(t, "Cliente", h)
	c, _ := f.GetCellValue(hoja, "B4")
	assert.Equal(t, "B001-00000001", c)
	c, _ = f.GetCellValue(hoja, "C5")
	assert.Equal(t, "CONSTRUCTORA ANDINA SA", c)
	c, _ = f.GetCellValue(hoja, "D6")
	assert.Equal(t, "TOTALES", c)
	formula, _ := f.GetCellFormula(hoja, "G6")
	assert.Equal(t, "SUM(G4:G5)", formula)
}

func TestWriteVentas_Vacio(t *testing.T) {
	out, err := NewVentasExcelWriter().WriteVentas(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
