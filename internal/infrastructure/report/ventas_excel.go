// Package report exportaciones a Excel.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

const hoja = "Ventas"

var encabezados = []string{
	"Fecha", "Comprobante", "Cliente", "Tipo venta", "Subtotal", "Servicios",
	"Total", "Pagado", "Saldo", "Estado pago", "Estado entrega", "Estado venta", "Observaciones",
}

// VentasExcelWriter implementa venta.VentasReportWriter con excelize.
type VentasExcelWriter struct{}

var _ venta.VentasReportWriter = (*VentasExcelWriter)(nil)

// NewVentasExcelWriter crea el writer.
func NewVentasExcelWriter() *VentasExcelWriter { return &VentasExcelWriter{} }

// WriteVentas arma el libro: título con la empresa, encabezados en la fila 3,
// una fila por venta y una fila final de totales.
func (w *VentasExcelWriter) WriteVentas(empresa *entity.Empresa, ventas []dto.VentaResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	titulo := "Reporte de ventas"
	if empresa != nil {
		titulo = fmt.Sprintf("Reporte de ventas - %s (RUC %s)", empresa.RazonSocial, empresa.RUC)
	}
	_ = f.SetCellValue(hoja, "A1", titulo)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	fecha, err := f.NewStyle(&excelize.Style{NumFmt: 14}) // dd/mm/yyyy según locale
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}

	for i, h := range encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(hoja, cell, h)
	}
	_ = f.SetCellStyle(hoja, "A1", "A1", bold)
	_ = f.SetCellStyle(hoja, "A3", "M3", bold)

	fila := 4
	for _, v := range ventas {
		comprobante := ""
		if v.Comprobante != nil {
			comprobante = v.Comprobante.Completo
		}
		valores := []interface{}{
			v.FechaVenta, comprobante, v.ClienteNombre, v.TipoVenta,
			v.Subtotal.InexactFloat64(), v.TotalServicios.InexactFloat64(), v.Total.InexactFloat64(),
			v.Adelanto.InexactFloat64(), v.SaldoPendiente.InexactFloat64(),
			v.EstadoPago, v.EstadoEntrega, v.EstadoVenta, v.Observaciones,
		}
		for i, val := range valores {
			cell, _ := excelize.CoordinatesToCellName(i+1, fila)
			_ = f.SetCellValue(hoja, cell, val)
		}
		fila++
	}

	ultima := fila - 1
	_ = f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), "TOTALES")
	if ultima >= 4 {
		for _, col := range []string{"E", "F", "G", "H", "I"} {
			_ = f.SetCellFormula(hoja, fmt.Sprintf("%s%d", col, fila), fmt.Sprintf("SUM(%s4:%s%d)", col, col, ultima))
		}
		_ = f.SetCellStyle(hoja, "A4", fmt.Sprintf("A%d", ultima), fecha)
	}
	_ = f.SetCellStyle(hoja, "E4", fmt.Sprintf("I%d", fila), money)
	_ = f.SetCellStyle(hoja, fmt.Sprintf("D%d", fila), fmt.Sprintf("D%d", fila), bold)

	_ = f.SetColWidth(hoja, "A", "B", 14)
	_ = f.SetColWidth(hoja, "C", "C", 34)
	_ = f.SetColWidth(hoja, "D", "I", 12)
	_ = f.SetColWidth(hoja, "J", "L", 15)
	_ = f.SetColWidth(hoja, "M", "M", 40)
	_ = f.SetPanes(hoja, &excelize.Panes{Freeze: true, YSplit: 3, TopLeftCell: "A4", ActivePane: "bottomLeft"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
