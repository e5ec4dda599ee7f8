// Package pdf genera la representación impresa del comprobante de venta
// (boleta, factura o nota de venta) en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Razón social + dirección     │  RUC / TIPO / SERIE-NÚMERO  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre, documento, dirección / fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unidad | Descripción | P.Unit | Importe       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Op. gravada / IGV / Total / Pagado / Saldo         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR + leyenda                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 150, Green: 52, Blue: 30} // rojo ladrillo
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var titulos = map[string]string{
	entity.ComprobanteBoleta:    "BOLETA DE VENTA ELECTRÓNICA",
	entity.ComprobanteFactura:   "FACTURA ELECTRÓNICA",
	entity.ComprobanteNotaVenta: "NOTA DE VENTA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa venta.ComprobantePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ venta.ComprobantePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateComprobantePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateComprobantePDF(_ context.Context, doc *venta.Documento) ([]byte, error) {
	if doc == nil || doc.Empresa == nil || doc.Comprobante == nil || doc.Venta == nil || doc.Cliente == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo(doc.Comprobante.Tipo)+" "+doc.Comprobante.NumeroCompleto(), true).
		WithAuthor(doc.Empresa.RazonSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y recuadro RUC / tipo / número (der).
func headerRow(doc *venta.Documento) core.Row {
	e := doc.Empresa
	return row.New(22).Add(
		col.New(7).Add(
			text.New(e.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(e.Direccion, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(e.Telefono, "—"), nonEmpty(e.Email, "—")), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RUC "+e.RUC, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(titulo(doc.Comprobante.Tipo), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 8,
			}),
			text.New(doc.Comprobante.NumeroCompleto(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 14,
			}),
		),
	)
}

// clienteRow: adquiriente y datos de la venta.
func clienteRow(doc *venta.Documento) core.Row {
	c := doc.Cliente
	return row.New(18).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s: %s   |   Dirección: %s", c.TipoDocumento, c.NumeroDocumento, nonEmpty(c.Direccion, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emisión: "+doc.Comprobante.FechaEmision.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Venta: "+doc.Venta.FechaVenta.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 6,
			}),
			text.New("Condición: "+doc.Venta.TipoVenta+"   Moneda: "+peru.Moneda, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Unidad", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de producto y una por servicio.
func tableDetailRows(doc *venta.Documento) []core.Row {
	cell := func(size int, s string, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(doc.Detalles)+len(doc.Servicios))
	for _, d := range doc.Detalles {
		rows = append(rows, row.New(7).Add(
			cell(1, formatCantidad(d.Cantidad), align.Center),
			cell(2, nonEmpty(d.UnidadMedida, entity.UnidadMillar), align.Center),
			cell(5, d.ProductoNombre, align.Left),
			cell(2, formatMoney(d.PrecioUnitario), align.Right),
			cell(2, formatMoney(d.Subtotal), align.Right),
		))
	}
	for _, s := range doc.Servicios {
		desc := s.Tipo
		if s.Descripcion != "" {
			desc += " - " + s.Descripcion
		}
		rows = append(rows, row.New(7).Add(
			cell(1, "1", align.Center),
			cell(2, "SERVICIO", align.Center),
			cell(5, desc, align.Left),
			cell(2, formatMoney(s.Monto), align.Right),
			cell(2, formatMoney(s.Monto), align.Right),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *venta.Documento) core.Row {
	comp, v := doc.Comprobante, doc.Venta

	labels := []string{"Op. gravada:", "IGV (18%):", "TOTAL:", "Pagado:", "Saldo:"}
	values := []string{formatMoney(comp.OpGravada), formatMoney(comp.IGV), formatMoney(comp.Total),
		formatMoney(v.Adelanto), formatMoney(v.SaldoPendiente)}
	if comp.Tipo == entity.ComprobanteNotaVenta {
		labels, values = labels[2:], values[2:]
	}

	lc, vc := col.New(3), col.New(3)
	for i := range labels {
		top := float64(i) * 5
		lc.Add(text.New(labels[i], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		vc.Add(text.New(values[i], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(28).Add(col.New(6), lc, vc)
}

// footerRows: QR con los datos del comprobante y leyenda.
func footerRows(doc *venta.Documento) []core.Row {
	leyenda := "Representación impresa del comprobante. Precios en soles con IGV incluido."
	if doc.Comprobante.Tipo == entity.ComprobanteNotaVenta {
		leyenda = "Documento interno sin valor tributario. Canjeable por boleta o factura."
	}
	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(qrData(doc), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(leyenda, props.Text{Size: 8, Top: 6, Left: 3, Color: colorGray}),
				text.New(nonEmpty(doc.Venta.Observaciones, ""), props.Text{Size: 8, Top: 14, Left: 3}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func titulo(tipo string) string {
	if t, ok := titulos[tipo]; ok {
		return t
	}
	return tipo
}

// qrData sigue el orden del QR de la representación impresa SUNAT:
// RUC|tipo|serie|número|IGV|total|fecha|tipo doc cliente|número doc cliente.
func qrData(doc *venta.Documento) string {
	c := doc.Comprobante
	return strings.Join([]string{
		doc.Empresa.RUC,
		peru.CodigoTipoComprobante[c.Tipo],
		c.Serie,
		fmt.Sprintf("%08d", c.Numero),
		c.IGV.StringFixed(2),
		c.Total.StringFixed(2),
		c.FechaEmision.Format("2006-01-02"),
		peru.CodigoTipoDocumento[doc.Cliente.TipoDocumento],
		doc.Cliente.NumeroDocumento,
	}, "|")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney: "S/ 12,150.00".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	ent, dec, _ := strings.Cut(s, ".")
	out := "S/ " + milesConComa(ent) + "." + dec
	if neg {
		out = "-" + out
	}
	return out
}

// formatCantidad quita ceros decimales innecesarios: "10", "2.5".
func formatCantidad(d decimal.Decimal) string {
	return d.String()
}

// milesConComa inserta comas de miles en un entero sin signo. Ej: "1000000" → "1,000,000"
func milesConComa(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
