// Package venta concentra las reglas de negocio de una venta: totales, desglose
// de IGV y la derivación de los estados de pago, entrega y venta. Toda escritura
// que modifique pagos o entregas debe pasar por AplicarPago / AplicarEntregas.
package venta

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// Linea cantidad vendida y ya entregada de un detalle de venta.
type Linea struct {
	DetalleID string
	Vendido   decimal.Decimal
	Entregado decimal.Decimal
}

// Pendiente cantidad que falta entregar.
func (l Linea) Pendiente() decimal.Decimal {
	p := l.Vendido.Sub(l.Entregado)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Totales calcula el subtotal de cada detalle y los totales de la venta.
// total = Σ(cantidad × precio) + Σ servicios.
func Totales(detalles []*entity.DetalleVenta, servicios []*entity.ServicioVenta) (subtotal, totalServicios, total decimal.Decimal) {
	for _, d := range detalles {
		d.Subtotal = d.Cantidad.Mul(d.PrecioUnitario).Round(2)
		subtotal = subtotal.Add(d.Subtotal)
	}
	for _, s := range servicios {
		totalServicios = totalServicios.Add(s.Monto)
	}
	return subtotal, totalServicios, subtotal.Add(totalServicios)
}

// DesgloseIGV separa base imponible e IGV de un total con impuesto incluido.
// La nota de venta no discrimina IGV.
func DesgloseIGV(tipoComprobante string, total decimal.Decimal) (opGravada, igv decimal.Decimal) {
	if tipoComprobante == entity.ComprobanteNotaVenta {
		return total, decimal.Zero
	}
	opGravada = total.Div(decimal.NewFromInt(1).Add(peru.TasaIGV)).Round(2)
	return opGravada, total.Sub(opGravada)
}

// EstadoPago deriva el estado de pago a partir del monto pagado.
func EstadoPago(total, pagado decimal.Decimal) (string, error) {
	if pagado.IsNegative() {
		return "", fmt.Errorf("%w: el monto pagado no puede ser negativo", domain.ErrInvalidInput)
	}
	if pagado.GreaterThan(total) {
		return "", fmt.Errorf("%w: el monto pagado (%s) supera el total (%s)", domain.ErrInvalidInput, pagado.StringFixed(2), total.StringFixed(2))
	}
	switch {
	case pagado.Equal(total):
		return entity.PagoCancelado, nil
	case pagado.IsZero():
		return entity.PagoPendiente, nil
	default:
		return entity.PagoParcial, nil
	}
}

// EstadoEntrega deriva el estado de entrega de las líneas de la venta.
func EstadoEntrega(lineas []Linea) string {
	if len(lineas) == 0 {
		return entity.EntregaPendiente
	}
	algo := false
	completo := true
	for _, l := range lineas {
		if l.Entregado.IsPositive() {
			algo = true
		}
		if l.Entregado.LessThan(l.Vendido) {
			completo = false
		}
	}
	switch {
	case !algo:
		return entity.EntregaPendiente
	case completo:
		return entity.EntregaEntregado
	default:
		return entity.EntregaParcial
	}
}

// EstadoVenta es la única derivación del estado de la venta:
// CERRADA si está cancelada y entregada, ACTIVA en otro caso. ANULADA es terminal.
func EstadoVenta(actual, estadoPago, estadoEntrega string) string {
	if actual == entity.VentaAnulada {
		return entity.VentaAnulada
	}
	if estadoPago == entity.PagoCancelado && estadoEntrega == entity.EntregaEntregado {
		return entity.VentaCerrada
	}
	return entity.VentaActiva
}

// AplicarPago recalcula saldo, estado de pago y estado de venta con v.Total y v.Adelanto.
func AplicarPago(v *entity.Venta) error {
	estado, err := EstadoPago(v.Total, v.Adelanto)
	if err != nil {
		return err
	}
	v.SaldoPendiente = v.Total.Sub(v.Adelanto)
	v.EstadoPago = estado
	v.EstadoVenta = EstadoVenta(v.EstadoVenta, v.EstadoPago, v.EstadoEntrega)
	return nil
}

// AplicarEntregas recalcula estado de entrega y estado de venta.
func AplicarEntregas(v *entity.Venta, lineas []Linea) {
	v.EstadoEntrega = EstadoEntrega(lineas)
	v.EstadoVenta = EstadoVenta(v.EstadoVenta, v.EstadoPago, v.EstadoEntrega)
}

// ValidarEntrega comprueba que cada cantidad solicitada sea positiva, pertenezca a
// una línea de la venta y que entregado + solicitado no supere lo vendido.
func ValidarEntrega(lineas []Linea, solicitado map[string]decimal.Decimal) error {
	if len(solicitado) == 0 {
		return fmt.Errorf("%w: la entrega debe tener al menos un detalle", domain.ErrInvalidInput)
	}
	porID := make(map[string]Linea, len(lineas))
	for _, l := range lineas {
		porID[l.DetalleID] = l
	}
	for id, cant := range solicitado {
		l, ok := porID[id]
		if !ok {
			return fmt.Errorf("%w: el detalle %s no pertenece a la venta", domain.ErrInvalidInput, id)
		}
		if !cant.IsPositive() {
			return fmt.Errorf("%w: la cantidad a entregar debe ser mayor a cero", domain.ErrInvalidInput)
		}
		if l.Entregado.Add(cant).GreaterThan(l.Vendido) {
			return fmt.Errorf("%w: detalle %s, pendiente %s, solicitado %s",
				domain.ErrExceedsOrdered, id, l.Pendiente().String(), cant.String())
		}
	}
	return nil
}

// ValidarCantidadEditada impide reducir una línea por debajo de lo ya entregado.
func ValidarCantidadEditada(detalleID string, nueva, entregado decimal.Decimal) error {
	if nueva.LessThan(entregado) {
		return fmt.Errorf("%w: detalle %s ya tiene %s entregado, no puede quedar en %s",
			domain.ErrExceedsOrdered, detalleID, entregado.String(), nueva.String())
	}
	return nil
}

// cantidadMaxima límite de NUMERIC(12,2).
var cantidadMaxima = decimal.RequireFromString("9999999999.99")

// ValidarCantidad exige una cantidad positiva con a lo sumo dos decimales,
// la misma escala con la que se persiste.
func ValidarCantidad(c decimal.Decimal) error {
	if !c.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !c.Round(2).Equal(c) {
		return fmt.Errorf("%w: la cantidad %s admite como máximo dos decimales", domain.ErrInvalidInput, c.String())
	}
	if c.GreaterThan(cantidadMaxima) {
		return fmt.Errorf("%w: la cantidad %s excede el máximo permitido", domain.ErrInvalidInput, c.String())
	}
	return nil
}

// SumarSolicitado agrupa cantidades por detalle (ids repetidos se suman).
// Cada ítem se valida antes de sumar.
func SumarSolicitado(items []Solicitud) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(items))
	for i, it := range items {
		if err := ValidarCantidad(it.Cantidad); err != nil {
			return nil, fmt.Errorf("detalles[%d]: %w", i, err)
		}
		out[it.DetalleID] = out[it.DetalleID].Add(it.Cantidad)
	}
	return out, nil
}

// Solicitud cantidad pedida para un detalle en una entrega.
type Solicitud struct {
	DetalleID string
	Cantidad  decimal.Decimal
}
