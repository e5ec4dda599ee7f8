package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	TipoVentaContado = "CONTADO"
	TipoVentaCredito = "CREDITO"
)

// Estados de pago (derivados del monto pagado).
const (
	PagoPendiente = "PENDIENTE"
	PagoParcial   = "PARCIAL"
	PagoCancelado = "CANCELADO"
)

// Estados de entrega (derivados de las entregas registradas).
const (
	EntregaPendiente = "PENDIENTE"
	EntregaParcial   = "PARCIAL"
	EntregaEntregado = "ENTREGADO"
)

// Estados de la venta. Se derivan en internal/domain/venta.
const (
	VentaActiva  = "ACTIVA"
	VentaCerrada = "CERRADA"
	VentaAnulada = "ANULADA"
)

// Venta cabecera de una venta de ladrillos.
type Venta struct {
	ID             string
	EmpresaID      string
	ClienteID      string
	ClienteNombre  string // solo lectura
	FechaVenta     time.Time
	TipoVenta      string
	Subtotal       decimal.Decimal // Σ detalles
	TotalServicios decimal.Decimal // Σ servicios (flete, descarga)
	Total          decimal.Decimal
	Adelanto       decimal.Decimal // monto pagado acumulado
	SaldoPendiente decimal.Decimal
	EstadoPago     string
	EstadoEntrega  string
	EstadoVenta    string
	Observaciones  string
	UsuarioID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Comprobante *ComprobanteVenta // solo lectura, lo carga ListConComprobante
}

// DetalleVenta línea de producto de una venta.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	ProductoNombre string // solo lectura
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// Tipos de servicio adicional.
const (
	ServicioFlete    = "FLETE"
	ServicioDescarga = "DESCARGA"
)

// ServicioVenta cargo adicional de la venta.
type ServicioVenta struct {
	ID          string
	VentaID     string
	Tipo        string
	Descripcion string
	Monto       decimal.Decimal
}

// Tipos de comprobante.
const (
	ComprobanteBoleta    = "BOLETA"
	ComprobanteFactura   = "FACTURA"
	ComprobanteNotaVenta = "NOTA_VENTA"
)

// SerieDefecto serie inicial por tipo de comprobante.
var SerieDefecto = map[string]string{
	ComprobanteBoleta:    "B001",
	ComprobanteFactura:   "F001",
	ComprobanteNotaVenta: "NV01",
}

// ComprobanteVenta documento emitido para la venta (1:1).
type ComprobanteVenta struct {
	ID           string
	VentaID      string
	Tipo         string
	Serie        string
	Numero       int64
	FechaEmision time.Time
	OpGravada    decimal.Decimal
	IGV          decimal.Decimal
	Total        decimal.Decimal
}

// NumeroCompleto devuelve "SERIE-00000123".
func (c *ComprobanteVenta) NumeroCompleto() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s-%08d", c.Serie, c.Numero)
}

// NumeracionComprobante correlativo por empresa y tipo de comprobante.
type NumeracionComprobante struct {
	EmpresaID    string
	Tipo         string
	Serie        string
	UltimoNumero int64
}
