package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVentaRequest línea de producto. ID solo se envía al editar una línea existente.
type DetalleVentaRequest struct {
	ID             string          `json:"id" validate:"omitempty,uuid"`
	ProductoID     string          `json:"id_producto" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"` // 0 usa el precio del producto
}

// ServicioVentaRequest cargo adicional (flete, descarga).
type ServicioVentaRequest struct {
	Tipo        string          `json:"tipo" validate:"required,oneof=FLETE DESCARGA"`
	Descripcion string          `json:"descripcion" validate:"max=200"`
	Monto       decimal.Decimal `json:"monto"`
}

// CreateVentaRequest registro de una venta con su comprobante.
// Adelanto nulo en una venta al CONTADO significa pagada por completo.
type CreateVentaRequest struct {
	ClienteID       string                 `json:"id_cliente" validate:"required,uuid"`
	FechaVenta      string                 `json:"fecha_venta"`
	TipoVenta       string                 `json:"tipo_venta" validate:"required,oneof=CONTADO CREDITO"`
	TipoComprobante string                 `json:"tipo_comprobante" validate:"required,oneof=BOLETA FACTURA NOTA_VENTA"`
	Adelanto        *decimal.Decimal       `json:"adelanto"`
	Observaciones   string                 `json:"observaciones" validate:"max=500"`
	Detalles        []DetalleVentaRequest  `json:"detalles" validate:"required,min=1,dive"`
	Servicios       []ServicioVentaRequest `json:"servicios" validate:"dive"`
}

// UpdateVentaRequest edición de una venta activa. Detalles y servicios reemplazan a los actuales.
type UpdateVentaRequest struct {
	ClienteID     string                 `json:"id_cliente" validate:"required,uuid"`
	FechaVenta    string                 `json:"fecha_venta"`
	TipoVenta     string                 `json:"tipo_venta" validate:"omitempty,oneof=CONTADO CREDITO"`
	Adelanto      *decimal.Decimal       `json:"adelanto"`
	Observaciones string                 `json:"observaciones" validate:"max=500"`
	Detalles      []DetalleVentaRequest  `json:"detalles" validate:"required,min=1,dive"`
	Servicios     []ServicioVentaRequest `json:"servicios" validate:"dive"`
}

// PagoRequest pago a cuenta de la venta.
type PagoRequest struct {
	Monto decimal.Decimal `json:"monto"`
}

// VentaFilterRequest filtros del listado y la exportación.
type VentaFilterRequest struct {
	EstadoVenta   string `query:"estado_venta"`
	EstadoPago    string `query:"estado_pago"`
	EstadoEntrega string `query:"estado_entrega"`
	ClienteID     string `query:"id_cliente"`
	Desde         string `query:"desde"`
	Hasta         string `query:"hasta"`
	Limit         int    `query:"limit"`
	Offset        int    `query:"offset"`
}

// DetalleVentaResponse línea de la venta con lo entregado.
type DetalleVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"id_producto"`
	ProductoNombre string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Entregado      decimal.Decimal `json:"cantidad_entregada"`
	Pendiente      decimal.Decimal `json:"cantidad_pendiente"`
}

// ServicioVentaResponse salida de un servicio.
type ServicioVentaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
}

// ComprobanteResponse comprobante emitido para la venta.
type ComprobanteResponse struct {
	Tipo         string          `json:"tipo"`
	Serie        string          `json:"serie"`
	Numero       int64           `json:"numero"`
	Completo     string          `json:"numero_completo"`
	FechaEmision time.Time       `json:"fecha_emision"`
	OpGravada    decimal.Decimal `json:"op_gravada"`
	IGV          decimal.Decimal `json:"igv"`
	Total        decimal.Decimal `json:"total"`
}

// VentaResponse cabecera de la venta; el detalle se incluye en GET /:id.
type VentaResponse struct {
	ID             string                  `json:"id"`
	ClienteID      string                  `json:"id_cliente"`
	ClienteNombre  string                  `json:"cliente"`
	FechaVenta     time.Time               `json:"fecha_venta"`
	TipoVenta      string                  `json:"tipo_venta"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	TotalServicios decimal.Decimal         `json:"total_servicios"`
	Total          decimal.Decimal         `json:"total"`
	Adelanto       decimal.Decimal         `json:"adelanto"`
	SaldoPendiente decimal.Decimal         `json:"saldo_pendiente"`
	EstadoPago     string                  `json:"estado_pago"`
	EstadoEntrega  string                  `json:"estado_entrega"`
	EstadoVenta    string                  `json:"estado_venta"`
	Observaciones  string                  `json:"observaciones"`
	Comprobante    *ComprobanteResponse    `json:"comprobante,omitempty"`
	Detalles       []DetalleVentaResponse  `json:"detalles,omitempty"`
	Servicios      []ServicioVentaResponse `json:"servicios,omitempty"`
	Entregas       []EntregaResponse       `json:"entregas,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// VentaListResponse lista paginada de ventas.
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
