package venta

import (
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		ID:             v.ID,
		ClienteID:      v.ClienteID,
		ClienteNombre:  v.ClienteNombre,
		FechaVenta:     v.FechaVenta,
		TipoVenta:      v.TipoVenta,
		Subtotal:       v.Subtotal,
		TotalServicios: v.TotalServicios,
		Total:          v.Total,
		Adelanto:       v.Adelanto,
		SaldoPendiente: v.SaldoPendiente,
		EstadoPago:     v.EstadoPago,
		EstadoEntrega:  v.EstadoEntrega,
		EstadoVenta:    v.EstadoVenta,
		Observaciones:  v.Observaciones,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func toComprobanteResponse(c *entity.ComprobanteVenta) *dto.ComprobanteResponse {
	if c == nil {
		return nil
	}
	return &dto.ComprobanteResponse{
		Tipo:         c.Tipo,
		Serie:        c.Serie,
		Numero:       c.Numero,
		Completo:     c.NumeroCompleto(),
		FechaEmision: c.FechaEmision,
		OpGravada:    c.OpGravada,
		IGV:          c.IGV,
		Total:        c.Total,
	}
}

func toDetallesResponse(detalles []*entity.DetalleVenta, entregado map[string]decimal.Decimal) []dto.DetalleVentaResponse {
	out := make([]dto.DetalleVentaResponse, 0, len(detalles))
	for _, d := range detalles {
		e := entregado[d.ID]
		pendiente := d.Cantidad.Sub(e)
		if pendiente.IsNegative() {
			pendiente = decimal.Zero
		}
		out = append(out, dto.DetalleVentaResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			ProductoNombre: d.ProductoNombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
			Entregado:      e,
			Pendiente:      pendiente,
		})
	}
	return out
}

func toServiciosResponse(servicios []*entity.ServicioVenta) []dto.ServicioVentaResponse {
	out := make([]dto.ServicioVentaResponse, 0, len(servicios))
	for _, s := range servicios {
		out = append(out, dto.ServicioVentaResponse{ID: s.ID, Tipo: s.Tipo, Descripcion: s.Descripcion, Monto: s.Monto})
	}
	return out
}

func toEntregaResponse(e *entity.EntregaVenta) dto.EntregaResponse {
	out := dto.EntregaResponse{
		ID:            e.ID,
		VentaID:       e.VentaID,
		FechaEntrega:  e.FechaEntrega,
		Observaciones: e.Observaciones,
		UsuarioID:     e.UsuarioID,
		CreatedAt:     e.CreatedAt,
		Detalles:      make([]dto.DetalleEntregaResponse, 0, len(e.Detalles)),
	}
	for _, d := range e.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleEntregaResponse{
			ID:             d.ID,
			DetalleVentaID: d.DetalleVentaID,
			ProductoNombre: d.ProductoNombre,
			Cantidad:       d.Cantidad,
		})
	}
	return out
}
