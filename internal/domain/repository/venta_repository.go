package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// VentaFilter filtros del listado de ventas. Campos vacíos no filtran.
type VentaFilter struct {
	EstadoVenta   string
	EstadoPago    string
	EstadoEntrega string
	ClienteID     string
	Desde         *time.Time
	Hasta         *time.Time
	Limit         int
	Offset        int
}

// VentaRepository define el puerto de persistencia de la venta con sus detalles,
// servicios y comprobante (usable con pool o tx).
type VentaRepository interface {
	Create(ctx context.Context, v *entity.Venta) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Venta, error)
	// GetByIDForUpdate bloquea la fila de la venta hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, empresaID, id string) (*entity.Venta, error)
	Update(ctx context.Context, v *entity.Venta) error
	List(ctx context.Context, empresaID string, f VentaFilter) ([]*entity.Venta, int, error)
	// ListConComprobante como List, con el comprobante en la misma consulta y sin contar el total.
	ListConComprobante(ctx context.Context, empresaID string, f VentaFilter) ([]*entity.Venta, error)

	CreateDetalle(ctx context.Context, d *entity.DetalleVenta) error
	UpdateDetalle(ctx context.Context, d *entity.DetalleVenta) error
	DeleteDetalle(ctx context.Context, ventaID, detalleID string) error
	ListDetalles(ctx context.Context, ventaID string) ([]*entity.DetalleVenta, error)

	CreateServicio(ctx context.Context, s *entity.ServicioVenta) error
	DeleteServicios(ctx context.Context, ventaID string) error
	ListServicios(ctx context.Context, ventaID string) ([]*entity.ServicioVenta, error)

	CreateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error
	GetComprobante(ctx context.Context, ventaID string) (*entity.ComprobanteVenta, error)
	UpdateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error
}

// NumeracionRepository correlativos de comprobantes por empresa y tipo.
type NumeracionRepository interface {
	// Siguiente bloquea (FOR UPDATE) la numeración del tipo, la crea con la serie por
	// defecto si no existe, la incrementa y devuelve serie y número asignados.
	Siguiente(ctx context.Context, empresaID, tipo string) (serie string, numero int64, err error)
}

// EntregaRepository define el puerto de persistencia de entregas de venta.
type EntregaRepository interface {
	Create(ctx context.Context, e *entity.EntregaVenta) error
	CreateDetalle(ctx context.Context, d *entity.DetalleEntregaVenta) error
	// GetByID valida el tenant por join con la venta.
	GetByID(ctx context.Context, empresaID, id string) (*entity.EntregaVenta, error)
	ListByVenta(ctx context.Context, ventaID string) ([]*entity.EntregaVenta, error)
	Delete(ctx context.Context, id string) error
	// EntregadoPorDetalle suma lo entregado por detalle de la venta.
	EntregadoPorDetalle(ctx context.Context, ventaID string) (map[string]decimal.Decimal, error)
}
