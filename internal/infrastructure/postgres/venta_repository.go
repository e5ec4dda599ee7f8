package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository (cabecera, detalles, servicios y comprobante).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaSelect = `
	SELECT v.id, v.id_empresa, v.id_cliente, c.nombre, v.fecha_venta, v.tipo_venta, v.subtotal, v.total_servicios,
	       v.total, v.adelanto, v.saldo_pendiente, v.estado_pago, v.estado_entrega, v.estado_venta, v.observaciones,
	       COALESCE(v.id_usuario::text, ''), v.created_at, v.updated_at
	FROM ventas v
	JOIN clientes c ON c.id = v.id_cliente`

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	if err := row.Scan(&v.ID, &v.EmpresaID, &v.ClienteID, &v.ClienteNombre, &v.FechaVenta, &v.TipoVenta,
		&v.Subtotal, &v.TotalServicios, &v.Total, &v.Adelanto, &v.SaldoPendiente, &v.EstadoPago,
		&v.EstadoEntrega, &v.EstadoVenta, &v.Observaciones, &v.UsuarioID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ventas (id, id_empresa, id_cliente, fecha_venta, tipo_venta, subtotal, total_servicios, total,
		                    adelanto, saldo_pendiente, estado_pago, estado_entrega, estado_venta, observaciones,
		                    id_usuario, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		v.ID, v.EmpresaID, v.ClienteID, v.FechaVenta, v.TipoVenta, v.Subtotal, v.TotalServicios, v.Total,
		v.Adelanto, v.SaldoPendiente, v.EstadoPago, v.EstadoEntrega, v.EstadoVenta, v.Observaciones,
		nullIfEmpty(v.UsuarioID), v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta de la empresa.
func (r *VentaRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Venta, error) {
	return r.getOne(ctx, ventaSelect+` WHERE v.id = $1 AND v.id_empresa = $2`, id, empresaID)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila de la venta.
func (r *VentaRepo) GetByIDForUpdate(ctx context.Context, empresaID, id string) (*entity.Venta, error) {
	return r.getOne(ctx, ventaSelect+` WHERE v.id = $1 AND v.id_empresa = $2 FOR UPDATE OF v`, id, empresaID)
}

func (r *VentaRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return v, nil
}

// Update guarda totales, pagos y estados de la cabecera.
func (r *VentaRepo) Update(ctx context.Context, v *entity.Venta) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ventas SET id_cliente = $3, fecha_venta = $4, tipo_venta = $5, subtotal = $6, total_servicios = $7,
		       total = $8, adelanto = $9, saldo_pendiente = $10, estado_pago = $11, estado_entrega = $12,
		       estado_venta = $13, observaciones = $14, updated_at = $15
		WHERE id = $1 AND id_empresa = $2`,
		v.ID, v.EmpresaID, v.ClienteID, v.FechaVenta, v.TipoVenta, v.Subtotal, v.TotalServicios, v.Total,
		v.Adelanto, v.SaldoPendiente, v.EstadoPago, v.EstadoEntrega, v.EstadoVenta, v.Observaciones, v.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const ventaWhere = `
	WHERE v.id_empresa = $1
	  AND ($2 = '' OR v.estado_venta = $2)
	  AND ($3 = '' OR v.estado_pago = $3)
	  AND ($4 = '' OR v.estado_entrega = $4)
	  AND ($5::uuid IS NULL OR v.id_cliente = $5::uuid)
	  AND ($6::timestamptz IS NULL OR v.fecha_venta >= $6)
	  AND ($7::timestamptz IS NULL OR v.fecha_venta <= $7)`

// List devuelve la página pedida y el total de filas que cumplen el filtro.
func (r *VentaRepo) List(ctx context.Context, empresaID string, f repository.VentaFilter) ([]*entity.Venta, int, error) {
	args := []any{empresaID, f.EstadoVenta, f.EstadoPago, f.EstadoEntrega, nullIfEmpty(f.ClienteID),
		nullTime(f.Desde), nullTime(f.Hasta)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ventas v`+ventaWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ventas: %w", err)
	}

	rows, err := r.q.Query(ctx, ventaSelect+ventaWhere+`
		ORDER BY v.fecha_venta DESC, v.created_at DESC
		LIMIT $8 OFFSET $9`, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// ListConComprobante lista ventas con su comprobante (LEFT JOIN) para la exportación.
func (r *VentaRepo) ListConComprobante(ctx context.Context, empresaID string, f repository.VentaFilter) ([]*entity.Venta, error) {
	rows, err := r.q.Query(ctx, `
	SELECT v.id, v.id_empresa, v.id_cliente, c.nombre, v.fecha_venta, v.tipo_venta, v.subtotal, v.total_servicios,
	       v.total, v.adelanto, v.saldo_pendiente, v.estado_pago, v.estado_entrega, v.estado_venta, v.observaciones,
	       COALESCE(v.id_usuario::text, ''), v.created_at, v.updated_at,
	       cv.id, cv.tipo, cv.serie, cv.numero, cv.fecha_emision, cv.op_gravada, cv.igv, cv.total
	FROM ventas v
	JOIN clientes c ON c.id = v.id_cliente
	LEFT JOIN comprobante_venta cv ON cv.id_venta = v.id`+ventaWhere+`
		ORDER BY v.fecha_venta DESC, v.created_at DESC
		LIMIT $8 OFFSET $9`,
		empresaID, f.EstadoVenta, f.EstadoPago, f.EstadoEntrega, nullIfEmpty(f.ClienteID),
		nullTime(f.Desde), nullTime(f.Hasta), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas con comprobante: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var (
			v       entity.Venta
			compID  *string
			tipo    *string
			serie   *string
			numero  *int64
			emision *time.Time
			base    decimal.NullDecimal
			igv     decimal.NullDecimal
			total   decimal.NullDecimal
		)
		if err := rows.Scan(&v.ID, &v.EmpresaID, &v.ClienteID, &v.ClienteNombre, &v.FechaVenta, &v.TipoVenta,
			&v.Subtotal, &v.TotalServicios, &v.Total, &v.Adelanto, &v.SaldoPendiente, &v.EstadoPago,
			&v.EstadoEntrega, &v.EstadoVenta, &v.Observaciones, &v.UsuarioID, &v.CreatedAt, &v.UpdatedAt,
			&compID, &tipo, &serie, &numero, &emision, &base, &igv, &total); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		if compID != nil {
			v.Comprobante = &entity.ComprobanteVenta{
				ID: *compID, VentaID: v.ID, Tipo: *tipo, Serie: *serie, Numero: *numero, FechaEmision: *emision,
				OpGravada: base.Decimal, IGV: igv.Decimal, Total: total.Decimal,
			}
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// CreateDetalle inserta una línea de la venta.
func (r *VentaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleVenta) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO detalle_venta (id, id_venta, id_producto, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto inexistente", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: insert detalle venta: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// UpdateDetalle actualiza producto, cantidad y precio de una línea.
func (r *VentaRepo) UpdateDetalle(ctx context.Context, d *entity.DetalleVenta) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE detalle_venta SET id_producto = $3, cantidad = $4, precio_unitario = $5, subtotal = $6
		WHERE id = $1 AND id_venta = $2`,
		d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto inexistente", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: update detalle venta: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("update detalle venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: detalle %s", domain.ErrNotFound, d.ID)
	}
	return nil
}

// DeleteDetalle elimina una línea. Falla con ErrConflict si tiene entregas.
func (r *VentaRepo) DeleteDetalle(ctx context.Context, ventaID, detalleID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM detalle_venta WHERE id = $1 AND id_venta = $2`, detalleID, ventaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el detalle %s tiene entregas registradas", domain.ErrConflict, detalleID)
		}
		return fmt.Errorf("delete detalle venta: %w", err)
	}
	return nil
}

// ListDetalles lista las líneas de la venta con el nombre del producto.
func (r *VentaRepo) ListDetalles(ctx context.Context, ventaID string) ([]*entity.DetalleVenta, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.id_venta, d.id_producto, p.nombre, d.cantidad, d.precio_unitario, d.subtotal
		FROM detalle_venta d
		JOIN productos p ON p.id = d.id_producto
		WHERE d.id_venta = $1
		ORDER BY p.nombre, d.id`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.ProductoNombre, &d.Cantidad,
			&d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *VentaRepo) CreateServicio(ctx context.Context, s *entity.ServicioVenta) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO servicio_venta (id, id_venta, tipo, descripcion, monto) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.VentaID, s.Tipo, s.Descripcion, s.Monto)
	if err != nil {
		return fmt.Errorf("insert servicio venta: %w", err)
	}
	return nil
}

func (r *VentaRepo) DeleteServicios(ctx context.Context, ventaID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM servicio_venta WHERE id_venta = $1`, ventaID); err != nil {
		return fmt.Errorf("delete servicios venta: %w", err)
	}
	return nil
}

func (r *VentaRepo) ListServicios(ctx context.Context, ventaID string) ([]*entity.ServicioVenta, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, id_venta, tipo, descripcion, monto FROM servicio_venta WHERE id_venta = $1 ORDER BY tipo, id`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list servicios venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServicioVenta
	for rows.Next() {
		var s entity.ServicioVenta
		if err := rows.Scan(&s.ID, &s.VentaID, &s.Tipo, &s.Descripcion, &s.Monto); err != nil {
			return nil, fmt.Errorf("scan servicio venta: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

const comprobanteColumns = `id, id_venta, tipo, serie, numero, fecha_emision, op_gravada, igv, total`

func (r *VentaRepo) CreateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error {
	_, err := r.q.Exec(ctx, `INSERT INTO comprobante_venta (`+comprobanteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.VentaID, c.Tipo, c.Serie, c.Numero, c.FechaEmision, c.OpGravada, c.IGV, c.Total)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la venta ya tiene comprobante", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

func (r *VentaRepo) GetComprobante(ctx context.Context, ventaID string) (*entity.ComprobanteVenta, error) {
	var c entity.ComprobanteVenta
	err := r.q.QueryRow(ctx, `SELECT `+comprobanteColumns+` FROM comprobante_venta WHERE id_venta = $1`, ventaID).
		Scan(&c.ID, &c.VentaID, &c.Tipo, &c.Serie, &c.Numero, &c.FechaEmision, &c.OpGravada, &c.IGV, &c.Total)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return &c, nil
}

// UpdateComprobante recalcula importes; tipo, serie y número no cambian.
func (r *VentaRepo) UpdateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error {
	_, err := r.q.Exec(ctx, `
		UPDATE comprobante_venta SET op_gravada = $2, igv = $3, total = $4 WHERE id_venta = $1`,
		c.VentaID, c.OpGravada, c.IGV, c.Total)
	if err != nil {
		return fmt.Errorf("update comprobante: %w", err)
	}
	return nil
}
