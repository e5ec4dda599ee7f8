package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.EntregaRepository = (*EntregaRepo)(nil)

// EntregaRepo implementación de EntregaRepository.
type EntregaRepo struct {
	q Querier
}

// NewEntregaRepository construye el adaptador.
func NewEntregaRepository(q Querier) *EntregaRepo {
	return &EntregaRepo{q: q}
}

func (r *EntregaRepo) Create(ctx context.Context, e *entity.EntregaVenta) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO entrega_venta (id, id_venta, fecha_entrega, observaciones, id_usuario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.VentaID, e.FechaEntrega, e.Observaciones, nullIfEmpty(e.UsuarioID), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert entrega: %w", err)
	}
	return nil
}

func (r *EntregaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleEntregaVenta) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO detalle_entrega_venta (id, id_entrega, id_detalle_venta, cantidad) VALUES ($1, $2, $3, $4)`,
		d.ID, d.EntregaID, d.DetalleVentaID, d.Cantidad)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: detalle de venta inexistente", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: insert detalle entrega: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert detalle entrega: %w", err)
	}
	return nil
}

// GetByID obtiene la entrega con sus detalles; el tenant se valida por la venta.
func (r *EntregaRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.EntregaVenta, error) {
	var e entity.EntregaVenta
	err := r.q.QueryRow(ctx, `
		SELECT e.id, e.id_venta, e.fecha_entrega, e.observaciones, COALESCE(e.id_usuario::text, ''), e.created_at
		FROM entrega_venta e
		JOIN ventas v ON v.id = e.id_venta
		WHERE e.id = $1 AND v.id_empresa = $2`, id, empresaID).
		Scan(&e.ID, &e.VentaID, &e.FechaEntrega, &e.Observaciones, &e.UsuarioID, &e.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrega: %w", err)
	}
	detalles, err := r.detalles(ctx, `WHERE de.id_entrega = $1`, e.ID)
	if err != nil {
		return nil, err
	}
	e.Detalles = detalles[e.ID]
	return &e, nil
}

// ListByVenta lista las entregas de la venta con sus detalles, por fecha.
func (r *EntregaRepo) ListByVenta(ctx context.Context, ventaID string) ([]*entity.EntregaVenta, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, id_venta, fecha_entrega, observaciones, COALESCE(id_usuario::text, ''), created_at
		FROM entrega_venta WHERE id_venta = $1
		ORDER BY fecha_entrega, created_at`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}
	var list []*entity.EntregaVenta
	for rows.Next() {
		var e entity.EntregaVenta
		if err := rows.Scan(&e.ID, &e.VentaID, &e.FechaEntrega, &e.Observaciones, &e.UsuarioID, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entrega: %w", err)
		}
		list = append(list, &e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}

	detalles, err := r.detalles(ctx, `JOIN entrega_venta e ON e.id = de.id_entrega WHERE e.id_venta = $1`, ventaID)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		e.Detalles = detalles[e.ID]
	}
	return list, nil
}

// detalles agrupa por id de entrega los detalles que cumplen where.
func (r *EntregaRepo) detalles(ctx context.Context, where string, arg string) (map[string][]entity.DetalleEntregaVenta, error) {
	rows, err := r.q.Query(ctx, `
		SELECT de.id, de.id_entrega, de.id_detalle_venta, p.nombre, de.cantidad
		FROM detalle_entrega_venta de
		JOIN detalle_venta dv ON dv.id = de.id_detalle_venta
		JOIN productos p ON p.id = dv.id_producto `+where+`
		ORDER BY p.nombre`, arg)
	if err != nil {
		return nil, fmt.Errorf("list detalles entrega: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DetalleEntregaVenta)
	for rows.Next() {
		var d entity.DetalleEntregaVenta
		if err := rows.Scan(&d.ID, &d.EntregaID, &d.DetalleVentaID, &d.ProductoNombre, &d.Cantidad); err != nil {
			return nil, fmt.Errorf("scan detalle entrega: %w", err)
		}
		out[d.EntregaID] = append(out[d.EntregaID], d)
	}
	return out, rows.Err()
}

// Delete elimina la entrega y sus detalles (cascade).
func (r *EntregaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM entrega_venta WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrega: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntregaRepo) EntregadoPorDetalle(ctx context.Context, ventaID string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT de.id_detalle_venta, SUM(de.cantidad)
		FROM detalle_entrega_venta de
		JOIN entrega_venta e ON e.id = de.id_entrega
		WHERE e.id_venta = $1
		GROUP BY de.id_detalle_venta`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("entregado por detalle: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			id  string
			sum decimal.Decimal
		)
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan entregado: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}
