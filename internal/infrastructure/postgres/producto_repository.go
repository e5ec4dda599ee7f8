package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador.
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, id_empresa, nombre, descripcion, unidad_medida, precio_unitario, activo, created_at, updated_at`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	if err := row.Scan(&p.ID, &p.EmpresaID, &p.Nombre, &p.Descripcion, &p.UnidadMedida,
		&p.PrecioUnitario, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	_, err := r.q.Exec(ctx, `INSERT INTO productos (`+productoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.EmpresaID, p.Nombre, p.Descripcion, p.UnidadMedida, p.PrecioUnitario, p.Activo, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el producto %q", domain.ErrDuplicate, p.Nombre)
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductoRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(ctx,
		`SELECT `+productoColumns+` FROM productos WHERE id = $1 AND id_empresa = $2`, id, empresaID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// ListByEmpresa lista productos con paginación.
func (r *ProductoRepo) ListByEmpresa(ctx context.Context, empresaID string, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productoColumns+` FROM productos
		WHERE id_empresa = $1 AND ($2 = FALSE OR activo)
		ORDER BY nombre LIMIT $3 OFFSET $4`, empresaID, soloActivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE productos SET nombre = $3, descripcion = $4, unidad_medida = $5, precio_unitario = $6, activo = $7, updated_at = $8
		WHERE id = $1 AND id_empresa = $2`,
		p.ID, p.EmpresaID, p.Nombre, p.Descripcion, p.UnidadMedida, p.PrecioUnitario, p.Activo, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el producto %q", domain.ErrDuplicate, p.Nombre)
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto sin ventas asociadas.
func (r *ProductoRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto tiene ventas registradas, desactívelo en su lugar", domain.ErrConflict)
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
