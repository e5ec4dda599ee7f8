package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorColumns = `id, id_empresa, tipo_documento, numero_documento, razon_social, direccion, telefono, email, activo, created_at, updated_at`

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	if err := row.Scan(&p.ID, &p.EmpresaID, &p.TipoDocumento, &p.NumeroDocumento, &p.RazonSocial,
		&p.Direccion, &p.Telefono, &p.Email, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un proveedor.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	_, err := r.q.Exec(ctx, `INSERT INTO proveedores (`+proveedorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.EmpresaID, p.TipoDocumento, p.NumeroDocumento, p.RazonSocial, p.Direccion, p.Telefono, p.Email, p.Activo,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un proveedor con %s %s", domain.ErrDuplicate, p.TipoDocumento, p.NumeroDocumento)
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor de la empresa.
func (r *ProveedorRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Proveedor, error) {
	return r.getOne(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1 AND id_empresa = $2`, id, empresaID)
}

// GetByDocumento obtiene un proveedor por documento.
func (r *ProveedorRepo) GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Proveedor, error) {
	return r.getOne(ctx, `SELECT `+proveedorColumns+` FROM proveedores
		WHERE id_empresa = $1 AND tipo_documento = $2 AND numero_documento = $3`, empresaID, tipo, numero)
}

func (r *ProveedorRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return p, nil
}

// ListByEmpresa lista proveedores; search filtra por razón social o documento.
func (r *ProveedorRepo) ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+proveedorColumns+` FROM proveedores
		WHERE id_empresa = $1 AND ($2 = '' OR razon_social ILIKE $3 OR numero_documento ILIKE $3)
		ORDER BY razon_social LIMIT $4 OFFSET $5`, empresaID, search, likePattern(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE proveedores SET tipo_documento = $3, numero_documento = $4, razon_social = $5, direccion = $6,
		       telefono = $7, email = $8, activo = $9, updated_at = $10
		WHERE id = $1 AND id_empresa = $2`,
		p.ID, p.EmpresaID, p.TipoDocumento, p.NumeroDocumento, p.RazonSocial, p.Direccion, p.Telefono, p.Email, p.Activo, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un proveedor con %s %s", domain.ErrDuplicate, p.TipoDocumento, p.NumeroDocumento)
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor.
func (r *ProveedorRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
