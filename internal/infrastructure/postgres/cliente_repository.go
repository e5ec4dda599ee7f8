package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, id_empresa, tipo_documento, numero_documento, nombre, direccion, telefono, email, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	if err := row.Scan(&c.ID, &c.EmpresaID, &c.TipoDocumento, &c.NumeroDocumento, &c.Nombre,
		&c.Direccion, &c.Telefono, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	_, err := r.q.Exec(ctx, `INSERT INTO clientes (`+clienteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.EmpresaID, c.TipoDocumento, c.NumeroDocumento, c.Nombre, c.Direccion, c.Telefono, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un cliente con %s %s", domain.ErrDuplicate, c.TipoDocumento, c.NumeroDocumento)
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente de la empresa.
func (r *ClienteRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Cliente, error) {
	return r.getOne(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1 AND id_empresa = $2`, id, empresaID)
}

// GetByDocumento obtiene un cliente por tipo y número de documento.
func (r *ClienteRepo) GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Cliente, error) {
	return r.getOne(ctx, `SELECT `+clienteColumns+` FROM clientes
		WHERE id_empresa = $1 AND tipo_documento = $2 AND numero_documento = $3`, empresaID, tipo, numero)
}

func (r *ClienteRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// ListByEmpresa lista clientes; search filtra por nombre o documento.
func (r *ClienteRepo) ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+clienteColumns+` FROM clientes
		WHERE id_empresa = $1 AND ($2 = '' OR nombre ILIKE $3 OR numero_documento ILIKE $3)
		ORDER BY nombre LIMIT $4 OFFSET $5`, empresaID, search, likePattern(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE clientes SET tipo_documento = $3, numero_documento = $4, nombre = $5, direccion = $6,
		       telefono = $7, email = $8, updated_at = $9
		WHERE id = $1 AND id_empresa = $2`,
		c.ID, c.EmpresaID, c.TipoDocumento, c.NumeroDocumento, c.Nombre, c.Direccion, c.Telefono, c.Email, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un cliente con %s %s", domain.ErrDuplicate, c.TipoDocumento, c.NumeroDocumento)
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente sin ventas.
func (r *ClienteRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente tiene ventas registradas", domain.ErrConflict)
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
