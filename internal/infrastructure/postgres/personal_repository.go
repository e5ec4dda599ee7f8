package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.PersonalRepository = (*PersonalRepo)(nil)

// PersonalRepo implementación de PersonalRepository.
type PersonalRepo struct {
	q Querier
}

// NewPersonalRepository construye el adaptador.
func NewPersonalRepository(q Querier) *PersonalRepo {
	return &PersonalRepo{q: q}
}

const personalColumns = `id, id_empresa, nombre_completo, dni, cargo, telefono, fecha_ingreso, activo, created_at, updated_at`

func scanPersonal(row pgx.Row) (*entity.Personal, error) {
	var p entity.Personal
	if err := row.Scan(&p.ID, &p.EmpresaID, &p.NombreCompleto, &p.DNI, &p.Cargo, &p.Telefono,
		&p.FechaIngreso, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un trabajador.
func (r *PersonalRepo) Create(ctx context.Context, p *entity.Personal) error {
	_, err := r.q.Exec(ctx, `INSERT INTO personal (`+personalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.EmpresaID, p.NombreCompleto, p.DNI, p.Cargo, p.Telefono, nullTime(p.FechaIngreso), p.Activo, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe personal con DNI %s", domain.ErrDuplicate, p.DNI)
		}
		return fmt.Errorf("insert personal: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador de la empresa.
func (r *PersonalRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Personal, error) {
	p, err := scanPersonal(r.q.QueryRow(ctx,
		`SELECT `+personalColumns+` FROM personal WHERE id = $1 AND id_empresa = $2`, id, empresaID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personal: %w", err)
	}
	return p, nil
}

// ListByEmpresa lista el personal con paginación.
func (r *PersonalRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Personal, error) {
	rows, err := r.q.Query(ctx, `SELECT `+personalColumns+` FROM personal WHERE id_empresa = $1
		ORDER BY nombre_completo LIMIT $2 OFFSET $3`, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list personal: %w", err)
	}
	defer rows.Close()
	var list []*entity.Personal
	for rows.Next() {
		p, err := scanPersonal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan personal: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un trabajador.
func (r *PersonalRepo) Update(ctx context.Context, p *entity.Personal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE personal SET nombre_completo = $3, dni = $4, cargo = $5, telefono = $6, fecha_ingreso = $7,
		       activo = $8, updated_at = $9
		WHERE id = $1 AND id_empresa = $2`,
		p.ID, p.EmpresaID, p.NombreCompleto, p.DNI, p.Cargo, p.Telefono, nullTime(p.FechaIngreso), p.Activo, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe personal con DNI %s", domain.ErrDuplicate, p.DNI)
		}
		return fmt.Errorf("update personal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un trabajador sin cocciones asignadas.
func (r *PersonalRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM personal WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el trabajador figura como operador de cocciones, desactívelo en su lugar", domain.ErrConflict)
		}
		return fmt.Errorf("delete personal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
