package postgres

import (
	"context"
	"fmt"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación de EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColumns = `id, razon_social, ruc, direccion, telefono, email, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `INSERT INTO empresas (` + empresaColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RazonSocial, e.RUC, e.Direccion, e.Telefono, e.Email, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una empresa con RUC %s", domain.ErrDuplicate, e.RUC)
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil, nil si no existe.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.getOne(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE id = $1`, id)
}

// GetByRUC obtiene una empresa por RUC.
func (r *EmpresaRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error) {
	return r.getOne(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE ruc = $1`, ruc)
}

func (r *EmpresaRepo) getOne(ctx context.Context, query string, arg string) (*entity.Empresa, error) {
	var e entity.Empresa
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&e.ID, &e.RazonSocial, &e.RUC, &e.Direccion, &e.Telefono, &e.Email, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// Update actualiza los datos editables (el RUC no cambia).
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET razon_social = $2, direccion = $3, telefono = $4, email = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, e.ID, e.RazonSocial, e.Direccion, e.Telefono, e.Email, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
