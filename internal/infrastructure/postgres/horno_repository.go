package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.HornoRepository = (*HornoRepo)(nil)

// HornoRepo implementación de HornoRepository.
type HornoRepo struct {
	q Querier
}

// NewHornoRepository construye el adaptador.
func NewHornoRepository(q Querier) *HornoRepo {
	return &HornoRepo{q: q}
}

const hornoColumns = `id, id_empresa, nombre, tipo_combustible, capacidad_ladrillos, cantidad_humeadores,
	cantidad_quemadores, estado, created_at, updated_at`

func scanHorno(row pgx.Row) (*entity.Horno, error) {
	var h entity.Horno
	if err := row.Scan(&h.ID, &h.EmpresaID, &h.Nombre, &h.TipoCombustible, &h.CapacidadLadrillos,
		&h.CantidadHumeadores, &h.CantidadQuemadores, &h.Estado, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HornoRepo) Create(ctx context.Context, h *entity.Horno) error {
	_, err := r.q.Exec(ctx, `INSERT INTO hornos (`+hornoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		h.ID, h.EmpresaID, h.Nombre, h.TipoCombustible, h.CapacidadLadrillos, h.CantidadHumeadores,
		h.CantidadQuemadores, h.Estado, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el horno %q", domain.ErrDuplicate, h.Nombre)
		}
		return fmt.Errorf("insert horno: %w", err)
	}
	return nil
}

func (r *HornoRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Horno, error) {
	h, err := scanHorno(r.q.QueryRow(ctx,
		`SELECT `+hornoColumns+` FROM hornos WHERE id = $1 AND id_empresa = $2`, id, empresaID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get horno: %w", err)
	}
	return h, nil
}

func (r *HornoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Horno, error) {
	rows, err := r.q.Query(ctx, `SELECT `+hornoColumns+` FROM hornos WHERE id_empresa = $1 ORDER BY nombre`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list hornos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Horno
	for rows.Next() {
		h, err := scanHorno(rows)
		if err != nil {
			return nil, fmt.Errorf("scan horno: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *HornoRepo) Update(ctx context.Context, h *entity.Horno) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE hornos SET nombre = $3, tipo_combustible = $4, capacidad_ladrillos = $5, cantidad_humeadores = $6,
		       cantidad_quemadores = $7, estado = $8, updated_at = $9
		WHERE id = $1 AND id_empresa = $2`,
		h.ID, h.EmpresaID, h.Nombre, h.TipoCombustible, h.CapacidadLadrillos, h.CantidadHumeadores,
		h.CantidadQuemadores, h.Estado, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el horno %q", domain.ErrDuplicate, h.Nombre)
		}
		return fmt.Errorf("update horno: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HornoRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM hornos WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el horno tiene cocciones registradas, desactívelo en su lugar", domain.ErrConflict)
		}
		return fmt.Errorf("delete horno: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
