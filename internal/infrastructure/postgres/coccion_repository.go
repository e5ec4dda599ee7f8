package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.CoccionRepository = (*CoccionRepo)(nil)

// CoccionRepo implementación de CoccionRepository.
type CoccionRepo struct {
	q Querier
}

// NewCoccionRepository construye el adaptador.
func NewCoccionRepository(q Querier) *CoccionRepo {
	return &CoccionRepo{q: q}
}

const coccionSelect = `
	SELECT c.id, c.id_empresa, c.id_horno, h.nombre, c.fecha_encendido, c.fecha_apagado, c.humeada_inicio,
	       c.quema_inicio, c.cantidad_ladrillos, c.estado, c.observaciones, c.created_at, c.updated_at
	FROM cocciones c
	JOIN hornos h ON h.id = c.id_horno`

func scanCoccion(row pgx.Row) (*entity.Coccion, error) {
	var c entity.Coccion
	if err := row.Scan(&c.ID, &c.EmpresaID, &c.HornoID, &c.HornoNombre, &c.FechaEncendido, &c.FechaApagado,
		&c.HumeadaInicio, &c.QuemaInicio, &c.CantidadLadrillos, &c.Estado, &c.Observaciones,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una cocción. El índice parcial impide dos EN_PROCESO por horno.
func (r *CoccionRepo) Create(ctx context.Context, c *entity.Coccion) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cocciones (id, id_empresa, id_horno, fecha_encendido, fecha_apagado, humeada_inicio, quema_inicio,
		                       cantidad_ladrillos, estado, observaciones, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.EmpresaID, c.HornoID, c.FechaEncendido, nullTime(c.FechaApagado), nullTime(c.HumeadaInicio),
		nullTime(c.QuemaInicio), c.CantidadLadrillos, c.Estado, c.Observaciones, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el horno ya tiene una cocción en proceso", domain.ErrConflict)
		}
		return fmt.Errorf("insert coccion: %w", err)
	}
	return nil
}

func (r *CoccionRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Coccion, error) {
	return r.getOne(ctx, coccionSelect+` WHERE c.id = $1 AND c.id_empresa = $2`, id, empresaID)
}

func (r *CoccionRepo) GetEnProcesoByHorno(ctx context.Context, empresaID, hornoID string) (*entity.Coccion, error) {
	return r.getOne(ctx, coccionSelect+` WHERE c.id_horno = $1 AND c.id_empresa = $2 AND c.estado = 'EN_PROCESO'`,
		hornoID, empresaID)
}

func (r *CoccionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Coccion, error) {
	c, err := scanCoccion(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coccion: %w", err)
	}
	return c, nil
}

// List lista cocciones por fecha de encendido descendente.
func (r *CoccionRepo) List(ctx context.Context, empresaID string, f repository.CoccionFilter) ([]*entity.Coccion, error) {
	rows, err := r.q.Query(ctx, coccionSelect+`
		WHERE c.id_empresa = $1
		  AND ($2::uuid IS NULL OR c.id_horno = $2::uuid)
		  AND ($3 = '' OR c.estado = $3)
		ORDER BY c.fecha_encendido DESC
		LIMIT $4 OFFSET $5`, empresaID, nullIfEmpty(f.HornoID), f.Estado, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list cocciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Coccion
	for rows.Next() {
		c, err := scanCoccion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coccion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CoccionRepo) Update(ctx context.Context, c *entity.Coccion) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE cocciones SET fecha_encendido = $3, fecha_apagado = $4, humeada_inicio = $5, quema_inicio = $6,
		       cantidad_ladrillos = $7, estado = $8, observaciones = $9, updated_at = $10
		WHERE id = $1 AND id_empresa = $2`,
		c.ID, c.EmpresaID, c.FechaEncendido, nullTime(c.FechaApagado), nullTime(c.HumeadaInicio),
		nullTime(c.QuemaInicio), c.CantidadLadrillos, c.Estado, c.Observaciones, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update coccion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cocción y sus operadores (cascade).
func (r *CoccionRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cocciones WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete coccion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CoccionRepo) AddOperador(ctx context.Context, op *entity.CoccionOperador) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO coccion_operadores (id, id_coccion, id_personal, funcion, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		op.ID, op.CoccionID, op.PersonalID, op.Funcion, op.Fecha, op.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cocción o personal inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert operador: %w", err)
	}
	return nil
}

func (r *CoccionRepo) ListOperadores(ctx context.Context, coccionID string) ([]*entity.CoccionOperador, error) {
	rows, err := r.q.Query(ctx, `
		SELECT o.id, o.id_coccion, o.id_personal, p.nombre_completo, o.funcion, o.fecha, o.created_at
		FROM coccion_operadores o
		JOIN personal p ON p.id = o.id_personal
		WHERE o.id_coccion = $1
		ORDER BY o.fecha, p.nombre_completo`, coccionID)
	if err != nil {
		return nil, fmt.Errorf("list operadores: %w", err)
	}
	defer rows.Close()
	var list []*entity.CoccionOperador
	for rows.Next() {
		var o entity.CoccionOperador
		if err := rows.Scan(&o.ID, &o.CoccionID, &o.PersonalID, &o.PersonalNombre, &o.Funcion, &o.Fecha, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operador: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *CoccionRepo) DeleteOperador(ctx context.Context, coccionID, operadorID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM coccion_operadores WHERE id = $1 AND id_coccion = $2`, operadorID, coccionID)
	if err != nil {
		return false, fmt.Errorf("delete operador: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
