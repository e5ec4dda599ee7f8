package postgres

import (
	"context"
	"fmt"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var (
	_ repository.RolRepository     = (*RolRepo)(nil)
	_ repository.PermisoRepository = (*PermisoRepo)(nil)
)

// RolRepo implementación de RolRepository (usable con pool o tx).
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador.
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

const rolColumns = `id, id_empresa, nombre, descripcion, created_at, updated_at`

// Create persiste un rol.
func (r *RolRepo) Create(ctx context.Context, rol *entity.Rol) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (`+rolColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		rol.ID, rol.EmpresaID, rol.Nombre, rol.Descripcion, rol.CreatedAt, rol.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el rol %q", domain.ErrDuplicate, rol.Nombre)
		}
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

// GetByID obtiene un rol de la empresa.
func (r *RolRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Rol, error) {
	return r.getOne(ctx, `SELECT `+rolColumns+` FROM roles WHERE id = $1 AND id_empresa = $2`, id, empresaID)
}

// GetByNombre obtiene un rol por nombre dentro de la empresa.
func (r *RolRepo) GetByNombre(ctx context.Context, empresaID, nombre string) (*entity.Rol, error) {
	return r.getOne(ctx, `SELECT `+rolColumns+` FROM roles WHERE nombre = $1 AND id_empresa = $2`, nombre, empresaID)
}

func (r *RolRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&rol.ID, &rol.EmpresaID, &rol.Nombre, &rol.Descripcion, &rol.CreatedAt, &rol.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &rol, nil
}

// ListByEmpresa lista los roles de la empresa.
func (r *RolRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Rol, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rolColumns+` FROM roles WHERE id_empresa = $1 ORDER BY nombre`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.EmpresaID, &rol.Nombre, &rol.Descripcion, &rol.CreatedAt, &rol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &rol)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *RolRepo) Update(ctx context.Context, rol *entity.Rol) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE roles SET nombre = $3, descripcion = $4, updated_at = $5 WHERE id = $1 AND id_empresa = $2`,
		rol.ID, rol.EmpresaID, rol.Nombre, rol.Descripcion, rol.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el rol %q", domain.ErrDuplicate, rol.Nombre)
		}
		return fmt.Errorf("update rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el rol. Falla con ErrConflict si aún hay usuarios asignados.
func (r *RolRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el rol tiene usuarios asignados", domain.ErrConflict)
		}
		return fmt.Errorf("delete rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetPermisos devuelve los códigos asignados al rol, ordenados.
func (r *RolRepo) GetPermisos(ctx context.Context, rolID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rp.codigo_permiso
		FROM rol_permiso rp
		JOIN permisos p ON p.codigo = rp.codigo_permiso
		WHERE rp.id_rol = $1
		ORDER BY rp.codigo_permiso`, rolID)
	if err != nil {
		return nil, fmt.Errorf("get permisos de rol: %w", err)
	}
	defer rows.Close()
	codigos := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		codigos = append(codigos, c)
	}
	return codigos, rows.Err()
}

// SetPermisos reemplaza los permisos del rol.
func (r *RolRepo) SetPermisos(ctx context.Context, rolID string, codigos []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rol_permiso WHERE id_rol = $1`, rolID); err != nil {
		return fmt.Errorf("limpiar permisos de rol: %w", err)
	}
	if len(codigos) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO rol_permiso (id_rol, codigo_permiso)
		SELECT $1, unnest($2::varchar[])
		ON CONFLICT DO NOTHING`, rolID, codigos)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: permiso desconocido", domain.ErrInvalidInput)
		}
		return fmt.Errorf("asignar permisos: %w", err)
	}
	return nil
}

// PermisoRepo catálogo global de permisos.
type PermisoRepo struct {
	q Querier
}

// NewPermisoRepository construye el adaptador.
func NewPermisoRepository(q Querier) *PermisoRepo {
	return &PermisoRepo{q: q}
}

// Upsert inserta o actualiza cada permiso del catálogo.
func (r *PermisoRepo) Upsert(ctx context.Context, permisos []entity.Permiso) error {
	for _, p := range permisos {
		_, err := r.q.Exec(ctx, `
			INSERT INTO permisos (codigo, modulo, descripcion) VALUES ($1, $2, $3)
			ON CONFLICT (codigo) DO UPDATE SET modulo = EXCLUDED.modulo, descripcion = EXCLUDED.descripcion`,
			p.Codigo, p.Modulo, p.Descripcion)
		if err != nil {
			return fmt.Errorf("upsert permiso %s: %w", p.Codigo, err)
		}
	}
	return nil
}

// List devuelve todo el catálogo.
func (r *PermisoRepo) List(ctx context.Context) ([]entity.Permiso, error) {
	rows, err := r.q.Query(ctx, `SELECT codigo, modulo, descripcion FROM permisos ORDER BY modulo, codigo`)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	defer rows.Close()
	var list []entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.Codigo, &p.Modulo, &p.Descripcion); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
