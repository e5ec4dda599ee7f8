package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioSelect = `
	SELECT u.id, u.id_empresa, u.nombre_completo, u.usuario, u.password_hash, u.email,
	       u.id_rol, COALESCE(r.nombre, ''), u.activo, u.created_at, u.updated_at
	FROM usuarios u
	LEFT JOIN roles r ON r.id = u.id_rol`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.EmpresaID, &u.NombreCompleto, &u.Usuario, &u.PasswordHash, &u.Email,
		&u.RolID, &u.RolNombre, &u.Activo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, id_empresa, nombre_completo, usuario, password_hash, email, id_rol, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.EmpresaID, u.NombreCompleto, u.Usuario, u.PasswordHash, u.Email, u.RolID, u.Activo,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el usuario %q ya existe", domain.ErrDuplicate, u.Usuario)
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa. Devuelve nil, nil si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, usuarioSelect+` WHERE u.id = $1 AND u.id_empresa = $2`, id, empresaID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByUsuario obtiene un usuario por login (cualquier empresa).
func (r *UsuarioRepo) GetByUsuario(ctx context.Context, usuario string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, usuarioSelect+` WHERE u.usuario = $1`, usuario))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by login: %w", err)
	}
	return u, nil
}

// ListByEmpresa lista usuarios por empresa con paginación.
func (r *UsuarioRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Usuario, error) {
	rows, err := r.q.Query(ctx, usuarioSelect+` WHERE u.id_empresa = $1 ORDER BY u.nombre_completo LIMIT $2 OFFSET $3`,
		empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza datos del usuario (sin password).
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET nombre_completo = $3, usuario = $4, email = $5, id_rol = $6, activo = $7, updated_at = $8
		WHERE id = $1 AND id_empresa = $2`
	tag, err := r.q.Exec(ctx, query, u.ID, u.EmpresaID, u.NombreCompleto, u.Usuario, u.Email, u.RolID, u.Activo, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el usuario %q ya existe", domain.ErrDuplicate, u.Usuario)
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UsuarioRepo) UpdatePassword(ctx context.Context, empresaID, id, hash string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE usuarios SET password_hash = $3, updated_at = now() WHERE id = $1 AND id_empresa = $2`,
		id, empresaID, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un usuario.
func (r *UsuarioRepo) Delete(ctx context.Context, empresaID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM usuarios WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByRol cuenta usuarios que referencian el rol.
func (r *UsuarioRepo) CountByRol(ctx context.Context, empresaID, rolID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE id_empresa = $1 AND id_rol = $2`, empresaID, rolID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count usuarios por rol: %w", err)
	}
	return n, nil
}
