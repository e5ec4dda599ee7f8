package repository

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// RolRepository define el puerto de persistencia para roles y su asignación de permisos.
type RolRepository interface {
	Create(ctx context.Context, r *entity.Rol) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Rol, error)
	GetByNombre(ctx context.Context, empresaID, nombre string) (*entity.Rol, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Rol, error)
	Update(ctx context.Context, r *entity.Rol) error
	Delete(ctx context.Context, empresaID, id string) error

	// GetPermisos devuelve los códigos de permiso asignados al rol.
	GetPermisos(ctx context.Context, rolID string) ([]string, error)
	// SetPermisos reemplaza la asignación completa (usar dentro de una transacción).
	SetPermisos(ctx context.Context, rolID string, codigos []string) error
}

// PermisoRepository catálogo global de permisos.
type PermisoRepository interface {
	// Upsert sincroniza el catálogo embebido con la tabla permisos.
	Upsert(ctx context.Context, permisos []entity.Permiso) error
	List(ctx context.Context) ([]entity.Permiso, error)
}
