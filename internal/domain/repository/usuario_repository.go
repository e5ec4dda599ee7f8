package repository

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
// Salvo GetByUsuario (login), todas las consultas filtran por empresa.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Usuario, error)
	// GetByUsuario busca por nombre de login en todo el sistema.
	GetByUsuario(ctx context.Context, usuario string) (*entity.Usuario, error)
	ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	UpdatePassword(ctx context.Context, empresaID, id, hash string) error
	Delete(ctx context.Context, empresaID, id string) error
	CountByRol(ctx context.Context, empresaID, rolID string) (int, error)
}
