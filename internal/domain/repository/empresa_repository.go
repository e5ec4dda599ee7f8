package repository

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa (tenant).
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error)
	Update(ctx context.Context, e *entity.Empresa) error
}
