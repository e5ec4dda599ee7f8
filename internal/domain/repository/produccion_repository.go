package repository

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// HornoRepository define el puerto de persistencia para Horno.
type HornoRepository interface {
	Create(ctx context.Context, h *entity.Horno) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Horno, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Horno, error)
	Update(ctx context.Context, h *entity.Horno) error
	Delete(ctx context.Context, empresaID, id string) error
}

// CoccionFilter filtros de listado de cocciones.
type CoccionFilter struct {
	HornoID string
	Estado  string
	Limit   int
	Offset  int
}

// CoccionRepository define el puerto de persistencia para cocciones y sus operadores.
type CoccionRepository interface {
	Create(ctx context.Context, c *entity.Coccion) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Coccion, error)
	List(ctx context.Context, empresaID string, f CoccionFilter) ([]*entity.Coccion, error)
	Update(ctx context.Context, c *entity.Coccion) error
	Delete(ctx context.Context, empresaID, id string) error
	// GetEnProcesoByHorno devuelve la cocción EN_PROCESO del horno, o nil.
	GetEnProcesoByHorno(ctx context.Context, empresaID, hornoID string) (*entity.Coccion, error)

	AddOperador(ctx context.Context, op *entity.CoccionOperador) error
	ListOperadores(ctx context.Context, coccionID string) ([]*entity.CoccionOperador, error)
	DeleteOperador(ctx context.Context, coccionID, operadorID string) (bool, error)
}
