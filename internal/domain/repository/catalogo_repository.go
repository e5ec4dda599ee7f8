package repository

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Producto, error)
	ListByEmpresa(ctx context.Context, empresaID string, soloActivos bool, limit, offset int) ([]*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	Delete(ctx context.Context, empresaID, id string) error
}

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Cliente, error)
	GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Cliente, error)
	// ListByEmpresa filtra opcionalmente por nombre o número de documento (search).
	ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	Delete(ctx context.Context, empresaID, id string) error
}

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Proveedor, error)
	GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Proveedor, error)
	ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	Delete(ctx context.Context, empresaID, id string) error
}

// PersonalRepository define el puerto de persistencia para Personal.
type PersonalRepository interface {
	Create(ctx context.Context, p *entity.Personal) error
	GetByID(ctx context.Context, empresaID, id string) (*entity.Personal, error)
	ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Personal, error)
	Update(ctx context.Context, p *entity.Personal) error
	Delete(ctx context.Context, empresaID, id string) error
}
