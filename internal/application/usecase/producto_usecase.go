package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para el catálogo de ladrillos.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un producto. La unidad por defecto es el millar.
func (uc *ProductoUseCase) Create(ctx context.Context, empresaID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.PrecioUnitario.IsNegative() {
		return nil, invalid("precio_unitario no puede ser negativo")
	}
	if in.UnidadMedida == "" {
		in.UnidadMedida = entity.UnidadMillar
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	now := time.Now()
	p := &entity.Producto{
		ID:             uuid.New().String(),
		EmpresaID:      empresaID,
		Nombre:         in.Nombre,
		Descripcion:    strings.TrimSpace(in.Descripcion),
		UnidadMedida:   in.UnidadMedida,
		PrecioUnitario: in.PrecioUnitario.Round(2),
		Activo:         activo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// GetByID obtiene un producto.
func (uc *ProductoUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("producto")
	}
	return toProductoResponse(p), nil
}

// Update actualiza los campos enviados.
func (uc *ProductoUseCase) Update(ctx context.Context, empresaID, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("producto")
	}
	if in.Nombre != nil {
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		p.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	if in.UnidadMedida != nil {
		p.UnidadMedida = *in.UnidadMedida
	}
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.IsNegative() {
			return nil, invalid("precio_unitario no puede ser negativo")
		}
		p.PrecioUnitario = in.PrecioUnitario.Round(2)
	}
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// List lista productos con paginación.
func (uc *ProductoUseCase) List(ctx context.Context, empresaID string, soloActivos bool, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, soloActivos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un producto sin ventas.
func (uc *ProductoUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		UnidadMedida:   p.UnidadMedida,
		PrecioUnitario: p.PrecioUnitario,
		Activo:         p.Activo,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
