package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// ProveedorUseCase casos de uso de proveedores de insumos.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

func normalizarProveedor(in *dto.ProveedorRequest) error {
	in.TipoDocumento = strings.ToUpper(strings.TrimSpace(in.TipoDocumento))
	in.NumeroDocumento = strings.TrimSpace(in.NumeroDocumento)
	in.RazonSocial = strings.TrimSpace(in.RazonSocial)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	if err := peru.ValidateDocumento(in.TipoDocumento, in.NumeroDocumento); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// Create registra un proveedor.
func (uc *ProveedorUseCase) Create(ctx context.Context, empresaID string, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if err := normalizarProveedor(&in); err != nil {
		return nil, err
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	now := time.Now()
	p := &entity.Proveedor{
		ID:              uuid.New().String(),
		EmpresaID:       empresaID,
		TipoDocumento:   in.TipoDocumento,
		NumeroDocumento: in.NumeroDocumento,
		RazonSocial:     in.RazonSocial,
		Direccion:       strings.TrimSpace(in.Direccion),
		Telefono:        strings.TrimSpace(in.Telefono),
		Email:           strings.TrimSpace(in.Email),
		Activo:          activo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// GetByID obtiene un proveedor.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.ProveedorResponse, error) {
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("proveedor")
	}
	return toProveedorResponse(p), nil
}

// Update reemplaza los datos del proveedor.
func (uc *ProveedorUseCase) Update(ctx context.Context, empresaID, id string, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if err := normalizarProveedor(&in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("proveedor")
	}
	p.TipoDocumento = in.TipoDocumento
	p.NumeroDocumento = in.NumeroDocumento
	p.RazonSocial = in.RazonSocial
	p.Direccion = strings.TrimSpace(in.Direccion)
	p.Telefono = strings.TrimSpace(in.Telefono)
	p.Email = strings.TrimSpace(in.Email)
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// List lista proveedores.
func (uc *ProveedorUseCase) List(ctx context.Context, empresaID, search string, page dto.PageRequest) (*dto.ProveedorListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return &dto.ProveedorListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un proveedor.
func (uc *ProveedorUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:              p.ID,
		TipoDocumento:   p.TipoDocumento,
		NumeroDocumento: p.NumeroDocumento,
		RazonSocial:     p.RazonSocial,
		Direccion:       p.Direccion,
		Telefono:        p.Telefono,
		Email:           p.Email,
		Activo:          p.Activo,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
