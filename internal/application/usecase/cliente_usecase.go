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

// ClienteUseCase casos de uso de clientes. El documento se valida según su tipo.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

func normalizarCliente(in *dto.ClienteRequest) error {
	in.TipoDocumento = strings.ToUpper(strings.TrimSpace(in.TipoDocumento))
	in.NumeroDocumento = strings.ToUpper(strings.TrimSpace(in.NumeroDocumento))
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	if err := peru.ValidateDocumento(in.TipoDocumento, in.NumeroDocumento); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// Create registra un cliente.
func (uc *ClienteUseCase) Create(ctx context.Context, empresaID string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	if err := normalizarCliente(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Cliente{
		ID:              uuid.New().String(),
		EmpresaID:       empresaID,
		TipoDocumento:   in.TipoDocumento,
		NumeroDocumento: in.NumeroDocumento,
		Nombre:          in.Nombre,
		Direccion:       strings.TrimSpace(in.Direccion),
		Telefono:        strings.TrimSpace(in.Telefono),
		Email:           strings.TrimSpace(in.Email),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClienteUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("cliente")
	}
	return toClienteResponse(c), nil
}

// Update reemplaza los datos del cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, empresaID, id string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	if err := normalizarCliente(&in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("cliente")
	}
	c.TipoDocumento = in.TipoDocumento
	c.NumeroDocumento = in.NumeroDocumento
	c.Nombre = in.Nombre
	c.Direccion = strings.TrimSpace(in.Direccion)
	c.Telefono = strings.TrimSpace(in.Telefono)
	c.Email = strings.TrimSpace(in.Email)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// List lista clientes; search filtra por nombre o documento.
func (uc *ClienteUseCase) List(ctx context.Context, empresaID, search string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClienteResponse(c))
	}
	return &dto.ClienteListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un cliente sin ventas.
func (uc *ClienteUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		Nombre:          c.Nombre,
		Direccion:       c.Direccion,
		Telefono:        c.Telefono,
		Email:           c.Email,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
