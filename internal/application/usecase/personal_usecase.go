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

// PersonalUseCase casos de uso del personal de planta.
type PersonalUseCase struct {
	repo repository.PersonalRepository
}

// NewPersonalUseCase construye el caso de uso.
func NewPersonalUseCase(repo repository.PersonalRepository) *PersonalUseCase {
	return &PersonalUseCase{repo: repo}
}

func (uc *PersonalUseCase) aplicar(p *entity.Personal, in dto.PersonalRequest) error {
	in.NombreCompleto = strings.TrimSpace(in.NombreCompleto)
	in.DNI = strings.TrimSpace(in.DNI)
	if err := dto.Validate(in); err != nil {
		return err
	}
	fecha, err := dto.ParseFechaOpcional(in.FechaIngreso)
	if err != nil {
		return err
	}
	p.NombreCompleto = in.NombreCompleto
	p.DNI = in.DNI
	p.Cargo = strings.TrimSpace(in.Cargo)
	p.Telefono = strings.TrimSpace(in.Telefono)
	p.FechaIngreso = fecha
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	return nil
}

// Create registra un trabajador.
func (uc *PersonalUseCase) Create(ctx context.Context, empresaID string, in dto.PersonalRequest) (*dto.PersonalResponse, error) {
	now := time.Now()
	p := &entity.Personal{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.aplicar(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPersonalResponse(p), nil
}

// GetByID obtiene un trabajador.
func (uc *PersonalUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.PersonalResponse, error) {
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("personal")
	}
	return toPersonalResponse(p), nil
}

// Update reemplaza los datos del trabajador.
func (uc *PersonalUseCase) Update(ctx context.Context, empresaID, id string, in dto.PersonalRequest) (*dto.PersonalResponse, error) {
	p, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("personal")
	}
	if err := uc.aplicar(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPersonalResponse(p), nil
}

// List lista el personal.
func (uc *PersonalUseCase) List(ctx context.Context, empresaID string, page dto.PageRequest) (*dto.PersonalListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PersonalResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPersonalResponse(p))
	}
	return &dto.PersonalListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un trabajador.
func (uc *PersonalUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

func toPersonalResponse(p *entity.Personal) *dto.PersonalResponse {
	return &dto.PersonalResponse{
		ID:             p.ID,
		NombreCompleto: p.NombreCompleto,
		DNI:            p.DNI,
		Cargo:          p.Cargo,
		Telefono:       p.Telefono,
		FechaIngreso:   p.FechaIngreso,
		Activo:         p.Activo,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
