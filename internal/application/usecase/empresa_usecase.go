package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// EmpresaUseCase lectura y edición de la empresa de la sesión.
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Get devuelve la empresa actual.
func (uc *EmpresaUseCase) Get(ctx context.Context, empresaID string) (*dto.EmpresaResponse, error) {
	e, err := uc.repo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("empresa")
	}
	return toEmpresaResponse(e), nil
}

// Update modifica los datos de contacto; el RUC es inmutable.
func (uc *EmpresaUseCase) Update(ctx context.Context, empresaID string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("empresa")
	}
	if in.RazonSocial != nil {
		e.RazonSocial = strings.TrimSpace(*in.RazonSocial)
	}
	if in.Direccion != nil {
		e.Direccion = strings.TrimSpace(*in.Direccion)
	}
	if in.Telefono != nil {
		e.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.Email != nil {
		e.Email = strings.TrimSpace(*in.Email)
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmpresaResponse(e), nil
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:          e.ID,
		RazonSocial: e.RazonSocial,
		RUC:         e.RUC,
		Direccion:   e.Direccion,
		Telefono:    e.Telefono,
		Email:       e.Email,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
