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

// HornoUseCase CRUD de hornos.
type HornoUseCase struct {
	repo repository.HornoRepository
}

// NewHornoUseCase construye el caso de uso.
func NewHornoUseCase(repo repository.HornoRepository) *HornoUseCase {
	return &HornoUseCase{repo: repo}
}

func aplicarHorno(h *entity.Horno, in dto.HornoRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := dto.Validate(in); err != nil {
		return err
	}
	h.Nombre = in.Nombre
	h.TipoCombustible = strings.TrimSpace(in.TipoCombustible)
	h.CapacidadLadrillos = in.CapacidadLadrillos
	h.CantidadHumeadores = in.CantidadHumeadores
	h.CantidadQuemadores = in.CantidadQuemadores
	if in.Estado != "" {
		h.Estado = in.Estado
	}
	return nil
}

// Create registra un horno activo (salvo que se indique otro estado).
func (uc *HornoUseCase) Create(ctx context.Context, empresaID string, in dto.HornoRequest) (*dto.HornoResponse, error) {
	now := time.Now()
	h := &entity.Horno{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,
		Estado:    entity.HornoActivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := aplicarHorno(h, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return toHornoResponse(h), nil
}

// GetByID obtiene un horno.
func (uc *HornoUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.HornoResponse, error) {
	h, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFound("horno")
	}
	return toHornoResponse(h), nil
}

// Update reemplaza los datos del horno.
func (uc *HornoUseCase) Update(ctx context.Context, empresaID, id string, in dto.HornoRequest) (*dto.HornoResponse, error) {
	h, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFound("horno")
	}
	if err := aplicarHorno(h, in); err != nil {
		return nil, err
	}
	h.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return toHornoResponse(h), nil
}

// List lista los hornos de la empresa.
func (uc *HornoUseCase) List(ctx context.Context, empresaID string) ([]dto.HornoResponse, error) {
	list, err := uc.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HornoResponse, 0, len(list))
	for _, h := range list {
		out = append(out, *toHornoResponse(h))
	}
	return out, nil
}

// Delete elimina un horno sin cocciones.
func (uc *HornoUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

func toHornoResponse(h *entity.Horno) *dto.HornoResponse {
	return &dto.HornoResponse{
		ID:                 h.ID,
		Nombre:             h.Nombre,
		TipoCombustible:    h.TipoCombustible,
		CapacidadLadrillos: h.CapacidadLadrillos,
		CantidadHumeadores: h.CantidadHumeadores,
		CantidadQuemadores: h.CantidadQuemadores,
		Estado:             h.Estado,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}
