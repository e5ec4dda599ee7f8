package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// RolTxRunner ejecuta fn dentro de una transacción con el repositorio de roles.
type RolTxRunner interface {
	RunRol(ctx context.Context, fn func(rolRepo repository.RolRepository) error) error
}

// RolUseCase gestión de roles y de su asignación de permisos.
// Los permisos viajan en el token: un cambio cierra las sesiones abiertas del rol
// (con WithSesiones) y rige desde el próximo login.
type RolUseCase struct {
	repo        repository.RolRepository
	usuarioRepo repository.UsuarioRepository
	tx          RolTxRunner
	sesiones    SesionInvalidator
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(repo repository.RolRepository, usuarioRepo repository.UsuarioRepository, tx RolTxRunner) *RolUseCase {
	return &RolUseCase{repo: repo, usuarioRepo: usuarioRepo, tx: tx}
}

// WithSesiones activa el cierre de sesiones del rol al cambiar sus permisos.
func (uc *RolUseCase) WithSesiones(s SesionInvalidator) *RolUseCase {
	uc.sesiones = s
	return uc
}

// Create crea el rol y, si vienen, sus permisos en una sola transacción.
func (uc *RolUseCase) Create(ctx context.Context, empresaID string, in dto.CreateRolRequest) (*dto.RolResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	codigos, err := auth.NormalizarCodigos(in.Permisos)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	rol := &entity.Rol{
		ID:          uuid.New().String(),
		EmpresaID:   empresaID,
		Nombre:      in.Nombre,
		Descripcion: strings.TrimSpace(in.Descripcion),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunRol(ctx, func(rolRepo repository.RolRepository) error {
		if err := rolRepo.Create(ctx, rol); err != nil {
			return err
		}
		return rolRepo.SetPermisos(ctx, rol.ID, codigos)
	})
	if err != nil {
		return nil, err
	}
	return toRolResponse(rol, codigos), nil
}

// GetByID devuelve el rol con sus permisos.
func (uc *RolUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.RolResponse, error) {
	rol, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, notFound("rol")
	}
	codigos, err := uc.repo.GetPermisos(ctx, rol.ID)
	if err != nil {
		return nil, err
	}
	if codigos == nil {
		codigos = []string{}
	}
	return toRolResponse(rol, codigos), nil
}

// List lista los roles de la empresa (sin permisos).
func (uc *RolUseCase) List(ctx context.Context, empresaID string) ([]dto.RolResponse, error) {
	list, err := uc.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRolResponse(r, nil))
	}
	return out, nil
}

// Update cambia nombre y descripción.
func (uc *RolUseCase) Update(ctx context.Context, empresaID, id string, in dto.UpdateRolRequest) (*dto.RolResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	rol, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, notFound("rol")
	}
	if in.Nombre != nil {
		rol.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		rol.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	rol.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, rol); err != nil {
		return nil, err
	}
	return toRolResponse(rol, nil), nil
}

// SetPermisos reemplaza los permisos del rol. Códigos fuera del catálogo son rechazados.
func (uc *RolUseCase) SetPermisos(ctx context.Context, empresaID, id string, in dto.SetPermisosRequest) (*dto.RolResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	codigos, err := auth.NormalizarCodigos(in.Permisos)
	if err != nil {
		return nil, err
	}
	var rol *entity.Rol
	err = uc.tx.RunRol(ctx, func(rolRepo repository.RolRepository) error {
		var err error
		rol, err = rolRepo.GetByID(ctx, empresaID, id)
		if err != nil {
			return err
		}
		if rol == nil {
			return notFound("rol")
		}
		return rolRepo.SetPermisos(ctx, rol.ID, codigos)
	})
	if err != nil {
		return nil, err
	}
	if uc.sesiones != nil {
		if err := uc.sesiones.InvalidarRol(ctx, rol.ID); err != nil {
			return nil, fmt.Errorf("cerrar sesiones del rol: %w", err)
		}
	}
	return toRolResponse(rol, codigos), nil
}

// Delete elimina un rol que ningún usuario tenga asignado.
func (uc *RolUseCase) Delete(ctx context.Context, empresaID, id string) error {
	rol, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return err
	}
	if rol == nil {
		return notFound("rol")
	}
	n, err := uc.usuarioRepo.CountByRol(ctx, empresaID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("el rol está asignado a %d usuario(s)", n)
	}
	return uc.repo.Delete(ctx, empresaID, id)
}

func toRolResponse(r *entity.Rol, permisos []string) *dto.RolResponse {
	return &dto.RolResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Permisos:    permisos,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
