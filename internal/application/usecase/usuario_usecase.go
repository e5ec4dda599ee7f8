package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// UsuarioUseCase aplica reglas de negocio para usuarios de la empresa.
type UsuarioUseCase struct {
	repo     repository.UsuarioRepository
	rolRepo  repository.RolRepository
	sesiones SesionInvalidator
}

// NewUsuarioUseCase construye el caso de uso con los puertos de persistencia.
func NewUsuarioUseCase(repo repository.UsuarioRepository, rolRepo repository.RolRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, rolRepo: rolRepo}
}

// WithSesiones activa el cierre de sesiones al desactivar, eliminar, cambiar de rol
// o cambiar la contraseña de un usuario.
func (uc *UsuarioUseCase) WithSesiones(s SesionInvalidator) *UsuarioUseCase {
	uc.sesiones = s
	return uc
}

// Create da de alta un usuario. El login es único en todo el sistema.
func (uc *UsuarioUseCase) Create(ctx context.Context, empresaID string, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	in.NombreCompleto = strings.TrimSpace(in.NombreCompleto)
	in.Usuario = strings.TrimSpace(in.Usuario)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	rol, err := uc.rolDeEmpresa(ctx, empresaID, in.RolID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:             uuid.New().String(),
		EmpresaID:      empresaID,
		NombreCompleto: in.NombreCompleto,
		Usuario:        in.Usuario,
		PasswordHash:   string(hash),
		Email:          strings.TrimSpace(in.Email),
		RolID:          rol.ID,
		RolNombre:      rol.Nombre,
		Activo:         activo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("usuario")
	}
	return toUsuarioResponse(u), nil
}

// List lista usuarios por empresa con paginación.
func (uc *UsuarioUseCase) List(ctx context.Context, empresaID string, page dto.PageRequest) (*dto.UsuarioListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUsuarioResponse(u))
	}
	return &dto.UsuarioListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica datos del usuario. Un usuario no puede desactivarse a sí mismo.
func (uc *UsuarioUseCase) Update(ctx context.Context, empresaID, actorID, id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	trimPtr(in.NombreCompleto)
	trimPtr(in.Usuario)
	trimPtr(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("usuario")
	}
	if in.NombreCompleto != nil {
		u.NombreCompleto = *in.NombreCompleto
	}
	if in.Usuario != nil {
		u.Usuario = *in.Usuario
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	cerrarSesiones := false
	if in.RolID != nil && *in.RolID != u.RolID {
		rol, err := uc.rolDeEmpresa(ctx, empresaID, *in.RolID)
		if err != nil {
			return nil, err
		}
		u.RolID, u.RolNombre = rol.ID, rol.Nombre
		cerrarSesiones = true
	}
	if in.Activo != nil {
		if !*in.Activo && id == actorID {
			return nil, conflict("no puede desactivar su propio usuario")
		}
		cerrarSesiones = cerrarSesiones || (u.Activo && !*in.Activo)
		u.Activo = *in.Activo
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if cerrarSesiones {
		if err := uc.invalidar(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	return toUsuarioResponse(u), nil
}

// ChangePassword reemplaza la contraseña del usuario.
func (uc *UsuarioUseCase) ChangePassword(ctx context.Context, empresaID, id string, in dto.ChangePasswordRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	u, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return err
	}
	if u == nil {
		return notFound("usuario")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdatePassword(ctx, empresaID, id, string(hash)); err != nil {
		return err
	}
	return uc.invalidar(ctx, id)
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UsuarioUseCase) Delete(ctx context.Context, empresaID, actorID, id string) error {
	if id == actorID {
		return conflict("no puede eliminar su propio usuario")
	}
	if err := uc.repo.Delete(ctx, empresaID, id); err != nil {
		return err
	}
	return uc.invalidar(ctx, id)
}

func (uc *UsuarioUseCase) invalidar(ctx context.Context, userID string) error {
	if uc.sesiones == nil {
		return nil
	}
	if err := uc.sesiones.InvalidarUsuario(ctx, userID); err != nil {
		return fmt.Errorf("cerrar sesiones del usuario: %w", err)
	}
	return nil
}

func (uc *UsuarioUseCase) rolDeEmpresa(ctx context.Context, empresaID, rolID string) (*entity.Rol, error) {
	rol, err := uc.rolRepo.GetByID(ctx, empresaID, rolID)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, invalid("el rol %s no existe en la empresa", rolID)
	}
	return rol, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:             u.ID,
		EmpresaID:      u.EmpresaID,
		NombreCompleto: u.NombreCompleto,
		Usuario:        u.Usuario,
		Email:          u.Email,
		RolID:          u.RolID,
		RolNombre:      u.RolNombre,
		Activo:         u.Activo,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
