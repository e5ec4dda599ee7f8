// Package onboarding da de alta un tenant: empresa, rol Administrador con todos
// los permisos del catálogo y el usuario administrador, en una sola transacción.
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios del alta.
type TxRunner interface {
	RunOnboarding(ctx context.Context, fn func(
		empresaRepo repository.EmpresaRepository,
		rolRepo repository.RolRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}

// Input datos del alta.
type Input struct {
	RUC           string `validate:"required,len=11,numeric"`
	RazonSocial   string `validate:"required,min=3,max=200"`
	Direccion     string `validate:"max=250"`
	Telefono      string `validate:"max=30"`
	Email         string `validate:"omitempty,email"`
	AdminNombre   string `validate:"required,min=3,max=100"`
	AdminUsuario  string `validate:"required,login"`
	AdminPassword string `validate:"required,min=8,max=72"`
}

// Result ids creados.
type Result struct {
	EmpresaID string
	RolID     string
	UsuarioID string
	Permisos  int
}

// UseCase alta de empresas.
type UseCase struct {
	tx       TxRunner
	permisos *auth.PermisoService
}

// NewUseCase construye el caso de uso. permisos sincroniza el catálogo antes del alta.
func NewUseCase(tx TxRunner, permisos *auth.PermisoService) *UseCase {
	return &UseCase{tx: tx, permisos: permisos}
}

// Onboard crea empresa, rol y usuario. Un RUC ya registrado devuelve ErrDuplicate.
func (uc *UseCase) Onboard(ctx context.Context, in Input) (*Result, error) {
	in.RUC = strings.TrimSpace(in.RUC)
	in.RazonSocial = strings.ToUpper(strings.TrimSpace(in.RazonSocial))
	in.AdminUsuario = strings.TrimSpace(in.AdminUsuario)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := peru.ValidateRUC(in.RUC); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if _, err := uc.permisos.SyncCatalogo(ctx); err != nil {
		return nil, fmt.Errorf("onboarding: sincronizar permisos: %w", err)
	}
	codigos, err := auth.TodosLosCodigos()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	empresa := &entity.Empresa{
		ID:          uuid.New().String(),
		RazonSocial: in.RazonSocial,
		RUC:         in.RUC,
		Direccion:   strings.TrimSpace(in.Direccion),
		Telefono:    strings.TrimSpace(in.Telefono),
		Email:       strings.TrimSpace(in.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	rol := &entity.Rol{
		ID:          uuid.New().String(),
		EmpresaID:   empresa.ID,
		Nombre:      entity.RolAdministrador,
		Descripcion: "Acceso total a la empresa",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	usuario := &entity.Usuario{
		ID:             uuid.New().String(),
		EmpresaID:      empresa.ID,
		NombreCompleto: strings.TrimSpace(in.AdminNombre),
		Usuario:        in.AdminUsuario,
		PasswordHash:   string(hash),
		RolID:          rol.ID,
		Activo:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunOnboarding(ctx, func(empresaRepo repository.EmpresaRepository, rolRepo repository.RolRepository, usuarioRepo repository.UsuarioRepository) error {
		if err := empresaRepo.Create(ctx, empresa); err != nil {
			return err
		}
		if err := rolRepo.Create(ctx, rol); err != nil {
			return err
		}
		if err := rolRepo.SetPermisos(ctx, rol.ID, codigos); err != nil {
			return err
		}
		return usuarioRepo.Create(ctx, usuario)
	})
	if err != nil {
		return nil, err
	}
	return &Result{EmpresaID: empresa.ID, RolID: rol.ID, UsuarioID: usuario.ID, Permisos: len(codigos)}, nil
}
