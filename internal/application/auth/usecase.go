package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenRevoker invalida tokens antes de su expiración.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// hash de relleno para comparar aun cuando el usuario no existe.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("brickapp-dummy-password"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de sesión: login, logout y usuario actual.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	empresaRepo repository.EmpresaRepository
	permisos    *PermisoService
	revoker     TokenRevoker
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. revoker puede ser nil (logout sin revocación).
func NewAuthUseCase(
	usuarioRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
	permisos *PermisoService,
	revoker TokenRevoker,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo: usuarioRepo,
		empresaRepo: empresaRepo,
		permisos:    permisos,
		revoker:     revoker,
		jwtCfg:      jwtCfg,
	}
}

// Login verifica usuario/password, resuelve permisos del rol y firma el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.usuarioRepo.GetByUsuario(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidPassword
	}
	if !u.Activo {
		return nil, domain.ErrInactiveUser
	}
	codigos, err := uc.permisos.ResolvePermisos(ctx, u.RolID)
	if err != nil {
		return nil, fmt.Errorf("resolver permisos: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Session{
		UserID:    u.ID,
		EmpresaID: u.EmpresaID,
		RolID:     u.RolID,
		Permisos:  codigos,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Usuario:   toUsuarioResponse(u),
		Permisos:  codigos,
	}, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if uc.revoker == nil {
		return nil
	}
	return uc.revoker.Revoke(ctx, jti, remaining)
}

// Me devuelve el usuario de la sesión, su empresa y los permisos vigentes del rol.
func (uc *AuthUseCase) Me(ctx context.Context, empresaID, userID string) (*dto.MeResponse, error) {
	u, err := uc.usuarioRepo.GetByID(ctx, empresaID, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	e, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrUnauthorized
	}
	codigos, err := uc.permisos.ResolvePermisos(ctx, u.RolID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		Usuario: toUsuarioResponse(u),
		Empresa: dto.EmpresaResponse{
			ID: e.ID, RazonSocial: e.RazonSocial, RUC: e.RUC, Direccion: e.Direccion,
			Telefono: e.Telefono, Email: e.Email, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
		},
		Permisos: codigos,
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
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
