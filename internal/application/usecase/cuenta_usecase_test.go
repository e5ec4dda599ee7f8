package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
)

func TestEmpresa_GetYUpdateConservaRUC(t *testing.T) {
	store, fx := seed(t)
	uc := NewEmpresaUseCase(store.Empresas())
	ctx := context.Background()

	e, err := uc.Get(ctx, fx.EmpresaID)
	require.NoError(t, err)
	assert.Equal(t, "20131312955", e.RUC)

	out, err := uc.Update(ctx, fx.EmpresaID, dto.UpdateEmpresaRequest{
		RazonSocial: ptr("  Ladrillera San Pedro EIRL "),
		Direccion:   ptr("Av. Industrial 123, Lurín"),
		Email:       ptr("ventas@sanpedro.pe"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ladrillera San Pedro EIRL", out.RazonSocial)
	assert.Equal(t, "20131312955", out.RUC)

	got, err := uc.Get(ctx, fx.EmpresaID)
	require.NoError(t, err)
	assert.Equal(t, "20131312955", got.RUC)
	assert.Equal(t, "Av. Industrial 123, Lurín", got.Direccion)
	assert.Equal(t, "ventas@sanpedro.pe", got.Email)
	assert.Empty(t, got.Telefono)

	_, err = uc.Update(ctx, fx.EmpresaID, dto.UpdateEmpresaRequest{Email: ptr("no-es-email")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProveedor_DocumentoYDuplicado(t *testing.T) {
	store, fx := seed(t)
	uc := NewProveedorUseCase(store.Proveedores())
	ctx := context.Background()

	_, err := uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20131312954", RazonSocial: "Arcillas del Sur SAC",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "DNI", NumeroDocumento: "4602789", RazonSocial: "Carbón Quispe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "ruc", NumeroDocumento: " 20100070970 ", RazonSocial: "Arcillas del Sur SAC",
	})
	require.NoError(t, err)
	assert.Equal(t, "RUC", p.TipoDocumento)
	assert.Equal(t, "20100070970", p.NumeroDocumento)
	assert.True(t, p.Activo)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "Duplicado SAC",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el mismo documento en otra empresa es válido
	otra := store.AddEmpresa("20600000001")
	_, err = uc.Create(ctx, otra, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "Arcillas del Sur SAC",
	})
	require.NoError(t, err)

	q, err := uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "DNI", NumeroDocumento: "46027897", RazonSocial: "Carbón Quispe",
	})
	require.NoError(t, err)
	_, err = uc.Update(ctx, fx.EmpresaID, q.ID, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "Carbón Quispe",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProveedor_CRUD(t *testing.T) {
	store, fx := seed(t)
	uc := NewProveedorUseCase(store.Proveedores())
	ctx := context.Background()

	p, err := uc.Create(ctx, fx.EmpresaID, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "Arcillas del Sur SAC",
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, fx.EmpresaID, p.ID, dto.ProveedorRequest{
		TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "Arcillas del Sur SAC",
		Telefono: "987654321", Activo: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, out.Activo)
	assert.Equal(t, "987654321", out.Telefono)

	list, err := uc.List(ctx, fx.EmpresaID, "arcillas", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	otra := store.AddEmpresa("20600000001")
	_, err = uc.GetByID(ctx, otra, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, otra, p.ID), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, fx.EmpresaID, p.ID))
	_, err = uc.GetByID(ctx, fx.EmpresaID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsuario_ChangePassword(t *testing.T) {
	store, fx := seed(t)
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles())
	ctx := context.Background()

	err := uc.ChangePassword(ctx, fx.EmpresaID, fx.UsuarioID, dto.ChangePasswordRequest{Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	otra := store.AddEmpresa("20600000001")
	err = uc.ChangePassword(ctx, otra, fx.UsuarioID, dto.ChangePasswordRequest{Password: "nueva-clave-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.ChangePassword(ctx, fx.EmpresaID, fx.UsuarioID, dto.ChangePasswordRequest{Password: "nueva-clave-1"}))
	u, err := store.Usuarios().GetByUsuario(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva-clave-1")))
}

func TestUsuario_UpdateRecortaAntesDeValidar(t *testing.T) {
	store, fx := seed(t)
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles())
	ctx := context.Background()

	_, err := uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, fx.UsuarioID, dto.UpdateUsuarioRequest{NombreCompleto: ptr("  ab  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, fx.UsuarioID, dto.UpdateUsuarioRequest{NombreCompleto: ptr("   ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, fx.UsuarioID, dto.UpdateUsuarioRequest{
		NombreCompleto: ptr("  Ana Rojas  "), Usuario: ptr(" arojas "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Rojas", out.NombreCompleto)
	assert.Equal(t, "arojas", out.Usuario)
}

type sesionesRegistradas struct {
	usuarios []string
	roles    []string
	err      error
}

func (s *sesionesRegistradas) InvalidarUsuario(_ context.Context, userID string) error {
	s.usuarios = append(s.usuarios, userID)
	return s.err
}

func (s *sesionesRegistradas) InvalidarRol(_ context.Context, rolID string) error {
	s.roles = append(s.roles, rolID)
	return s.err
}

func TestUsuario_CierraSesionesAlPerderAcceso(t *testing.T) {
	store, fx := seed(t)
	sesiones := &sesionesRegistradas{}
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles()).WithSesiones(sesiones)
	roles := NewRolUseCase(store.Roles(), store.Usuarios(), store)
	ctx := context.Background()

	u, err := uc.Create(ctx, fx.EmpresaID, dto.CreateUsuarioRequest{
		NombreCompleto: "María Torres", Usuario: "mtorres", Password: "clave-segura", RolID: fx.RolID,
	})
	require.NoError(t, err)
	assert.Empty(t, sesiones.usuarios)

	// renombrar no corta la sesión
	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, u.ID, dto.UpdateUsuarioRequest{NombreCompleto: ptr("María Torres Vega")})
	require.NoError(t, err)
	assert.Empty(t, sesiones.usuarios)

	vendedor, err := roles.Create(ctx, fx.EmpresaID, dto.CreateRolRequest{Nombre: "Vendedor", Permisos: []string{"ventas.ver"}})
	require.NoError(t, err)
	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, u.ID, dto.UpdateUsuarioRequest{RolID: ptr(vendedor.ID)})
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, sesiones.usuarios)

	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, u.ID, dto.UpdateUsuarioRequest{Activo: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, sesiones.usuarios, 2)

	// ya inactivo: no hay sesión que cortar
	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, u.ID, dto.UpdateUsuarioRequest{Activo: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, sesiones.usuarios, 2)

	require.NoError(t, uc.ChangePassword(ctx, fx.EmpresaID, u.ID, dto.ChangePasswordRequest{Password: "nueva-clave-1"}))
	assert.Len(t, sesiones.usuarios, 3)

	require.NoError(t, uc.Delete(ctx, fx.EmpresaID, fx.UsuarioID, u.ID))
	assert.Equal(t, []string{u.ID, u.ID, u.ID, u.ID}, sesiones.usuarios)
}

func TestUsuario_ErrorAlCerrarSesionesSePropaga(t *testing.T) {
	store, fx := seed(t)
	sesiones := &sesionesRegistradas{err: errors.New("cache caída")}
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles()).WithSesiones(sesiones)

	err := uc.ChangePassword(context.Background(), fx.EmpresaID, fx.UsuarioID, dto.ChangePasswordRequest{Password: "nueva-clave-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cerrar sesiones del usuario")
}

func TestRol_SetPermisosCierraSesionesDelRol(t *testing.T) {
	store, fx := seed(t)
	sesiones := &sesionesRegistradas{}
	uc := NewRolUseCase(store.Roles(), store.Usuarios(), store).WithSesiones(sesiones)
	ctx := context.Background()

	_, err := uc.SetPermisos(ctx, fx.EmpresaID, fx.RolID, dto.SetPermisosRequest{Permisos: []string{"ventas.volar"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, sesiones.roles)

	store.FailOn = "SetPermisos"
	_, err = uc.SetPermisos(ctx, fx.EmpresaID, fx.RolID, dto.SetPermisosRequest{Permisos: []string{"ventas.ver"}})
	require.Error(t, err)
	store.FailOn = ""
	assert.Empty(t, sesiones.roles)

	out, err := uc.SetPermisos(ctx, fx.EmpresaID, fx.RolID, dto.SetPermisosRequest{Permisos: []string{"ventas.ver", "ventas.crear"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas.crear", "ventas.ver"}, out.Permisos)
	assert.Equal(t, []string{fx.RolID}, sesiones.roles)
}
