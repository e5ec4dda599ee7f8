package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
)

func seed(t *testing.T) (*testhelpers.Store, testhelpers.Fixture) {
	t.Helper()
	store := testhelpers.NewStore()
	return store, store.Seed("hash", []string{"ventas.ver"})
}

func ptr[T any](v T) *T { return &v }

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUsuario_CreateYAutoEliminacion(t *testing.T) {
	store, fx := seed(t)
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles())
	ctx := context.Background()

	u, err := uc.Create(ctx, fx.EmpresaID, dto.CreateUsuarioRequest{
		NombreCompleto: "María Torres", Usuario: "mtorres", Password: "clave-segura", RolID: fx.RolID,
	})
	require.NoError(t, err)
	assert.True(t, u.Activo)
	assert.Equal(t, "Administrador", u.RolNombre)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.CreateUsuarioRequest{
		NombreCompleto: "Otro", Usuario: "mtorres", Password: "clave-segura", RolID: fx.RolID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = uc.Delete(ctx, fx.EmpresaID, fx.UsuarioID, fx.UsuarioID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, fx.EmpresaID, fx.UsuarioID, fx.UsuarioID, dto.UpdateUsuarioRequest{Activo: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, uc.Delete(ctx, fx.EmpresaID, fx.UsuarioID, u.ID))
	_, err = uc.GetByID(ctx, fx.EmpresaID, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsuario_RolDeOtraEmpresa(t *testing.T) {
	store, fx := seed(t)
	otra := store.AddEmpresa("20600000001")
	uc := NewUsuarioUseCase(store.Usuarios(), store.Roles())

	_, err := uc.Create(context.Background(), otra, dto.CreateUsuarioRequest{
		NombreCompleto: "Intruso", Usuario: "intruso", Password: "clave-segura", RolID: fx.RolID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRol_PermisosDesconocidosYEnUso(t *testing.T) {
	store, fx := seed(t)
	uc := NewRolUseCase(store.Roles(), store.Usuarios(), store)
	ctx := context.Background()

	_, err := uc.Create(ctx, fx.EmpresaID, dto.CreateRolRequest{Nombre: "Vendedor", Permisos: []string{"ventas.volar"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rol, err := uc.Create(ctx, fx.EmpresaID, dto.CreateRolRequest{Nombre: "Vendedor", Permisos: []string{"ventas.ver", "ventas.crear", "ventas.ver"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas.crear", "ventas.ver"}, rol.Permisos)

	got, err := uc.GetByID(ctx, fx.EmpresaID, rol.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas.crear", "ventas.ver"}, got.Permisos)

	assert.ErrorIs(t, uc.Delete(ctx, fx.EmpresaID, fx.RolID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, fx.EmpresaID, rol.ID))
}

func TestRol_SetPermisosRevierteSiFalla(t *testing.T) {
	store, fx := seed(t)
	uc := NewRolUseCase(store.Roles(), store.Usuarios(), store)
	ctx := context.Background()

	store.FailOn = "SetPermisos"
	_, err := uc.Create(ctx, fx.EmpresaID, dto.CreateRolRequest{Nombre: "Almacén", Permisos: []string{"entregas.ver"}})
	require.Error(t, err)
	store.FailOn = ""

	roles, err := uc.List(ctx, fx.EmpresaID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestCliente_ValidaDocumento(t *testing.T) {
	store, fx := seed(t)
	uc := NewClienteUseCase(store.Clientes())
	ctx := context.Background()

	_, err := uc.Create(ctx, fx.EmpresaID, dto.ClienteRequest{TipoDocumento: "RUC", NumeroDocumento: "20100070971", Nombre: "Mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.ClienteRequest{TipoDocumento: "DNI", NumeroDocumento: "1234", Nombre: "Corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(ctx, fx.EmpresaID, dto.ClienteRequest{TipoDocumento: "DNI", NumeroDocumento: "12345678", Nombre: " rosa diaz "})
	require.NoError(t, err)
	assert.Equal(t, "rosa diaz", c.Nombre)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.ClienteRequest{TipoDocumento: "DNI", NumeroDocumento: "12345678", Nombre: "Repetido"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCliente_AislamientoEntreEmpresas(t *testing.T) {
	store, fx := seed(t)
	otra := store.AddEmpresa("20600000001")
	uc := NewClienteUseCase(store.Clientes())

	_, err := uc.GetByID(context.Background(), otra, fx.ClienteID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducto_PrecioNegativo(t *testing.T) {
	store, fx := seed(t)
	uc := NewProductoUseCase(store.Productos())
	ctx := context.Background()

	_, err := uc.Create(ctx, fx.EmpresaID, dto.CreateProductoRequest{Nombre: "Techo", PrecioUnitario: mustDec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, fx.EmpresaID, dto.CreateProductoRequest{Nombre: "Techo", PrecioUnitario: mustDec("950.50")})
	require.NoError(t, err)
	assert.Equal(t, "MILLAR", p.UnidadMedida)
	assert.True(t, p.Activo)

	list, err := uc.List(ctx, fx.EmpresaID, true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, dto.DefaultLimit, list.Page.Limit)
}

func TestCoccion_UnaEnProcesoPorHorno(t *testing.T) {
	store, fx := seed(t)
	hornos := NewHornoUseCase(store.Hornos())
	uc := NewCoccionUseCase(store.Cocciones(), store.Hornos(), store.Personal())
	ctx := context.Background()

	h, err := hornos.Create(ctx, fx.EmpresaID, dto.HornoRequest{Nombre: "Horno 1", CapacidadLadrillos: 20000})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVO", h.Estado)

	c, err := uc.Create(ctx, fx.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID, FechaEncendido: "2024-05-01", CantidadLadrillos: 18000})
	require.NoError(t, err)
	assert.Equal(t, "EN_PROCESO", c.Estado)
	assert.Equal(t, "Horno 1", c.HornoNombre)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Finalizar(ctx, fx.EmpresaID, c.ID, dto.FinalizarCoccionRequest{FechaApagado: "2024-04-30"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fin, err := uc.Finalizar(ctx, fx.EmpresaID, c.ID, dto.FinalizarCoccionRequest{FechaApagado: "2024-05-06"})
	require.NoError(t, err)
	assert.Equal(t, "FINALIZADO", fin.Estado)
	require.NotNil(t, fin.FechaApagado)

	_, err = uc.Finalizar(ctx, fx.EmpresaID, c.ID, dto.FinalizarCoccionRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, fx.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID, FechaEncendido: "2024-05-10"})
	assert.NoError(t, err)

	list, err := uc.List(ctx, fx.EmpresaID, dto.CoccionFilterRequest{HornoID: h.ID, Estado: "finalizado"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestCoccion_Operadores(t *testing.T) {
	store, fx := seed(t)
	otra := store.AddEmpresa("20600000001")
	hornos := NewHornoUseCase(store.Hornos())
	personal := NewPersonalUseCase(store.Personal())
	uc := NewCoccionUseCase(store.Cocciones(), store.Hornos(), store.Personal())
	ctx := context.Background()

	h, err := hornos.Create(ctx, fx.EmpresaID, dto.HornoRequest{Nombre: "Horno 2"})
	require.NoError(t, err)
	c, err := uc.Create(ctx, fx.EmpresaID, dto.CreateCoccionRequest{HornoID: h.ID})
	require.NoError(t, err)

	p, err := personal.Create(ctx, fx.EmpresaID, dto.PersonalRequest{NombreCompleto: "Luis Quispe", DNI: "40404040"})
	require.NoError(t, err)
	ajeno, err := personal.Create(ctx, otra, dto.PersonalRequest{NombreCompleto: "Pedro Ajeno", DNI: "50505050"})
	require.NoError(t, err)

	_, err = uc.AddOperador(ctx, fx.EmpresaID, c.ID, dto.AddOperadorRequest{PersonalID: ajeno.ID, Funcion: "QUEMADOR"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	op, err := uc.AddOperador(ctx, fx.EmpresaID, c.ID, dto.AddOperadorRequest{PersonalID: p.ID, Funcion: "QUEMADOR"})
	require.NoError(t, err)
	assert.Equal(t, "Luis Quispe", op.PersonalNombre)

	got, err := uc.GetByID(ctx, fx.EmpresaID, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Operadores, 1)

	require.NoError(t, uc.RemoveOperador(ctx, fx.EmpresaID, c.ID, op.ID))
	assert.ErrorIs(t, uc.RemoveOperador(ctx, fx.EmpresaID, c.ID, op.ID), domain.ErrNotFound)
}
