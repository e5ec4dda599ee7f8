package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
)

func input() Input {
	return Input{
		RUC:           "20100070970",
		RazonSocial:   "Ladrillera El Sol sac",
		AdminNombre:   "Rosa Mamani",
		AdminUsuario:  "rmamani",
		AdminPassword: "clave-segura",
	}
}

func TestOnboard_CreaEmpresaRolYUsuario(t *testing.T) {
	store := testhelpers.NewStore()
	svc := auth.NewPermisoService(store.Permisos(), store.Roles())
	uc := NewUseCase(store, svc)
	ctx := context.Background()

	res, err := uc.Onboard(ctx, input())
	require.NoError(t, err)

	emp, err := store.Empresas().GetByID(ctx, res.EmpresaID)
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Equal(t, "LADRILLERA EL SOL SAC", emp.RazonSocial)

	todos, err := auth.TodosLosCodigos()
	require.NoError(t, err)
	permisos, err := svc.ResolvePermisos(ctx, res.RolID)
	require.NoError(t, err)
	assert.Len(t, permisos, len(todos))
	assert.Equal(t, len(todos), res.Permisos)

	u, err := store.Usuarios().GetByUsuario(ctx, "rmamani")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.Activo)
	assert.Equal(t, res.EmpresaID, u.EmpresaID)
}

func TestOnboard_RUCInvalidoODuplicado(t *testing.T) {
	store := testhelpers.NewStore()
	uc := NewUseCase(store, auth.NewPermisoService(store.Permisos(), store.Roles()))
	ctx := context.Background()

	in := input()
	in.RUC = "20100070971"
	_, err := uc.Onboard(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Onboard(ctx, input())
	require.NoError(t, err)

	in = input()
	in.AdminUsuario = "otro.admin"
	_, err = uc.Onboard(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOnboard_RevierteSiElUsuarioExiste(t *testing.T) {
	store := testhelpers.NewStore()
	store.Seed("hash", nil) // login "admin" ya tomado
	uc := NewUseCase(store, auth.NewPermisoService(store.Permisos(), store.Roles()))
	ctx := context.Background()

	in := input()
	in.AdminUsuario = "admin"
	_, err := uc.Onboard(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	emp, err := store.Empresas().GetByRUC(ctx, "20100070970")
	require.NoError(t, err)
	assert.Nil(t, emp)
}
