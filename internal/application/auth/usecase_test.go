package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/testhelpers"
	"github.com/brickapp/brickapp-api/pkg/jwt"
)

const secret = "test-secret"

type memCache struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.data[key] = value
	c.ttl[key] = ttl
	return nil
}

func setup(t *testing.T) (*AuthUseCase, *testhelpers.Store, testhelpers.Fixture, *RevocationStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	store := testhelpers.NewStore()
	fx := store.Seed(string(hash), []string{"ventas.ver", "ventas.crear"})
	rev := NewRevocationStore(newMemCache())
	svc := NewPermisoService(store.Permisos(), store.Roles())
	uc := NewAuthUseCase(store.Usuarios(), store.Empresas(), svc, rev, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "brickapp"})
	return uc, store, fx, rev
}

func TestLogin_OK(t *testing.T) {
	uc, _, fx, _ := setup(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "admin", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas.crear", "ventas.ver"}, out.Permisos)
	assert.Equal(t, 3600, out.ExpiresIn)
	assert.Equal(t, "Administrador", out.Usuario.RolNombre)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, fx.UsuarioID, claims.UserID)
	assert.Equal(t, fx.EmpresaID, claims.EmpresaID)
	assert.Equal(t, fx.RolID, claims.RolID)
	assert.ElementsMatch(t, []string{"ventas.ver", "ventas.crear"}, claims.Permisos)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "admin", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Usuario: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Usuario: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store, fx, _ := setup(t)
	ctx := context.Background()
	u, err := store.Usuarios().GetByID(ctx, fx.EmpresaID, fx.UsuarioID)
	require.NoError(t, err)
	u.Activo = false
	require.NoError(t, store.Usuarios().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Usuario: "admin", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestLogout_RevocaJTI(t *testing.T) {
	uc, _, _, rev := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.Logout(ctx, "jti-1", time.Minute))
	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = rev.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	// token ya expirado: no se guarda nada
	require.NoError(t, uc.Logout(ctx, "jti-3", 0))
	revoked, _ = rev.IsRevoked(ctx, "jti-3")
	assert.False(t, revoked)
}

func TestMe(t *testing.T) {
	uc, _, fx, _ := setup(t)

	me, err := uc.Me(context.Background(), fx.EmpresaID, fx.UsuarioID)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Usuario.Usuario)
	assert.Equal(t, "20131312955", me.Empresa.RUC)
	assert.Len(t, me.Permisos, 2)

	_, err = uc.Me(context.Background(), "otra-empresa", fx.UsuarioID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
