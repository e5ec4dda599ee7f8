package auth

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/pkg/jwt"
)

func claimsEmitidos(userID, rolID string, iat time.Time) *jwt.Claims {
	return &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ID: "jti-" + userID, IssuedAt: gojwt.NewNumericDate(iat)},
		UserID:           userID,
		RolID:            rolID,
	}
}

func TestSesionRevocada_MarcasPorUsuarioYRol(t *testing.T) {
	cache := newMemCache()
	ahora := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rev := NewRevocationStore(cache).WithSesionTTL(90 * time.Minute)
	rev.now = func() time.Time { return ahora }
	ctx := context.Background()

	antes := claimsEmitidos("u1", "r1", ahora.Add(-time.Minute))
	revocada, err := rev.SesionRevocada(ctx, antes)
	require.NoError(t, err)
	assert.False(t, revocada)

	require.NoError(t, rev.InvalidarUsuario(ctx, "u1"))
	assert.Equal(t, 90*time.Minute, cache.ttl["sesion:usuario:u1"])

	revocada, err = rev.SesionRevocada(ctx, antes)
	require.NoError(t, err)
	assert.True(t, revocada)

	// login posterior a la marca sigue vigente
	revocada, err = rev.SesionRevocada(ctx, claimsEmitidos("u1", "r1", ahora.Add(time.Second)))
	require.NoError(t, err)
	assert.False(t, revocada)

	// otro usuario del mismo rol no se ve afectado hasta marcar el rol
	otro := claimsEmitidos("u2", "r1", ahora.Add(-time.Minute))
	revocada, err = rev.SesionRevocada(ctx, otro)
	require.NoError(t, err)
	assert.False(t, revocada)

	require.NoError(t, rev.InvalidarRol(ctx, "r1"))
	revocada, err = rev.SesionRevocada(ctx, otro)
	require.NoError(t, err)
	assert.True(t, revocada)

	revocada, err = rev.SesionRevocada(ctx, claimsEmitidos("u3", "r2", ahora.Add(-time.Minute)))
	require.NoError(t, err)
	assert.False(t, revocada)
}

func TestSesionRevocada_MarcaCorrupta(t *testing.T) {
	cache := newMemCache()
	cache.data["sesion:rol:r1"] = "no-es-numero"
	rev := NewRevocationStore(cache)

	_, err := rev.SesionRevocada(context.Background(), claimsEmitidos("u1", "r1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marca inválida")
}
