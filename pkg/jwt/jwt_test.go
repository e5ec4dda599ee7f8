package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/brickapp/brickapp-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func sesion() pkgjwt.Session {
	return pkgjwt.Session{
		UserID:    "00000000-0000-0000-0000-000000000001",
		EmpresaID: "00000000-0000-0000-0000-000000000002",
		RolID:     "00000000-0000-0000-0000-000000000003",
		Permisos:  []string{"ventas.ver", "ventas.crear"},
	}
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "brickapp-test", 60, sesion())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)

	assert.Equal(t, sesion().UserID, claims.UserID)
	assert.Equal(t, sesion().EmpresaID, claims.EmpresaID)
	assert.Equal(t, sesion().RolID, claims.RolID)
	assert.Equal(t, []string{"ventas.ver", "ventas.crear"}, claims.Permisos)
	assert.NotEmpty(t, claims.ID, "cada token debe llevar jti")
	assert.Equal(t, "brickapp-test", claims.Issuer)
	assert.InDelta(t, float64(time.Hour), float64(claims.Remaining()), float64(5*time.Second))
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, err := pkgjwt.Generate(secret, "x", 60, sesion())
	require.NoError(t, err)
	b, err := pkgjwt.Generate(secret, "x", 60, sesion())
	require.NoError(t, err)

	ca, _ := pkgjwt.Parse(secret, a)
	cb, _ := pkgjwt.Parse(secret, b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "x", -1, sesion())
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "x", 60, sesion())
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", 60, sesion())
	assert.Error(t, err)
}
