package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/infrastructure/cache"
	apphttp "github.com/brickapp/brickapp-api/internal/interfaces/http"
	pkgjwt "github.com/brickapp/brickapp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmpresaID = "00000000-0000-0000-0000-000000000002"
	testRolID     = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "brickapp-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar locals
//   - RequirePermission para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(revoked apphttp.RevocationChecker, codes ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, revoked),
		apphttp.RequirePermission(codes...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":         true,
				"user_id":    apphttp.GetUserID(c),
				"empresa_id": apphttp.GetEmpresaID(c),
				"rol_id":     apphttp.GetRolID(c),
			})
		},
	)
	return app
}

// tokenWith genera un JWT con el rol y los permisos indicados.
func tokenWith(t *testing.T, rolID string, permisos ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Session{
		UserID: testUserID, EmpresaID: testEmpresaID, RolID: rolID, Permisos: permisos,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza GET /protected con el header Authorization y la cookie indicados.
func doRequest(t *testing.T, app *fiber.App, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

type failingChecker struct{}

func (failingChecker) SesionRevocada(context.Context, *pkgjwt.Claims) (bool, error) {
	return false, errors.New("redis caído")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaSesion(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "Bearer "+tokenWith(t, testRolID, "ventas.ver"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmpresaID, body["empresa_id"])
	assert.Equal(t, testRolID, body["rol_id"])
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_HeaderMalFormado(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "Token abc", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "Bearer token.invalido.aqui", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, -1, pkgjwt.Session{
		UserID: testUserID, EmpresaID: testEmpresaID, RolID: testRolID,
	})
	require.NoError(t, err)
	resp := doRequest(t, buildTestApp(nil), "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsaCookieSinHeader(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "", tokenWith(t, testRolID))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_HeaderTienePrioridadSobreCookie(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "Bearer basura", tokenWith(t, testRolID))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	rev := auth.NewRevocationStore(cache.NewMemoryCache())
	tok := tokenWith(t, testRolID)
	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	require.NoError(t, rev.Revoke(context.Background(), claims.ID, time.Minute))

	resp := doRequest(t, buildTestApp(rev), "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "REVOKED_TOKEN", errorCode(t, resp))

	// otro token de la misma sesión sigue siendo válido
	resp2 := doRequest(t, buildTestApp(rev), "Bearer "+tokenWith(t, testRolID), "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// tokenEmitido firma un token con fecha de emisión explícita.
func tokenEmitido(t *testing.T, rolID string, iat time.Time) string {
	t.Helper()
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "jti-" + iat.Format(time.RFC3339),
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  gojwt.NewNumericDate(iat),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID, EmpresaID: testEmpresaID, RolID: rolID,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_UsuarioInvalidado(t *testing.T) {
	ctx := context.Background()
	rev := auth.NewRevocationStore(cache.NewMemoryCache())
	viejo := tokenEmitido(t, testRolID, time.Now().Add(-time.Hour))

	resp := doRequest(t, buildTestApp(rev), "Bearer "+viejo, "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, rev.InvalidarUsuario(ctx, testUserID))
	resp = doRequest(t, buildTestApp(rev), "Bearer "+viejo, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "REVOKED_TOKEN", errorCode(t, resp))

	// un login posterior a la marca vuelve a funcionar
	resp2 := doRequest(t, buildTestApp(rev), "Bearer "+tokenWith(t, testRolID), "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestAuthMiddleware_RolInvalidado(t *testing.T) {
	ctx := context.Background()
	rev := auth.NewRevocationStore(cache.NewMemoryCache())
	viejo := tokenEmitido(t, testRolID, time.Now().Add(-time.Hour))

	require.NoError(t, rev.InvalidarRol(ctx, "00000000-0000-0000-0000-0000000000ff"))
	resp := doRequest(t, buildTestApp(rev), "Bearer "+viejo, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, rev.InvalidarRol(ctx, testRolID))
	resp = doRequest(t, buildTestApp(rev), "Bearer "+viejo, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "REVOKED_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FallaVerificacionRevocacion(t *testing.T) {
	resp := doRequest(t, buildTestApp(failingChecker{}), "Bearer "+tokenWith(t, testRolID), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso(t *testing.T) {
	app := buildTestApp(nil, "ventas.crear")
	resp := doRequest(t, app, "Bearer "+tokenWith(t, testRolID, "ventas.ver", "ventas.crear"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_BastaUnoDeLosCodigos(t *testing.T) {
	app := buildTestApp(nil, "reportes.ver", "ventas.ver")
	resp := doRequest(t, app, "Bearer "+tokenWith(t, testRolID, "ventas.ver"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp(nil, "ventas.anular")
	resp := doRequest(t, app, "Bearer "+tokenWith(t, testRolID, "ventas.ver"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestRequirePermission_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(nil, "ventas.ver")
	resp := doRequest(t, app, "Bearer "+tokenWith(t, "", "ventas.ver"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp))
}
