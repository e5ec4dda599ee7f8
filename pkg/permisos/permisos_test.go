package permisos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogo_ContieneCodigosDelRouter(t *testing.T) {
	codigos, err := Codigos()
	require.NoError(t, err)

	set := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		set[c] = true
	}
	for _, c := range []string{
		EmpresaVer, EmpresaEditar, UsuariosVer, UsuariosCrear, UsuariosEditar, UsuariosEliminar,
		RolesVer, RolesGestionar, ProductosVer, ProductosGestionar, ClientesVer, ClientesGestionar,
		ProveedoresVer, ProveedoresGestionar, PersonalVer, PersonalGestionar, HornosVer, HornosGestionar,
		CoccionVer, CoccionGestionar, VentasVer, VentasCrear, VentasEditar, VentasPagos, VentasAnular,
		EntregasVer, EntregasRegistrar, EntregasEliminar, ConsultasDocumento, ReportesVer,
	} {
		assert.True(t, set[c], "falta %s en catalogo.yaml", c)
	}
	assert.Len(t, codigos, 30)
}

func TestCatalogo_AsignaModulo(t *testing.T) {
	cat, err := Catalogo()
	require.NoError(t, err)
	for _, p := range cat {
		assert.NotEmpty(t, p.Modulo, p.Codigo)
		assert.NotEmpty(t, p.Descripcion, p.Codigo)
	}
}

func TestParse_RechazaDuplicados(t *testing.T) {
	_, err := Parse([]byte(`
modulos:
  - modulo: a
    permisos:
      - codigo: a.ver
        descripcion: x
      - codigo: a.ver
        descripcion: y
`))
	assert.Error(t, err)
}

func TestParse_RechazaCodigoVacio(t *testing.T) {
	_, err := Parse([]byte(`
modulos:
  - modulo: a
    permisos:
      - descripcion: x
`))
	assert.Error(t, err)
}
