// Package permisos expone el catálogo de permisos embebido en el binario.
// Los códigos tienen la forma "<modulo>.<accion>".
package permisos

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Códigos usados por el router.
const (
	EmpresaVer           = "empresa.ver"
	EmpresaEditar        = "empresa.editar"
	UsuariosVer          = "usuarios.ver"
	UsuariosCrear        = "usuarios.crear"
	UsuariosEditar       = "usuarios.editar"
	UsuariosEliminar     = "usuarios.eliminar"
	RolesVer             = "roles.ver"
	RolesGestionar       = "roles.gestionar"
	ProductosVer         = "productos.ver"
	ProductosGestionar   = "productos.gestionar"
	ClientesVer          = "clientes.ver"
	ClientesGestionar    = "clientes.gestionar"
	ProveedoresVer       = "proveedores.ver"
	ProveedoresGestionar = "proveedores.gestionar"
	PersonalVer          = "personal.ver"
	PersonalGestionar    = "personal.gestionar"
	HornosVer            = "hornos.ver"
	HornosGestionar      = "hornos.gestionar"
	CoccionVer           = "coccion.ver"
	CoccionGestionar     = "coccion.gestionar"
	VentasVer            = "ventas.ver"
	VentasCrear          = "ventas.crear"
	VentasEditar         = "ventas.editar"
	VentasPagos          = "ventas.pagos"
	VentasAnular         = "ventas.anular"
	EntregasVer          = "entregas.ver"
	EntregasRegistrar    = "entregas.registrar"
	EntregasEliminar     = "entregas.eliminar"
	ConsultasDocumento   = "consultas.documento"
	ReportesVer          = "reportes.ver"
)

//go:embed catalogo.yaml
var catalogoYAML []byte

// Permiso entrada del catálogo.
type Permiso struct {
	Codigo      string `yaml:"codigo"`
	Modulo      string `yaml:"-"`
	Descripcion string `yaml:"descripcion"`
}

type archivo struct {
	Modulos []struct {
		Modulo   string    `yaml:"modulo"`
		Permisos []Permiso `yaml:"permisos"`
	} `yaml:"modulos"`
}

var (
	once     sync.Once
	catalogo []Permiso
	errCat   error
)

// Catalogo devuelve el catálogo completo (se parsea una sola vez).
func Catalogo() ([]Permiso, error) {
	once.Do(func() {
		catalogo, errCat = Parse(catalogoYAML)
	})
	if errCat != nil {
		return nil, errCat
	}
	out := make([]Permiso, len(catalogo))
	copy(out, catalogo)
	return out, nil
}

// Codigos devuelve solo los códigos del catálogo.
func Codigos() ([]string, error) {
	cat, err := Catalogo()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cat))
	for _, p := range cat {
		out = append(out, p.Codigo)
	}
	return out, nil
}

// Parse lee un catálogo en YAML. Rechaza códigos duplicados o vacíos.
func Parse(data []byte) ([]Permiso, error) {
	var a archivo
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("permisos: parsear catálogo: %w", err)
	}
	seen := make(map[string]bool)
	var out []Permiso
	for _, m := range a.Modulos {
		for _, p := range m.Permisos {
			if p.Codigo == "" {
				return nil, fmt.Errorf("permisos: código vacío en el módulo %q", m.Modulo)
			}
			if seen[p.Codigo] {
				return nil, fmt.Errorf("permisos: código duplicado %q", p.Codigo)
			}
			seen[p.Codigo] = true
			p.Modulo = m.Modulo
			out = append(out, p)
		}
	}
	return out, nil
}
